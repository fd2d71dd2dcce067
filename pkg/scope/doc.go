// Package scope owns the output directory of a run.
//
// A Manager creates the directory, switches the process working directory
// into it exactly once and hands out the resulting OutputScope. Renderers
// never consult the working directory: they receive the scope explicitly
// and write every artifact through it, which keeps all writes inside the
// output directory and lets tests run against an in-memory filesystem.
package scope
