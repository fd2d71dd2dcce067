// Package export implements the export command: it validates the format
// selection, establishes the output directory and runs the batch pipeline
// over the requested structures.
//
// The order of the steps is observable. An empty or unknown format
// selection fails before the output directory or any input is touched, and
// inputs are resolved against the invocation directory before the working
// directory moves into the output directory.
package export
