// Package views turns a Kripke structure into artifacts.
//
// Each output format has one Renderer, built by a Factory registered in a
// fixed table. A Composite groups the renderers resolved for a run and
// applies them to every structure in canonical format order. The concrete
// encoders live in the graphviz, nusmv and graphml subpackages; this
// package only composes them.
package views
