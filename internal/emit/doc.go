// Package emit renders a classifier and its IR into Java-style source lines.
//
// Rendering is a pure function of the classifier, the IR table and the
// Options: the same inputs always produce the same lines. No IO happens here;
// internal/codegen owns paths and files and internal/merge owns update mode.
package emit
