// Package merge carries hand-written lines of a previously generated file
// into freshly rendered output.
//
// Two strategies exist. The lines strategy classifies every old line as
// generated or foreign by textual heuristics and splices the foreign ones
// back at their original indices; it can keep coincidental matches and
// drop hand-written lines that mention a known member. The fenced strategy
// only keeps what sits between BEGIN USER / END USER markers and matches
// regions by key.
package merge
