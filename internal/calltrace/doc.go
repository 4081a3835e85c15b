// Package calltrace replays the messages of a sequence diagram and
// synthesizes methods and call statements on the participating classes.
//
// # State
//
// The compiler is a small state machine. While no call is pending it is in
// NoFocus; every non-reflective call or create pushes a frame and moves it
// to Focused(owner), where owner is the participant that now holds the
// focus of control. A return pops one frame; popping the last frame closes
// the lifeline and goes back to NoFocus.
//
// # Statements
//
// A statement is attached to the head frame only when the message comes
// from the participant that owns that frame. Everything else is tolerated
// and reported through diag: an actor message while a lifeline is open is
// skipped, a caller that does not own the head still gets its callee
// synthesized, a return without a pending call does nothing.
//
// Messages are replayed in ascending rank. Equal ranks keep diagram order
// and produce a warning.
package calltrace
