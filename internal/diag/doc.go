// Package diag defines the diagnostic model shared by the loader, the
// flattener and the call-trace compiler.
//
// # Purpose
//
// Model defects that the generator tolerates (a return without an open call,
// a message from a participant without focus, an association end pointing
// nowhere) must not abort a run: the upstream model may be mid-edit. They are
// reported as diagnostics instead, so the CLI can show them and tests can
// assert on them.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Where – a Location naming the diagram, message rank or classifier.
//
// # Emitting diagnostics
//
// Producers receive a Reporter and never own storage. BagReporter collects
// into a Bag (sorting, dedup, filtering); DedupReporter suppresses repeats.
// Nothing in this package performs IO or formatting beyond FormatShort.
package diag
