// Package trace records spans and instant events of a generation run.
//
// # Usage
//
//	modelgen gen --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event to a file or stderr
//   - RingTracer: keeps the last events in memory and dumps them on failure
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits run and stage spans, LevelDetail adds one span per
// classifier or diagram, LevelDebug adds per-message points.
//
// Tracers travel through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "flatten", 0)
//	defer span.End("")
package trace
