package pipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageLoad reads and resolves the model file.
	StageLoad Stage = "load"
	// StageFlatten walks the class diagrams.
	StageFlatten Stage = "flatten"
	// StageTrace replays the sequence diagrams.
	StageTrace Stage = "trace"
	// StageEmit renders and writes the classifiers.
	StageEmit Stage = "emit"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageLoad, StageFlatten, StageTrace, StageEmit}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the classifier is waiting to be written.
	StatusQueued Status = "queued"
	// StatusWorking indicates the classifier is being written.
	StatusWorking Status = "working"
	// StatusDone indicates the classifier was written.
	StatusDone Status = "done"
	// StatusError indicates the classifier could not be written.
	StatusError Status = "error"
)

// Event reports progress for a classifier (or for the whole run when
// Classifier is empty).
type Event struct {
	Project    string
	Classifier string
	Path       string
	Stage      Stage
	Status     Status
	Err        error
	Elapsed    time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}

// Total returns the sum over every stage.
func (t Timings) Total() time.Duration {
	return t.Sum(Stages...)
}
