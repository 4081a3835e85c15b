package pipeline

import (
	"time"

	"modelgen/internal/model"
)

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function to ProgressSink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

func send(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

func emitQueued(sink ProgressSink, project string, classifiers []model.Classifier) {
	for _, c := range classifiers {
		send(sink, Event{Project: project, Classifier: model.NameOf(c), Stage: StageEmit, Status: StatusQueued})
	}
}

// observer turns per-classifier generator callbacks into events.
type observer struct {
	sink    ProgressSink
	project string
}

func (o observer) Started(name string) {
	send(o.sink, Event{Project: o.project, Classifier: name, Stage: StageEmit, Status: StatusWorking})
}

func (o observer) Finished(name, path string, err error, elapsed time.Duration) {
	status := StatusDone
	if err != nil {
		status = StatusError
	}
	send(o.sink, Event{
		Project:    o.project,
		Classifier: name,
		Path:       path,
		Stage:      StageEmit,
		Status:     status,
		Err:        err,
		Elapsed:    elapsed,
	})
}
