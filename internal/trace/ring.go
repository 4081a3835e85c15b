package trace

import (
	"fmt"
	"io"
	"slices"
	"sync"
)

// DefaultRingSize is the ring capacity used when none is given.
const DefaultRingSize = 4096

// RingTracer keeps the most recent events of a run in memory so they can be
// printed when the run fails.
type RingTracer struct {
	level Level

	mu      sync.Mutex
	buf     []Event
	next    int
	dropped int
}

// NewRingTracer returns a ring holding up to size events.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingTracer{level: level, buf: make([]Event, 0, size)}
}

// Emit records ev, overwriting the oldest event once the ring is full.
func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.buf) < cap(t.buf) {
		t.buf = append(t.buf, stored)
		return
	}
	t.buf[t.next] = stored
	t.next = (t.next + 1) % len(t.buf)
	t.dropped++
}

// Snapshot returns the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Concat(t.buf[t.next:], t.buf[:t.next])
}

// Dropped reports how many events were overwritten.
func (t *RingTracer) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// Dump writes the retained events to w. Text output starts with a note
// when earlier events were overwritten.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	if n := t.Dropped(); n > 0 && format != FormatNDJSON {
		if _, err := fmt.Fprintf(w, "... %d earlier event(s) not kept\n", n); err != nil {
			return err
		}
	}
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
