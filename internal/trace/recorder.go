package trace

import "sync"

// Sink is the minimal interface the executor depends on.
//
// Record must be inert: it must not panic and must not return errors. The
// caller must assume Record may be a no-op.
type Sink interface {
	Record(event Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(Event) {}

// Recorder is a concurrency-safe in-memory collector.
//
// Execution is serial, so the mutex exists only to keep the type safe under
// incidental concurrent use (e.g. a signal-path snapshot).
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Record(event Event) {
	if r == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all recorded events.
func (r *Recorder) Snapshot() []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Transcript builds a Transcript from the currently recorded events. The
// result is independent from the recorder (events are copied).
func (r *Recorder) Transcript() Transcript {
	return Transcript{Events: r.Snapshot()}
}
