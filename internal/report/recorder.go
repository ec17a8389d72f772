package report

import "sync"

// Counts tallies events by kind.
type Counts struct {
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Exceptions int `json:"exceptions"`
}

// Total returns the number of events counted.
func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Exceptions
}

// OK reports whether no failures or exceptions were counted.
func (c Counts) OK() bool {
	return c.Failed == 0 && c.Exceptions == 0
}

// Recorder keeps every event it receives, in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Receive appends e.
func (r *Recorder) Receive(e Event) {
	mustKnow(e.Kind)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Counts tallies the recorded events.
func (r *Recorder) Counts() Counts {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Tally(r.events)
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Tally counts events by kind. Unknown kinds are ignored.
func Tally(events []Event) Counts {
	var c Counts
	for _, e := range events {
		switch e.Kind {
		case Pass:
			c.Passed++
		case Fail:
			c.Failed++
		case Exception:
			c.Exceptions++
		}
	}
	return c
}

// multi fans events out to several reporters.
type multi []Reporter

// Multi returns a Reporter that forwards each event to every non-nil
// reporter, in argument order.
func Multi(reporters ...Reporter) Reporter {
	out := make(multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multi) Receive(e Event) {
	for _, r := range m {
		r.Receive(e)
	}
}
