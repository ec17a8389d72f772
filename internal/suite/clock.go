package suite

import "sync/atomic"

// Clock is the monotonic logical clock that stamps Event.Seq.
//
// Every event of a suite gets a strictly increasing seq, so the order in
// which a reporter saw events is explicit even after the events are stored
// or serialised.
//
// Thread-safety: Clock is safe for concurrent use. Async tests emit from
// timer goroutines.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0. The first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
