package scheduler

// testQueue is the FIFO of pending tests.
//
// It is not synchronized; the Scheduler guards it with its own mutex.
// Tests are only appended and removed from the front, never reordered.
type testQueue struct {
	tests []queued
}

// queued is a pending test plus the sequence number it was enqueued with.
type queued struct {
	seq  int64
	name string
	run  PendingTest
}

func newTestQueue() *testQueue {
	return &testQueue{
		tests: make([]queued, 0, 16),
	}
}

// enqueue adds a test to the back of the queue.
func (q *testQueue) enqueue(t queued) {
	q.tests = append(q.tests, t)
}

// dequeue removes and returns the front test.
// Returns (queued{}, false) if the queue is empty.
func (q *testQueue) dequeue() (queued, bool) {
	if len(q.tests) == 0 {
		return queued{}, false
	}

	t := q.tests[0]

	// Clear the slot so the closure can be collected once it has run.
	q.tests[0] = queued{}

	if len(q.tests) == 1 {
		q.tests = q.tests[:0]
	} else {
		q.tests = q.tests[1:]
	}

	return t, true
}

func (q *testQueue) len() int {
	return len(q.tests)
}
