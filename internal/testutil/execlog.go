package testutil

import "sync"

// ExecLog records the order in which test bodies and callbacks ran.
//
// Bodies of async tests may finish on timer goroutines, so all methods are
// safe for concurrent use.
type ExecLog struct {
	mu      sync.Mutex
	entries []string
}

// NewExecLog creates an empty log.
func NewExecLog() *ExecLog {
	return &ExecLog{}
}

// Add appends an entry.
func (l *ExecLog) Add(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the entries in the order they were added.
func (l *ExecLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.entries...)
}

// Len returns the number of entries.
func (l *ExecLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
