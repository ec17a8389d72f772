package report

import (
	"encoding/json"
	"io"
	"sync"
)

// JSONLines writes each event as one JSON object followed by a newline.
type JSONLines struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLines creates a JSONLines sink writing to w.
func NewJSONLines(w io.Writer) *JSONLines {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLines{enc: enc}
}

// Receive encodes e. Write errors are dropped; the Reporter contract has
// no error channel.
func (j *JSONLines) Receive(e Event) {
	mustKnow(e.Kind)

	j.mu.Lock()
	defer j.mu.Unlock()
	_ = j.enc.Encode(e)
}
