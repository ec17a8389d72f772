package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	ansiGreen = "\x1b[0;32m"
	ansiRed   = "\x1b[0;31m"
	ansiReset = "\x1b[0m"
)

// Terminal writes one human-readable line per event:
//
//	✔ test: message      (pass, green)
//	✘ test: message      (fail, red)
//	✘ test: message      (exception, red, message prefixed with "exception: ")
//
// Colour is on when the writer is a terminal and NO_COLOR is unset or empty.
type Terminal struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithColor forces colour output on or off.
func WithColor(on bool) TerminalOption {
	return func(t *Terminal) {
		t.color = on
	}
}

// NewTerminal creates a Terminal sink writing to w.
func NewTerminal(w io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{w: w, color: detectColor(w)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// detectColor reports whether w is a colour-capable terminal.
func detectColor(w io.Writer) bool {
	if !colorAllowed() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// colorAllowed follows no-color.org: NO_COLOR disables colour only when set
// to a non-empty value.
func colorAllowed() bool {
	return os.Getenv("NO_COLOR") == ""
}

// Receive writes e. Panics with *UnknownKindError on an unknown kind.
func (t *Terminal) Receive(e Event) {
	mustKnow(e.Kind)

	mark, color := "✔", ansiGreen
	msg := e.Message
	switch e.Kind {
	case Fail:
		mark, color = "✘", ansiRed
	case Exception:
		mark, color = "✘", ansiRed
		msg = "exception: " + msg
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.color {
		fmt.Fprintf(t.w, "%s%s %s: %s%s\n", color, mark, e.Test, msg, ansiReset)
		return
	}
	fmt.Fprintf(t.w, "%s %s: %s\n", mark, e.Test, msg)
}
