package suite

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/roach88/zigj/internal/report"
	"github.com/roach88/zigj/internal/value"
)

// Ok evaluates pred exactly once and reports Pass or Fail for the current
// test. A false predicate is an ordinary Fail event; Ok never panics on it.
//
// Without a message (or with an empty one) the event message is the
// caller's "file:line".
func (s *Suite) Ok(pred func() bool, msg ...string) {
	s.ok(pred(), message(msg, 2))
}

// Equal reports Pass when a and b are deeply equal (see value.Deep).
// The default failure message names the path of the first difference.
func (s *Suite) Equal(a, b any, msg ...string) {
	eq, detail := Compare(a, b)
	m := message(msg, 2)
	if !eq && len(joined(msg)) == 0 {
		m += ": " + detail
	}
	s.ok(eq, m)
}

// NotEqual reports Pass when a and b are not deeply equal.
func (s *Suite) NotEqual(a, b any, msg ...string) {
	eq, _ := Compare(a, b)
	m := message(msg, 2)
	if eq && len(joined(msg)) == 0 {
		m += ": values are equal"
	}
	s.ok(!eq, m)
}

func (s *Suite) ok(cond bool, msg string) {
	kind := report.Fail
	if cond {
		kind = report.Pass
	}
	s.emit(s.Current(), kind, msg)
}

// Compare reports deep equality of a and b plus, when they differ, a
// description of the first difference. Values that cannot be converted
// with value.FromGo compare unequal.
func Compare(a, b any) (bool, string) {
	va, err := value.FromGo(a)
	if err != nil {
		return false, fmt.Sprintf("left operand: %v", err)
	}
	vb, err := value.FromGo(b)
	if err != nil {
		return false, fmt.Sprintf("right operand: %v", err)
	}

	path, eq := value.Diff(va, vb)
	if eq {
		return true, ""
	}
	return false, fmt.Sprintf("values differ at %s: %s != %s", path, value.Format(va), value.Format(vb))
}

// message returns the user's message, or the "file:line" of the frame
// skip levels above message's caller.
func message(msg []string, skip int) string {
	if m := joined(msg); m != "" {
		return m
	}
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func joined(msg []string) string {
	switch len(msg) {
	case 0:
		return ""
	case 1:
		return msg[0]
	}
	out := msg[0]
	for _, m := range msg[1:] {
		if m != "" {
			out += " " + m
		}
	}
	return out
}
