package spy

import "fmt"

// OutcomeKind distinguishes a normal return from a thrown failure.
type OutcomeKind int

const (
	// OutcomeOk means the wrapped callable returned normally.
	OutcomeOk OutcomeKind = iota + 1
	// OutcomeThrew means the wrapped callable returned an error or panicked.
	OutcomeThrew
	// OutcomePending marks a call that has started but not settled yet.
	// Only snapshots taken while a call is in flight observe it.
	OutcomePending
)

// String returns "ok", "threw" or "pending".
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOk:
		return "ok"
	case OutcomeThrew:
		return "threw"
	case OutcomePending:
		return "pending"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the recorded result of one spied invocation.
// Build with Ok or Threw; the zero Outcome is invalid.
type Outcome struct {
	Kind    OutcomeKind
	Value   any // returned value, set when Kind == OutcomeOk
	Payload any // error or panic value, set when Kind == OutcomeThrew
}

// Ok creates an outcome for a normal return.
func Ok(v any) Outcome {
	return Outcome{Kind: OutcomeOk, Value: v}
}

// Threw creates an outcome for a failure.
func Threw(payload any) Outcome {
	return Outcome{Kind: OutcomeThrew, Payload: payload}
}

// IsOk reports whether the invocation returned normally.
func (o Outcome) IsOk() bool {
	return o.Kind == OutcomeOk
}

// Returned returns the value and true for an Ok outcome.
func (o Outcome) Returned() (any, bool) {
	if o.Kind != OutcomeOk {
		return nil, false
	}
	return o.Value, true
}

// Pending reports whether the invocation is still in flight.
func (o Outcome) Pending() bool {
	return o.Kind == OutcomePending
}

// Thrown returns the payload and true for a Threw outcome.
func (o Outcome) Thrown() (any, bool) {
	if o.Kind != OutcomeThrew {
		return nil, false
	}
	return o.Payload, true
}

// Err returns the payload as an error. Panics with non-error payloads are
// wrapped so the original value is still visible in the message.
func (o Outcome) Err() error {
	p, ok := o.Thrown()
	if !ok {
		return nil
	}
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", p)
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeOk:
		return fmt.Sprintf("Ok(%v)", o.Value)
	case OutcomeThrew:
		return fmt.Sprintf("Threw(%v)", o.Payload)
	case OutcomePending:
		return "Pending"
	default:
		return "Outcome(invalid)"
	}
}
