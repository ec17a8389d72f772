package scheduler

import (
	"errors"
	"fmt"
)

// MisuseError signals a programming bug in how the scheduler is driven.
//
// It is raised with panic, never returned: misuse is fatal and the
// scheduler makes no attempt to recover or patch its state.
type MisuseError struct {
	// Code identifies the misuse category.
	Code MisuseErrorCode

	// Message is a human-readable description.
	Message string

	// Test names the test whose continuation was misused, if known.
	Test string
}

// MisuseErrorCode categorizes scheduler misuse.
type MisuseErrorCode string

const (
	// ErrCodeContinuationReused indicates a continuation was invoked twice.
	ErrCodeContinuationReused MisuseErrorCode = "CONTINUATION_REUSED"

	// ErrCodeNilTest indicates a nil PendingTest was enqueued.
	ErrCodeNilTest MisuseErrorCode = "NIL_TEST"
)

// Error implements the error interface.
func (e *MisuseError) Error() string {
	if e.Test != "" {
		return fmt.Sprintf("%s: %s (test=%s)", e.Code, e.Message, e.Test)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMisuse reports whether err (or a panic value) is a MisuseError.
// Uses errors.As to handle wrapped errors.
func IsMisuse(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var me *MisuseError
	return errors.As(err, &me)
}

func newReusedError(test string) *MisuseError {
	return &MisuseError{
		Code:    ErrCodeContinuationReused,
		Message: "continuation invoked more than once",
		Test:    test,
	}
}
