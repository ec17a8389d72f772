package runner

import (
	"errors"
	"fmt"
)

// Error codes for suite file loading.
const (
	ErrCodeRead        = "E001" // File could not be read
	ErrCodeParse       = "E002" // YAML parse error or unknown field
	ErrCodeCUE         = "E003" // CUE compile or export failed
	ErrCodeInvalid     = "E004" // Suite file failed validation
	ErrCodeUnsupported = "E005" // Unsupported file extension
	ErrCodeNotFound    = "E006" // Path not found
)

// LoadError describes why a suite file could not be loaded.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is a LoadError and returns it.
func IsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
