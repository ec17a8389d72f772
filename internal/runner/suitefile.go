// Package runner runs declarative test suites.
//
// A suite file lists tests, each made of checks that compare values with
// the deep-equality engine. Files are YAML or CUE; both decode into the
// same SuiteFile shape and run through the ordinary suite API, so a suite
// file exercises exactly the code paths a hand-written Go suite would.
package runner

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Check types.
const (
	CheckEqual    = "equal"
	CheckNotEqual = "not_equal"
	CheckTruthy   = "truthy"
)

// SuiteFile is a declarative test suite.
type SuiteFile struct {
	// Name identifies the suite in reports and run history.
	Name string `yaml:"name"`

	// Description explains what the suite covers.
	Description string `yaml:"description,omitempty"`

	// Tests run in order.
	Tests []TestCase `yaml:"tests"`

	// Path is the file the suite was loaded from, if any.
	Path string `yaml:"-"`
}

// TestCase is one test of a suite file.
type TestCase struct {
	Name string `yaml:"name"`

	// Async tests complete from a timer goroutine after Delay.
	Async bool `yaml:"async,omitempty"`

	// Delay is a time.ParseDuration string. Only valid on async tests.
	Delay string `yaml:"delay,omitempty"`

	Checks []Check `yaml:"checks"`

	delay time.Duration
}

// Check is a single assertion.
//
// Left and Right stay as YAML nodes until validation so that a missing
// operand can be told apart from an explicit null.
type Check struct {
	// Type is one of equal, not_equal, truthy.
	Type    string    `yaml:"type"`
	Left    yaml.Node `yaml:"left"`
	Right   yaml.Node `yaml:"right"`
	Message string    `yaml:"message,omitempty"`

	left  any
	right any
}

// LoadSuite reads a suite file. The extension selects the format:
// .yaml and .yml are YAML, .cue is CUE.
func LoadSuite(path string) (*SuiteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "suite file not found"}
		}
		return nil, &LoadError{Code: ErrCodeRead, Path: path, Message: "failed to read suite file", Err: err}
	}

	var sf *SuiteFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		sf, err = ParseYAML(data)
	case ".cue":
		sf, err = ParseCUE(data, path)
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Path: path, Message: fmt.Sprintf("unsupported extension %q", ext)}
	}
	if err != nil {
		if le, ok := IsLoadError(err); ok {
			le.Path = path
		}
		return nil, err
	}

	sf.Path = path
	return sf, nil
}

// ParseYAML decodes and validates a YAML suite. Unknown fields are errors.
func ParseYAML(data []byte) (*SuiteFile, error) {
	var sf SuiteFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&sf); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: "failed to parse YAML", Err: err}
	}

	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// ParseCUE evaluates a CUE suite, exports it as data and decodes it like
// YAML. filename is used in CUE error positions.
func ParseCUE(data []byte, filename string) (*SuiteFile, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeCUE, Message: "compiling CUE", Err: err}
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeCUE, Message: "CUE value is not concrete", Err: err}
	}

	// JSON is a subset of YAML, so the strict YAML decoder handles the export.
	exported, err := v.MarshalJSON()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeCUE, Message: "exporting CUE", Err: err}
	}
	return ParseYAML(exported)
}

// Validate checks required fields and decodes check operands.
func (f *SuiteFile) Validate() error {
	if f.Name == "" {
		return invalid("name is required")
	}
	if len(f.Tests) == 0 {
		return invalid("tests list is required and must be non-empty")
	}

	for i := range f.Tests {
		if err := f.Tests[i].validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TestCase) validate(i int) error {
	if tc.Name == "" {
		return invalid("tests[%d]: name is required", i)
	}
	if len(tc.Checks) == 0 {
		return invalid("test %q: at least one check is required", tc.Name)
	}

	if tc.Delay != "" {
		if !tc.Async {
			return invalid("test %q: delay only applies to async tests", tc.Name)
		}
		d, err := time.ParseDuration(tc.Delay)
		if err != nil {
			return invalid("test %q: invalid delay: %v", tc.Name, err)
		}
		if d < 0 {
			return invalid("test %q: delay must not be negative", tc.Name)
		}
		tc.delay = d
	}

	for j := range tc.Checks {
		if err := tc.Checks[j].validate(); err != nil {
			return invalid("test %q: checks[%d]: %v", tc.Name, j, err)
		}
	}
	return nil
}

func (c *Check) validate() error {
	switch c.Type {
	case CheckEqual, CheckNotEqual:
		if isMissing(c.Left) || isMissing(c.Right) {
			return fmt.Errorf("%s requires left and right", c.Type)
		}
	case CheckTruthy:
		if isMissing(c.Left) {
			return fmt.Errorf("truthy requires left")
		}
		if !isMissing(c.Right) {
			return fmt.Errorf("truthy does not take right")
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown check type %q", c.Type)
	}

	var err error
	if c.left, err = decodeNode(c.Left); err != nil {
		return fmt.Errorf("left: %w", err)
	}
	if c.right, err = decodeNode(c.Right); err != nil {
		return fmt.Errorf("right: %w", err)
	}
	return nil
}

func isMissing(n yaml.Node) bool {
	return n.Kind == 0
}

func decodeNode(n yaml.Node) (any, error) {
	if isMissing(n) {
		return nil, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func invalid(format string, args ...any) error {
	return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("invalid suite: "+format, args...)}
}

// FindSuiteFiles returns suite files under path. A file path is returned
// as is. A directory is walked for .yaml, .yml and .cue files; filter, if
// set, is a glob matched against base names without extension.
func FindSuiteFiles(path, filter string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "path not found"}
		}
		return nil, &LoadError{Code: ErrCodeRead, Path: path, Message: "failed to stat path", Err: err}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(p)
		switch strings.ToLower(ext) {
		case ".yaml", ".yml", ".cue":
		default:
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(p), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, p)
		return nil
	})
	return files, err
}
