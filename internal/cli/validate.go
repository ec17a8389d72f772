package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/zigj/internal/runner"
)

// FileValidation is the validation outcome of one suite file.
type FileValidation struct {
	File  string    `json:"file"`
	Suite string    `json:"suite,omitempty"`
	Tests int       `json:"tests"`
	Valid bool      `json:"valid"`
	Error *CLIError `json:"error,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate suite files without running them",
		Long: `Load and validate YAML or CUE suite files without running them.

Checks syntax, unknown fields, required fields, check types and
delays. Exits 1 if any file is invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0], filter)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "filter suite files by glob pattern")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *RootOptions, path, filter string) error {
	f := opts.formatter(cmd)

	files, err := runner.FindSuiteFiles(path, filter)
	if err != nil {
		if le, ok := runner.IsLoadError(err); ok {
			_ = f.Error(le.Code, le.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "failed to find suite files", err)
	}

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(files))}
	for _, file := range files {
		fv := FileValidation{File: file, Valid: true}

		sf, err := runner.LoadSuite(file)
		if err != nil {
			fv.Valid = false
			result.Valid = false
			code := ErrCodeGeneric
			if le, ok := runner.IsLoadError(err); ok {
				code = le.Code
			}
			fv.Error = &CLIError{Code: code, Message: err.Error()}
		} else {
			fv.Suite = sf.Name
			fv.Tests = len(sf.Tests)
		}
		result.Files = append(result.Files, fv)
	}

	if f.JSON() {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		for _, fv := range result.Files {
			if fv.Valid {
				fmt.Fprintf(f.Writer, "✔ %s: %s (%d tests)\n", fv.File, fv.Suite, fv.Tests)
				continue
			}
			fmt.Fprintf(f.Writer, "✘ %s\n  Error [%s]: %s\n", fv.File, fv.Error.Code, fv.Error.Message)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}
