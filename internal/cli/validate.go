package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gmkumar2005/disintegrate/internal/catalog"
	"github.com/gmkumar2005/disintegrate/internal/scenario"
)

// FileValidation holds the problems found in one scenario file.
type FileValidation struct {
	Path   string   `json:"path"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidationResult holds validation results for a directory.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario files against the scenario schema and the known
domains: every domain, decision and event type a scenario names must exist.

Exit codes:
  0 - All scenarios valid
  1 - One or more scenarios invalid
  2 - Command error (directory not found)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("scenarios directory not found: %s", dir), nil)
	}

	files, err := findScenarioFiles(dir, "")
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to find scenarios", err)
	}

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(files))}
	for _, path := range files {
		fv := validateFile(opts.catalog(), path)
		f.Logger().Debug("validated scenario", "path", path, "valid", fv.Valid)
		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if f.JSON() {
		if err := f.encode(validateResponse(result)); err != nil {
			return err
		}
	} else {
		outputValidateText(f, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

func validateResponse(result ValidationResult) CLIResponse {
	if result.Valid {
		return CLIResponse{Status: "ok", Data: result}
	}
	return CLIResponse{
		Status: "error",
		Data:   result,
		Error:  &CLIError{Code: ErrCodeInvalid, Message: "validation failed"},
	}
}

// validateFile loads a scenario and checks the names it uses against the
// catalog.
func validateFile(c *catalog.Catalog, path string) FileValidation {
	fv := FileValidation{Path: path}

	s, err := scenario.Load(path)
	if err != nil {
		var verrs scenario.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				fv.Errors = append(fv.Errors, e.Error())
			}
		} else {
			fv.Errors = append(fv.Errors, err.Error())
		}
		return fv
	}

	d, err := c.Lookup(s.Domain)
	if err != nil {
		fv.Errors = append(fv.Errors, err.Error())
		return fv
	}

	if !slices.Contains(d.Decisions(), s.When.Decision) {
		fv.Errors = append(fv.Errors, fmt.Sprintf("when.decision: unknown decision %q in domain %q", s.When.Decision, d.Name()))
	}
	known := d.EventTypes()
	for i, e := range s.Given {
		if !slices.Contains(known, e.Type) {
			fv.Errors = append(fv.Errors, fmt.Sprintf("given.%d.type: unknown event type %q", i, e.Type))
		}
	}
	for i, e := range s.Then.Events {
		if !slices.Contains(known, e.Type) {
			fv.Errors = append(fv.Errors, fmt.Sprintf("then.events.%d.type: unknown event type %q", i, e.Type))
		}
	}

	fv.Valid = len(fv.Errors) == 0
	return fv
}

func outputValidateText(f *OutputFormatter, result ValidationResult) {
	w := f.Writer
	for _, fv := range result.Files {
		if fv.Valid {
			fmt.Fprintf(w, "✓ %s\n", fv.Path)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", fv.Path)
		for _, e := range fv.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	if result.Valid {
		fmt.Fprintf(w, "✓ %d scenario(s) valid\n", len(result.Files))
	}
}
