package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gmkumar2005/disintegrate/internal/catalog"
	"github.com/gmkumar2005/disintegrate/internal/scenario"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run decision scenarios",
		Long: `Run every scenario file under a directory.

Each scenario folds its given history, runs one decision and compares the
outcome with its expectation. When golden/<file>.golden exists next to a
scenario, the run's trace must match it byte for byte.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  disintegrate test ./scenarios
  disintegrate test ./scenarios --filter "cart_*"
  disintegrate test ./scenarios --update
  disintegrate test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	files, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	if len(files) == 0 {
		if f.JSON() {
			return f.Success(catalog.SuiteResult{Scenarios: []catalog.Outcome{}})
		}
		fmt.Fprintln(f.Writer, "No scenarios found.")
		return nil
	}

	suite := opts.catalog().RunFiles(files, f.Logger())
	for i := range suite.Scenarios {
		checkGolden(&suite.Scenarios[i], opts.Update)
	}
	suite.Recount()

	if f.JSON() {
		return outputTestJSON(f, suite)
	}
	return outputTestText(f, suite)
}

// findScenarioFiles finds all YAML scenario files in a directory tree,
// in lexical order.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// checkGolden compares (or with update, rewrites) the golden file of a
// scenario that ran. Scenarios without a golden file are judged on their
// expectation alone.
func checkGolden(o *catalog.Outcome, update bool) {
	if o.Result == nil {
		return
	}

	data, err := scenario.GoldenBytes(o.Result)
	if err != nil {
		o.Pass = false
		o.Errors = append(o.Errors, fmt.Sprintf("failed to serialize trace: %v", err))
		return
	}

	goldenPath := goldenFilePath(o.Path)
	if update {
		if err := writeGoldenFile(goldenPath, data); err != nil {
			o.Pass = false
			o.Errors = append(o.Errors, fmt.Sprintf("failed to update golden file: %v", err))
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		o.Pass = false
		o.Errors = append(o.Errors, fmt.Sprintf("failed to read golden file: %v", err))
		return
	}
	if !bytes.Equal(want, data) {
		o.Pass = false
		o.Errors = append(o.Errors, "trace does not match golden file (run with --update to regenerate)")
	}
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

func writeGoldenFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

func outputTestJSON(f *OutputFormatter, suite *catalog.SuiteResult) error {
	if suite.Failed == 0 {
		return f.Success(suite)
	}

	msg := fmt.Sprintf("%d scenario(s) failed", suite.Failed)
	if err := f.encode(CLIResponse{
		Status: "error",
		Data:   suite,
		Error:  &CLIError{Code: ErrCodeTestFailed, Message: msg},
	}); err != nil {
		return err
	}
	return NewExitError(ExitFailure, msg)
}

func outputTestText(f *OutputFormatter, suite *catalog.SuiteResult) error {
	w := f.Writer
	for _, o := range suite.Scenarios {
		if o.Pass {
			fmt.Fprintf(w, "✓ %s\n", o.Name)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", o.Name)
		for _, e := range o.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", suite.Passed, suite.Failed, suite.Total)

	if suite.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", suite.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
