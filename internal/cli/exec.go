package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmkumar2005/disintegrate/internal/catalog"
	"github.com/gmkumar2005/disintegrate/internal/store"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	DB       string
	Domain   string
	Decision string
	Args     string
}

// ExecResult is the JSON payload of a successful exec.
type ExecResult struct {
	Domain   string          `json:"domain"`
	Decision string          `json:"decision"`
	Appended []catalog.Entry `json:"appended"`
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute a decision against an event log",
		Long: `Execute one decision against a SQLite event log.

The decision's history is loaded from the log, folded and processed once.
Events it produces are appended; a rejected decision appends nothing.

Exit codes:
  0 - Decision executed
  1 - Decision rejected by the domain
  2 - Command error (unknown domain or decision, bad args, store failure)

Example:
  disintegrate exec --db ./events.db --domain bank --decision Deposit \
    --args '{"account_id":1,"amount":50}'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to the SQLite event log (required)")
	cmd.Flags().StringVar(&opts.Domain, "domain", "", "domain name (required)")
	cmd.Flags().StringVar(&opts.Decision, "decision", "", "decision name (required)")
	cmd.Flags().StringVar(&opts.Args, "args", "{}", "decision arguments as JSON")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("decision")

	return cmd
}

func runExec(opts *ExecOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if !json.Valid([]byte(opts.Args)) {
		return f.Fail(ExitCommandError, ErrCodeInvalidArgs, "invalid --args JSON", nil)
	}

	d, err := opts.catalog().Lookup(opts.Domain)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, err.Error(), nil)
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to open event log", err)
	}
	defer st.Close()

	appended, err := d.Execute(cmd.Context(), st, opts.Decision, json.RawMessage(opts.Args), f.Logger())
	if err != nil {
		var rejected *catalog.RejectedError
		if errors.As(err, &rejected) {
			return f.Fail(ExitFailure, ErrCodeRejected, rejected.Err.Error(), nil)
		}
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to execute decision", err)
	}

	if f.JSON() {
		return f.Success(ExecResult{Domain: d.Name(), Decision: opts.Decision, Appended: appended})
	}

	if len(appended) == 0 {
		fmt.Fprintf(f.Writer, "✓ %s produced no events\n", opts.Decision)
		return nil
	}
	fmt.Fprintf(f.Writer, "✓ %s appended %d event(s)\n", opts.Decision, len(appended))
	printEntries(f, appended)
	return nil
}

func printEntries(f *OutputFormatter, entries []catalog.Entry) {
	for _, e := range entries {
		fmt.Fprintf(f.Writer, "  [%d] %s %s\n", e.Seq, e.Type, e.Data)
	}
}
