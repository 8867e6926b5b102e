package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmkumar2005/disintegrate/internal/catalog"
	"github.com/gmkumar2005/disintegrate/internal/store"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	DB     string
	Domain string
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the events in an event log",
		Long: `Print the events stored in a SQLite event log in sequence order.

With --domain only that domain's event types are listed, decoded through
its codec. Without it every record is listed as stored.

Example:
  disintegrate log --db ./events.db --domain cart`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to the SQLite event log (required)")
	cmd.Flags().StringVar(&opts.Domain, "domain", "", "only list this domain's events")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	var d catalog.Domain
	if opts.Domain != "" {
		var err error
		if d, err = opts.catalog().Lookup(opts.Domain); err != nil {
			return f.Fail(ExitCommandError, ErrCodeNotFound, err.Error(), nil)
		}
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to open event log", err)
	}
	defer st.Close()

	var entries []catalog.Entry
	if d != nil {
		entries, err = d.Log(cmd.Context(), st)
	} else {
		entries, err = rawEntries(cmd, st)
	}
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to read event log", err)
	}

	if f.JSON() {
		return f.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(f.Writer, "No events.")
		return nil
	}
	printEntries(f, entries)
	return nil
}

func rawEntries(cmd *cobra.Command, st *store.Store) ([]catalog.Entry, error) {
	records, err := st.Read(cmd.Context(), nil)
	if err != nil {
		return nil, err
	}
	entries := make([]catalog.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, catalog.Entry{Seq: r.Seq, Type: r.Envelope.Type, Data: r.Envelope.Data})
	}
	return entries, nil
}
