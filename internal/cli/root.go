package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gmkumar2005/disintegrate/internal/catalog"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Catalog resolves domain names. Defaults to the built-in demo domains.
	Catalog *catalog.Catalog
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command with the built-in domains.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(catalog.Builtin())
}

// NewRootCommandWith creates the root command over the given domains.
func NewRootCommandWith(c *catalog.Catalog) *cobra.Command {
	opts := &RootOptions{Catalog: c}

	cmd := &cobra.Command{
		Use:   "disintegrate",
		Short: "Test and run event-sourced decisions",
		Long: `disintegrate runs decision scenarios (given a history, when a decision
runs, then expect events or an error) and executes decisions against a
SQLite event log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewLogCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewDomainsCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func (o *RootOptions) catalog() *catalog.Catalog {
	if o.Catalog == nil {
		o.Catalog = catalog.Builtin()
	}
	return o.Catalog
}
