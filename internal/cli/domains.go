package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// DomainInfo describes one registered domain.
type DomainInfo struct {
	Name       string   `json:"name"`
	Decisions  []string `json:"decisions"`
	EventTypes []string `json:"event_types"`
}

// NewDomainsCommand creates the domains command.
func NewDomainsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "domains",
		Short:         "List the known domains, their decisions and event types",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDomains(rootOpts, cmd)
		},
	}
}

func runDomains(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	c := opts.catalog()

	infos := make([]DomainInfo, 0, len(c.Names()))
	for _, name := range c.Names() {
		d, _ := c.Lookup(name)
		infos = append(infos, DomainInfo{Name: name, Decisions: d.Decisions(), EventTypes: d.EventTypes()})
	}

	if f.JSON() {
		return f.Success(infos)
	}
	for _, info := range infos {
		fmt.Fprintf(f.Writer, "%s\n", info.Name)
		fmt.Fprintf(f.Writer, "  decisions: %s\n", strings.Join(info.Decisions, ", "))
		fmt.Fprintf(f.Writer, "  events:    %s\n", strings.Join(info.EventTypes, ", "))
	}
	return nil
}
