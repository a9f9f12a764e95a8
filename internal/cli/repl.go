package cli

import (
	"github.com/spf13/cobra"

	"cpsir/repl"
)

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "repl",
		Short:        "Read expressions, show their CPS form and evaluate them",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), rootOpts.config())
		},
	}
}
