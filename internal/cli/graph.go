package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cpsir/internal/cfg"
)

// CFGOptions holds flags for the cfg command.
type CFGOptions struct {
	*RootOptions
	Dot bool
}

// NewCFGCommand creates the cfg command.
func NewCFGCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CFGOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "cfg <file>",
		Short:        "Print the control flow graph of a program",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			prog, err := compileFile(args[0], opts.config().Normalize, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			g, err := cfg.Build[struct{}](prog)
			if err != nil {
				return fmt.Errorf("building control flow graph: %w", err)
			}
			if opts.Dot {
				fmt.Fprint(cmd.OutOrStdout(), g.Dot(nil))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), g.Dump())
			}
			reportSuccess(cmd.ErrOrStderr(), args[0], start)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Dot, "dot", false, "print Graphviz output")

	return cmd
}
