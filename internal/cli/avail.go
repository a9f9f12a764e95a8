package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cpsir/internal/analysis"
	"cpsir/internal/cfg"
)

// AvailOptions holds flags for the avail command.
type AvailOptions struct {
	*RootOptions
	Dot bool
}

// NewAvailCommand creates the avail command.
func NewAvailCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AvailOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "avail <file>",
		Short: "Show the expressions available at every let",
		Long: `Run available-expressions analysis and print, for every primitive
let, the expressions computed on every path reaching it and leaving it.
⊥ marks a point no path has reached yet.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			c := opts.config()
			prog, err := compileFile(args[0], c.Normalize, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			result, err := analysis.Analyze(prog, c.WorklistOrder())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.Dot {
				fmt.Fprint(out, result.Graph.Dot(func(n *cfg.Node[analysis.Set]) string {
					return n.In.String()
				}))
			} else {
				for _, fact := range result.Lets() {
					let := fact.Let
					fmt.Fprintf(out, "let#%d %s = %s\n", fact.Label, let.Var, analysis.Expression{Op: let.Op, Args: let.Args})
					fmt.Fprintf(out, "  before: %s\n", fact.Before)
					fmt.Fprintf(out, "  after:  %s\n", fact.After)
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "fixpoint after %d steps (%s)\n", result.Stats.Steps, c.Order)
			reportSuccess(cmd.ErrOrStderr(), args[0], start)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Dot, "dot", false, "print Graphviz output annotated with incoming facts")

	return cmd
}
