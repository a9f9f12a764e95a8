package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cpsir/internal/interp"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	MaxSteps int
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "eval <file>",
		Short:        "Convert a program and run the CPS form",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			prog, err := compileFile(args[0], opts.config().Normalize, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			m := &interp.Machine{MaxSteps: opts.MaxSteps}
			value, err := m.Run(prog)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			reportSuccess(cmd.ErrOrStderr(), args[0], start)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", interp.DefaultMaxSteps, "abort after this many steps (0 for no limit)")

	return cmd
}
