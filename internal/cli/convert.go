package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cpsir/internal/ir"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Tree bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "convert <file>",
		Short:        "Print the CPS form of a program",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			prog, err := compileFile(args[0], opts.config().Normalize, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if opts.Tree {
				fmt.Fprint(cmd.OutOrStdout(), ir.Tree(prog))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), ir.Print(prog))
			}
			reportSuccess(cmd.ErrOrStderr(), args[0], start)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Tree, "tree", "t", false, "print the IR as a tree")

	return cmd
}
