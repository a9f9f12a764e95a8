package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"cpsir/internal/cfg"
	"cpsir/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool
	Normalize  bool
	Order      string

	// Config is resolved before any subcommand runs
	Config *config.Config
}

// NewRootCommand creates the root command of the cpsc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cpsc",
		Short: "CPS middle-end: conversion, control flow graphs and dataflow analysis",
		Long: `cpsc reads a program in s-expression syntax, converts it to
continuation-passing style and can build its control flow graph, compute
available expressions or evaluate it.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Resolve(opts.ConfigPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("normalize") {
				c.Normalize = opts.Normalize
			}
			if flags.Changed("order") {
				c.Order = opts.Order
			}
			if opts.Verbose && c.Verbosity < 2 {
				c.Verbosity = 2
			}
			if opts.NoColor {
				c.Color = false
			}
			if err := c.Validate(); err != nil {
				return err
			}

			color.NoColor = !c.Color
			var logFile *string
			if c.LogFile != "" {
				logFile = &c.LogFile
			}
			commonlog.Configure(c.Verbosity, logFile)

			opts.Config = c
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log pass details to stderr")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable coloured output")
	flags.BoolVarP(&opts.Normalize, "normalize", "n", false, "hoist value bindings above continuation bindings")
	flags.StringVar(&opts.Order, "order", cfg.LIFO.String(), "worklist order (lifo|fifo)")

	// Add subcommands
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewCFGCommand(opts))
	cmd.AddCommand(NewAvailCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))

	return cmd
}

// config returns the resolved configuration, or the defaults when a
// subcommand runs without its root.
func (o *RootOptions) config() *config.Config {
	if o.Config == nil {
		o.Config = config.Default()
	}
	return o.Config
}
