package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"arbor/internal/core"
	"arbor/internal/logging"
	"arbor/internal/variants"
	pkgcore "arbor/pkg/core"
)

// options carries the persistent flags shared by every subcommand.
type options struct {
	logLevel string
	variant  string
	sets     []string
	seed     int64
	file     string
	format   string
	texture  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "arbor",
		Short:         "Arbor grows stochastic L-system structures",
		Long:          `Arbor expands weighted L-system grammars and interprets them with a 3D turtle into per-class instance transforms.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.variant, "variant", "tree", "registered variant to use")
	pf.StringArrayVar(&opts.sets, "set", nil, "config override in key=value form (repeatable)")
	pf.Int64Var(&opts.seed, "seed", 0, "random seed (default: drawn from OS entropy)")
	pf.StringVar(&opts.file, "file", "", "grammar file (yaml or json) to use instead of a variant")
	pf.StringVar(&opts.format, "format", "", "output format: json, yaml or summary (default: summary on a terminal, json otherwise)")
	pf.StringVar(&opts.texture, "texture", "", "terrain PNG for variants that steer")

	cmd.AddCommand(
		newVariantsCmd(opts),
		newDescribeCmd(opts),
		newExpandCmd(opts),
		newGenerateCmd(opts),
		newSweepCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

func (o *options) logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level), nil
}

func (o *options) overrides() (map[string]string, error) {
	return variants.ParseOverrides(o.sets)
}

func (o *options) source() (variants.Source, error) {
	overrides, err := o.overrides()
	if err != nil {
		return variants.Source{}, err
	}
	return variants.Source{Name: o.variant, File: o.file, Overrides: overrides, Texture: o.texture}, nil
}

func (o *options) open() (core.Variant, error) {
	src, err := o.source()
	if err != nil {
		return nil, err
	}
	return variants.Open(src)
}

// resolveSeed returns --seed when given and an entropy seed otherwise.
func (o *options) resolveSeed(cmd *cobra.Command) (int64, error) {
	if cmd.Flags().Changed("seed") {
		return o.seed, nil
	}
	return pkgcore.EntropySeed()
}
