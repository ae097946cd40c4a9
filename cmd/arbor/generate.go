package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"arbor/internal/core"
	"arbor/internal/server"
)

// grow opens the selected variant and generates it once.
func grow(cmd *cobra.Command, opts *options) (*core.Result, time.Duration, error) {
	logger, err := opts.logger(cmd)
	if err != nil {
		return nil, 0, err
	}
	v, err := opts.open()
	if err != nil {
		return nil, 0, err
	}
	seed, err := opts.resolveSeed(cmd)
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	res, err := core.Generate(v, seed)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("generate", "variant", v.Name(), "seed", seed, "error", err)
		return nil, elapsed, err
	}
	logger.Debug("generate", "variant", v.Name(), "seed", seed, "grammar_length", len([]rune(res.Grammar)), "instances", res.Transforms.Total(), "duration", elapsed)
	return res, elapsed, nil
}

func newExpandCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "expand",
		Short: "Print the expanded grammar string",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format, err := outputFormat(opts.format, w)
			if err != nil {
				return err
			}
			res, _, err := grow(cmd, opts)
			if err != nil {
				return err
			}
			if format == formatSummary {
				_, err := fmt.Fprintln(w, res.Grammar)
				return err
			}
			return encode(w, format, struct {
				Variant string `json:"variant" yaml:"variant"`
				Seed    int64  `json:"seed" yaml:"seed"`
				Grammar string `json:"grammar" yaml:"grammar"`
			}{res.Variant, res.Seed, res.Grammar})
		},
	}
}

func newGenerateCmd(opts *options) *cobra.Command {
	var includeGrammar bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate instance transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format, err := outputFormat(opts.format, w)
			if err != nil {
				return err
			}
			res, elapsed, err := grow(cmd, opts)
			if err != nil {
				return err
			}
			if format == formatSummary {
				printSummary(w, res, elapsed)
				return nil
			}
			return encode(w, format, server.NewResponse(res, includeGrammar))
		},
	}
	cmd.Flags().BoolVar(&includeGrammar, "grammar", false, "include the expanded grammar in the output")
	return cmd
}

func printSummary(w io.Writer, res *core.Result, elapsed time.Duration) {
	st := newStyler(w)
	fmt.Fprintln(w, st.title(res.Variant))
	st.field(w, "seed", res.Seed)
	st.field(w, "grammar length", len([]rune(res.Grammar)))
	for _, class := range res.Transforms.Classes() {
		st.field(w, string(class), res.Transforms.Len(class))
	}
	st.field(w, "instances", res.Transforms.Total())
	st.field(w, "elapsed", elapsed.Round(time.Microsecond))
}
