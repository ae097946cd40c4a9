package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"arbor/internal/core"
	"arbor/internal/lsystem"
	"arbor/internal/server"
)

func newVariantsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the registered variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format, err := outputFormat(opts.format, w)
			if err != nil {
				return err
			}
			infos := make([]server.VariantInfo, 0, len(core.Names()))
			for _, name := range core.Names() {
				v, err := core.Lookup(name, nil)
				if err != nil {
					return err
				}
				infos = append(infos, server.Describe(v))
			}
			if format != formatSummary {
				return encode(w, format, infos)
			}
			st := newStyler(w)
			for _, info := range infos {
				fmt.Fprintf(w, "%s  axiom %s, %d iterations, %v°\n",
					st.title(fmt.Sprintf("%-10s", info.Name)), info.Config.Axiom, info.Config.Iterations, info.Config.Angle)
			}
			return nil
		},
	}
}

func newDescribeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Show the settings and tunables of a variant or grammar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format, err := outputFormat(opts.format, w)
			if err != nil {
				return err
			}
			v, err := opts.open()
			if err != nil {
				return err
			}
			info := server.Describe(v)
			if format != formatSummary {
				return encode(w, format, info)
			}
			st := newStyler(w)
			fmt.Fprintln(w, st.title(info.Name))
			describeConfig(st, w, info.Config)
			for _, g := range info.Parameters.Groups {
				fmt.Fprintln(w, st.title(g.Name))
				params := append([]core.Parameter(nil), g.Params...)
				sort.SliceStable(params, func(i, j int) bool { return params[i].Key < params[j].Key })
				for _, p := range params {
					st.field(w, p.Key, p.Value)
				}
			}
			return nil
		},
	}
}

func describeConfig(st styler, w io.Writer, cfg lsystem.Config) {
	st.field(w, "axiom", cfg.Axiom)
	st.field(w, "iterations", cfg.Iterations)
	st.field(w, "angle", cfg.Angle)
	st.field(w, "max_length", cfg.MaxLength)
}
