package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"arbor/internal/core"
	"arbor/internal/lsystem"
	"arbor/internal/sweep"
	"arbor/internal/variants"
)

// sweepRow is the wire form of one sweep record.
type sweepRow struct {
	Seed          int64          `json:"seed" yaml:"seed"`
	Key           string         `json:"key,omitempty" yaml:"key,omitempty"`
	Value         string         `json:"value,omitempty" yaml:"value,omitempty"`
	GrammarLength int            `json:"grammar_length" yaml:"grammar_length"`
	Counts        map[string]int `json:"counts,omitempty" yaml:"counts,omitempty"`
	DurationMS    float64        `json:"duration_ms" yaml:"duration_ms"`
	Error         string         `json:"error,omitempty" yaml:"error,omitempty"`
}

func newSweepRow(rec sweep.Record) sweepRow {
	row := sweepRow{
		Seed:          rec.Seed,
		Key:           rec.Key,
		Value:         rec.Value,
		GrammarLength: rec.GrammarLength,
		DurationMS:    float64(rec.Duration.Microseconds()) / 1000,
	}
	if len(rec.Counts) > 0 {
		row.Counts = make(map[string]int, len(rec.Counts))
		for class, n := range rec.Counts {
			row.Counts[string(class)] = n
		}
	}
	if rec.Err != nil {
		row.Error = rec.Err.Error()
	}
	return row
}

func newSweepCmd(opts *options) *cobra.Command {
	var (
		workers int
		key     string
		values  []string
		count   int
		best    string
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Generate across many seeds and parameter values in parallel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format, err := outputFormat(opts.format, w)
			if err != nil {
				return err
			}
			logger, err := opts.logger(cmd)
			if err != nil {
				return err
			}
			src, err := opts.source()
			if err != nil {
				return err
			}
			start, err := opts.resolveSeed(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := &sweep.Runner{
				Workers: workers,
				Logger:  logger,
				Lookup: func(name string, cfg map[string]string) (core.Variant, error) {
					s := src
					s.Name, s.Overrides = name, cfg
					return variants.Open(s)
				},
			}
			job := sweep.Job{
				Variant: src.Name,
				Config:  src.Overrides,
				Key:     key,
				Values:  values,
				Seeds:   sweep.Seeds(start, count),
			}
			began := time.Now()
			records, err := runner.Run(ctx, job)
			if err != nil {
				return err
			}

			if format != formatSummary {
				rows := make([]sweepRow, len(records))
				for i, rec := range records {
					rows[i] = newSweepRow(rec)
				}
				return encode(w, format, rows)
			}
			printSweep(w, records, lsystem.GeometryClass(best), time.Since(began))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&workers, "workers", runtime.NumCPU(), "parallel generations")
	f.StringVar(&key, "key", "", "config key to vary")
	f.StringSliceVar(&values, "values", nil, "comma separated values for --key")
	f.IntVar(&count, "count", 8, "seeds per value, counting up from --seed")
	f.StringVar(&best, "best", string(lsystem.Branch), "geometry class to rank runs by")
	return cmd
}

func printSweep(w io.Writer, records []sweep.Record, class lsystem.GeometryClass, elapsed time.Duration) {
	st := newStyler(w)
	fmt.Fprintln(w, st.title(fmt.Sprintf("%-8s %-10s %10s %10s %10s", "seed", "value", "grammar", "instances", "ms")))
	for _, rec := range records {
		if rec.Err != nil {
			fmt.Fprintf(w, "%-8d %-10s %s\n", rec.Seed, rec.Value, st.failure(rec.Err.Error()))
			continue
		}
		fmt.Fprintf(w, "%-8d %-10s %10d %10d %10.2f\n", rec.Seed, rec.Value, rec.GrammarLength, rec.Total(),
			float64(rec.Duration.Microseconds())/1000)
	}
	if top, ok := sweep.Best(records, class); ok {
		label := fmt.Sprintf("seed %d", top.Seed)
		if top.Key != "" {
			label += fmt.Sprintf(", %s=%s", top.Key, top.Value)
		}
		st.field(w, "most "+string(class), fmt.Sprintf("%s (%d)", label, top.Counts[class]))
	}
	st.field(w, "runs", len(records))
	st.field(w, "elapsed", elapsed.Round(time.Millisecond))
}
