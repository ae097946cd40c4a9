// Package sweep runs one variant across many seeds and parameter values on a
// bounded worker pool.
package sweep

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"arbor/internal/core"
	"arbor/internal/logging"
	"arbor/internal/lsystem"
	"arbor/internal/metrics"
)

// ErrNoSeeds reports a job without any seed to run.
var ErrNoSeeds = errors.New("sweep needs at least one seed")

// Job describes the grid to run: every seed for every value of Key.
type Job struct {
	Variant string
	Config  map[string]string
	// Key is the parameter to vary. Empty runs the base config only.
	Key    string
	Values []string
	Seeds  []int64
}

// Record is the telemetry of one run.
type Record struct {
	Seed          int64
	Key           string
	Value         string
	GrammarLength int
	Counts        map[lsystem.GeometryClass]int
	Duration      time.Duration
	Err           error
}

// Total sums the instance counts of the run.
func (r Record) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Runner executes jobs. The zero value uses the global variant registry, one
// worker and no logging.
type Runner struct {
	Workers int
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Lookup  func(name string, cfg map[string]string) (core.Variant, error)
}

type task struct {
	seed  int64
	value string
	cfg   map[string]string
}

// Seeds returns n consecutive seeds starting at start.
func Seeds(start int64, n int) []int64 {
	out := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start+int64(i))
	}
	return out
}

// Run executes the job and returns one record per (value, seed) pair in
// grid order, regardless of completion order. Per-run failures land in
// Record.Err; Run itself fails only for a job that cannot start or a
// cancelled context.
func (r *Runner) Run(ctx context.Context, job Job) ([]Record, error) {
	lookup := r.Lookup
	if lookup == nil {
		lookup = core.Lookup
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	if len(job.Seeds) == 0 {
		return nil, ErrNoSeeds
	}
	if _, err := lookup(job.Variant, job.Config); err != nil {
		return nil, err
	}

	tasks := plan(job)
	records := make([]Record, len(tasks))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	logger.Info("sweep started", "variant", job.Variant, "runs", len(tasks), "workers", workers)
	for idx, t := range tasks {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return records[:idx], err
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return records[:idx], ctx.Err()
		}
		wg.Add(1)
		go func(i int, t task) {
			defer wg.Done()
			records[i] = r.runOne(lookup, job, t)
			<-sem
		}(idx, t)
	}
	wg.Wait()

	failed := 0
	for _, rec := range records {
		if rec.Err != nil {
			failed++
			logger.Warn("sweep run failed", "seed", rec.Seed, "value", rec.Value, "error", rec.Err)
		}
	}
	logger.Info("sweep finished", "variant", job.Variant, "runs", len(records), "failed", failed)
	return records, nil
}

func plan(job Job) []task {
	values := job.Values
	if job.Key == "" || len(values) == 0 {
		values = []string{""}
	}
	tasks := make([]task, 0, len(values)*len(job.Seeds))
	for _, v := range values {
		cfg := make(map[string]string, len(job.Config)+1)
		for k, val := range job.Config {
			cfg[k] = val
		}
		if job.Key != "" && v != "" {
			cfg[job.Key] = v
		}
		for _, seed := range job.Seeds {
			tasks = append(tasks, task{seed: seed, value: v, cfg: cfg})
		}
	}
	return tasks
}

func (r *Runner) runOne(lookup func(string, map[string]string) (core.Variant, error), job Job, t task) Record {
	rec := Record{Seed: t.seed, Key: job.Key, Value: t.value}
	v, err := lookup(job.Variant, t.cfg)
	if err != nil {
		rec.Err = err
		return rec
	}
	start := time.Now()
	res, err := core.Generate(v, t.seed)
	rec.Duration = time.Since(start)
	r.Metrics.ObserveGeneration(job.Variant, rec.Duration, res, err)
	if err != nil {
		rec.Err = err
		return rec
	}
	rec.GrammarLength = len([]rune(res.Grammar))
	rec.Counts = res.Transforms.Counts()
	return rec
}

// Best returns the successful record with the most instances of class.
// Ties keep the earliest record.
func Best(records []Record, class lsystem.GeometryClass) (Record, bool) {
	var best Record
	found := false
	for _, rec := range records {
		if rec.Err != nil {
			continue
		}
		if !found || rec.Counts[class] > best.Counts[class] {
			best = rec
			found = true
		}
	}
	return best, found
}
