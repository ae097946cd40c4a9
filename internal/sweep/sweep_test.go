package sweep

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/core"
	"arbor/internal/lsystem"
	"arbor/internal/metrics"
	_ "arbor/internal/variants/tree"
)

func TestSeeds(t *testing.T) {
	assert.Equal(t, []int64{5, 6, 7}, Seeds(5, 3))
	assert.Empty(t, Seeds(5, 0))
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	job := Job{
		Variant: "tree",
		Config:  map[string]string{"iterations": "2"},
		Key:     "angle",
		Values:  []string{"20", "45"},
		Seeds:   Seeds(1, 4),
	}
	serial, err := (&Runner{Workers: 1}).Run(context.Background(), job)
	require.NoError(t, err)
	parallel, err := (&Runner{Workers: 4}).Run(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, serial, 8)
	require.Len(t, parallel, 8)
	for i := range serial {
		assert.NoError(t, serial[i].Err)
		assert.Equal(t, serial[i].Seed, parallel[i].Seed)
		assert.Equal(t, serial[i].Value, parallel[i].Value)
		assert.Equal(t, serial[i].Counts, parallel[i].Counts)
		assert.Equal(t, serial[i].GrammarLength, parallel[i].GrammarLength)
	}
	assert.Equal(t, "20", serial[0].Value)
	assert.Equal(t, int64(4), serial[3].Seed)
	assert.Equal(t, "45", serial[4].Value)
}

func TestRunCountsMetricsAndBest(t *testing.T) {
	m := metrics.New()
	r := &Runner{Workers: 2, Metrics: m}
	recs, err := r.Run(context.Background(), Job{
		Variant: "tree",
		Key:     "iterations",
		Values:  []string{"0", "2"},
		Seeds:   Seeds(10, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Generations.WithLabelValues("tree", "ok")))

	best, ok := Best(recs, lsystem.Branch)
	require.True(t, ok)
	assert.Equal(t, "2", best.Value)
	assert.Equal(t, 1, recs[0].Counts[lsystem.Branch])
	assert.Equal(t, 1, recs[0].Total())
}

func TestRunReportsPerRunFailures(t *testing.T) {
	recs, err := (&Runner{}).Run(context.Background(), Job{
		Variant: "tree",
		Key:     "iterations",
		Values:  []string{"1", "-1"},
		Seeds:   Seeds(1, 1),
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.NoError(t, recs[0].Err)
	assert.ErrorIs(t, recs[1].Err, lsystem.ErrInvalidConfig)

	_, ok := Best(recs[1:], lsystem.Branch)
	assert.False(t, ok)
}

func TestRunRejectsBadJobs(t *testing.T) {
	_, err := (&Runner{}).Run(context.Background(), Job{Variant: "tree"})
	assert.ErrorIs(t, err, ErrNoSeeds)
	_, err = (&Runner{}).Run(context.Background(), Job{Variant: "fern", Seeds: Seeds(1, 1)})
	assert.ErrorIs(t, err, core.ErrUnknownVariant)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Workers: 1}
	recs, err := r.Run(ctx, Job{Variant: "tree", Seeds: Seeds(1, 50)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, len(recs), 50)
}
