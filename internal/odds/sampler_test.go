package odds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
	"github.com/lox/holdem-odds/internal/randutil"
)

func TestSampleReproducible(t *testing.T) {
	t.Parallel()

	hole := deck.MustParseCards("AsKd")

	first, err := Sample(context.Background(), hole, nil, 5, 1000, randutil.New(42))
	require.NoError(t, err)
	second, err := Sample(context.Background(), hole, nil, 5, 1000, randutil.New(42))
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed must yield identical distributions")

	third, err := Sample(context.Background(), hole, nil, 5, 1000, randutil.New(43))
	require.NoError(t, err)
	assert.NotEqual(t, first, third, "different seeds should diverge")
}

func TestSampleParallelReproducible(t *testing.T) {
	t.Parallel()

	hole := deck.MustParseCards("QhQc")

	// Above the parallel threshold the worker split must still be
	// deterministic for a fixed seed.
	first, err := Sample(context.Background(), hole, nil, 5, 10000, randutil.New(99))
	require.NoError(t, err)
	second, err := Sample(context.Background(), hole, nil, 5, 10000, randutil.New(99))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.InDelta(t, 1.0, first.Sum(), 1e-9)
}

func TestSampleConvergesToExact(t *testing.T) {
	t.Parallel()

	// With three unknowns the exact distribution is still enumerable
	// (C(48,3) completions), so the sampler can be cross-checked against
	// brute force.
	hole := deck.MustParseCards("AsKs")
	board := deck.MustParseCards("QsJs")

	exact, err := Exact(hole, board, 3)
	require.NoError(t, err)
	require.InDelta(t, 1.0, exact.Sum(), 1e-9)

	sampled, err := Sample(context.Background(), hole, board, 3, 50000, randutil.New(1))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sampled.Sum(), 1e-9)

	for category := evaluator.HighCard; category <= evaluator.RoyalFlush; category++ {
		if exact[category] < 0.05 {
			continue
		}
		assert.InDelta(t, exact[category], sampled[category], 0.02,
			"category %s drifted from exact probability", category)
	}
}

func TestSampleCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sample(ctx, deck.MustParseCards("AsKd"), nil, 5, 1000, randutil.New(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleDuplicateCard(t *testing.T) {
	t.Parallel()

	_, err := Sample(context.Background(), deck.MustParseCards("AsAs"), nil, 5, 100, randutil.New(1))
	assert.ErrorIs(t, err, deck.ErrDuplicateCard)
}

func TestSampleRejectsBadArguments(t *testing.T) {
	t.Parallel()

	hole := deck.MustParseCards("AsKd")

	_, err := Sample(context.Background(), hole, nil, 0, 100, randutil.New(1))
	assert.Error(t, err)

	_, err = Sample(context.Background(), hole, nil, 5, 0, randutil.New(1))
	assert.Error(t, err)
}
