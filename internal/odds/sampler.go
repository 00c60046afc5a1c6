package odds

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
	"github.com/lox/holdem-odds/internal/randutil"
)

// parallelThreshold is the iteration count above which sampling is split
// across workers; below it the goroutine overhead outweighs the work.
const parallelThreshold = 2000

// Sample estimates the category distribution by drawing the missing board
// cards uniformly at random without replacement for the given number of
// independent trials. The estimator is unbiased; results are reproducible
// for a given rng seed and vary run to run otherwise. Cancellation is
// cooperative: the context is checked between trials, and a cancelled
// sample returns the context's error.
func Sample(ctx context.Context, hole, board []deck.Card, missing, iterations int, rng *rand.Rand) (Distribution, error) {
	if missing < 1 {
		return Distribution{}, fmt.Errorf("sampling needs at least one missing card, got %d", missing)
	}
	if iterations < 1 {
		return Distribution{}, fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	known := make([]deck.Card, 0, len(hole)+len(board))
	known = append(known, hole...)
	known = append(known, board...)

	remaining, err := deck.Remaining(known)
	if err != nil {
		return Distribution{}, err
	}
	if missing > len(remaining) {
		return Distribution{}, fmt.Errorf("cannot draw %d cards from %d remaining", missing, len(remaining))
	}

	if iterations >= parallelThreshold {
		return sampleParallel(ctx, known, remaining, missing, iterations, rng)
	}

	counts, err := runTrials(ctx, known, remaining, missing, iterations, rng)
	if err != nil {
		return Distribution{}, err
	}
	return normalize(counts, iterations), nil
}

// sampleParallel splits the trials across workers, each with an
// independent RNG derived from the caller's source. Worker seeds are drawn
// sequentially from rng, so a fixed seed still yields reproducible results.
func sampleParallel(ctx context.Context, known, remaining []deck.Card, missing, iterations int, rng *rand.Rand) (Distribution, error) {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8 // diminishing returns beyond this
	}
	if workers > iterations {
		workers = iterations
	}

	perWorker := iterations / workers
	remainder := iterations % workers

	g, ctx := errgroup.WithContext(ctx)
	results := make([][evaluator.NumCategories]int, workers)

	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		seed := int64(rng.Uint64())

		g.Go(func() error {
			workerRng := randutil.New(seed)
			counts, err := runTrials(ctx, known, remaining, missing, trials, workerRng)
			if err != nil {
				return err
			}
			results[w] = counts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Distribution{}, err
	}

	var counts [evaluator.NumCategories]int
	for _, workerCounts := range results {
		for i, count := range workerCounts {
			counts[i] += count
		}
	}
	return normalize(counts, iterations), nil
}

// runTrials performs the given number of random completions over a private
// copy of the remaining deck, counting the category of each completed hand.
func runTrials(ctx context.Context, known, remaining []deck.Card, missing, trials int, rng *rand.Rand) ([evaluator.NumCategories]int, error) {
	var counts [evaluator.NumCategories]int

	pool := make([]deck.Card, len(remaining))
	copy(pool, remaining)

	hand := make([]deck.Card, len(known)+missing)
	copy(hand, known)

	for trial := 0; trial < trials; trial++ {
		if err := ctx.Err(); err != nil {
			return counts, err
		}

		// Partial Fisher-Yates: the first `missing` slots become a uniform
		// draw without replacement.
		for i := 0; i < missing; i++ {
			j := i + rng.IntN(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
			hand[len(known)+i] = pool[i]
		}

		category, err := evaluator.Evaluate(hand)
		if err != nil {
			return counts, err
		}
		counts[category]++
	}

	return counts, nil
}
