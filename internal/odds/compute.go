package odds

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
	"github.com/lox/holdem-odds/internal/randutil"
)

// Options configures a distribution computation. The zero value selects
// the defaults: 10,000 Monte Carlo iterations and a time-seeded RNG.
type Options struct {
	// Iterations is the Monte Carlo trial count used when three or more
	// board cards are unknown. Zero selects DefaultIterations.
	Iterations int

	// Rand is the random source for sampling. Nil selects a time-seeded
	// source; supply a seeded source for reproducible results.
	Rand *rand.Rand
}

// Compute returns the probability distribution over final hand categories
// for two hole cards and a partially revealed board of up to five cards.
//
// The strategy depends on how many board cards are still unknown: with
// none, the known hand is classified once and gets the full probability
// mass; with one or two, every completion is enumerated exhaustively; with
// three or more, the distribution is estimated by Monte Carlo sampling.
func Compute(ctx context.Context, hole, board []deck.Card, opts Options) (Distribution, error) {
	if len(hole) != 2 {
		return Distribution{}, fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}

	missing := 5 - len(board)

	if missing <= 0 {
		// Fully (or over-) specified board: classify exactly the cards
		// given. Evaluate rejects anything outside 5-7 distinct cards.
		known := make([]deck.Card, 0, len(hole)+len(board))
		known = append(known, hole...)
		known = append(known, board...)
		category, err := evaluator.Evaluate(known)
		if err != nil {
			return Distribution{}, err
		}
		return Degenerate(category), nil
	}

	if missing <= 2 {
		return Exact(hole, board, missing)
	}

	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	rng := opts.Rand
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	return Sample(ctx, hole, board, missing, iterations, rng)
}
