package odds

import (
	"fmt"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
)

// Exact computes the category distribution by exhaustively evaluating every
// way the missing board cards could be drawn from the remaining deck. It is
// deterministic: identical inputs always yield identical output. Intended
// for missing counts of one or two, where the search space tops out at
// C(47,2) = 1081 completions.
func Exact(hole, board []deck.Card, missing int) (Distribution, error) {
	if missing < 1 {
		return Distribution{}, fmt.Errorf("exact enumeration needs at least one missing card, got %d", missing)
	}

	known := make([]deck.Card, 0, len(hole)+len(board))
	known = append(known, hole...)
	known = append(known, board...)

	remaining, err := deck.Remaining(known)
	if err != nil {
		return Distribution{}, err
	}

	hand := make([]deck.Card, len(known)+missing)
	copy(hand, known)

	var counts [evaluator.NumCategories]int
	total := 0
	var evalErr error

	eachCombination(len(remaining), missing, func(indices []int) {
		if evalErr != nil {
			return
		}
		for i, idx := range indices {
			hand[len(known)+i] = remaining[idx]
		}
		category, err := evaluator.Evaluate(hand)
		if err != nil {
			evalErr = err
			return
		}
		counts[category]++
		total++
	})
	if evalErr != nil {
		return Distribution{}, evalErr
	}

	if want := binomial(len(remaining), missing); total != want {
		return Distribution{}, fmt.Errorf("enumerated %d completions, expected %d", total, want)
	}

	return normalize(counts, total), nil
}
