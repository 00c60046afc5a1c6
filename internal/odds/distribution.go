// Package odds estimates the distribution of final hand categories for a
// partially revealed hold'em board, exactly when few cards are unknown and
// by Monte Carlo sampling otherwise, and derives an expected value for a
// hypothetical call decision.
package odds

import (
	"github.com/lox/holdem-odds/internal/evaluator"
)

// DefaultIterations is the Monte Carlo trial count used when the caller
// does not specify one. It trades estimator variance (standard error
// ~ sqrt(p(1-p)/N)) against latency.
const DefaultIterations = 10000

// DefaultCost is the fixed hypothetical call price used for expected
// value when the caller does not specify one.
const DefaultCost = 20.0

// Distribution maps each hand category to its probability. Entries are
// indexed by evaluator.Category and sum to 1 (within floating-point
// tolerance in the exact case, sampling error in the Monte Carlo case).
type Distribution [evaluator.NumCategories]float64

// Degenerate returns a distribution with the full probability mass on a
// single category.
func Degenerate(category evaluator.Category) Distribution {
	var d Distribution
	d[category] = 1.0
	return d
}

// Sum returns the total probability mass
func (d Distribution) Sum() float64 {
	var sum float64
	for _, p := range d {
		sum += p
	}
	return sum
}

// MadeHandProbability returns the probability mass on every category
// strictly better than a high card, i.e. the chance of ending with at
// least a pair.
func (d Distribution) MadeHandProbability() float64 {
	var p float64
	for category := evaluator.Pair; category <= evaluator.RoyalFlush; category++ {
		p += d[category]
	}
	return p
}

// ExpectedValue returns the probability-weighted net outcome of calling:
// winning the pot with probability p of a made hand, paying cost otherwise.
// This is a fixed-cost simplification, not a full pot-odds model.
func ExpectedValue(d Distribution, pot, cost float64) float64 {
	p := d.MadeHandProbability()
	return p*pot - (1-p)*cost
}

// normalize converts per-category counts into a Distribution by dividing
// through the total number of trials.
func normalize(counts [evaluator.NumCategories]int, total int) Distribution {
	var d Distribution
	if total == 0 {
		return d
	}
	for i, count := range counts {
		d[i] = float64(count) / float64(total)
	}
	return d
}
