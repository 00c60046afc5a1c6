// Package evaluator classifies 5-7 card hold'em hands into strength
// categories. It is a pure classifier: no shared state, safe for
// concurrent use.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-odds/internal/deck"
)

// Category enumerates poker hand strength classes ordered from weakest
// to strongest. Exactly one category applies to any hand: the best one
// it contains.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// NumCategories is the number of distinct hand categories
const NumCategories = 10

// String returns a human-readable category description
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Categories returns all categories ordered from strongest to weakest,
// the order results are conventionally displayed in.
func Categories() []Category {
	return []Category{
		RoyalFlush, StraightFlush, FourOfAKind, FullHouse, Flush,
		Straight, ThreeOfAKind, TwoPair, Pair, HighCard,
	}
}

// ErrHandSize indicates an evaluation request outside the 5-7 card range.
// Below five cards no complete poker hand exists, so classification is
// rejected rather than guessed.
var ErrHandSize = errors.New("hand must contain 5 to 7 cards")

// Evaluate classifies a 5-7 card hand into its best category. The result
// depends only on the set of cards, not their order. It returns an error
// for hands outside the 5-7 card range and for duplicate cards.
func Evaluate(cards []deck.Card) (Category, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HighCard, fmt.Errorf("%w: got %d", ErrHandSize, len(cards))
	}
	if _, err := deck.NewCardSet(cards); err != nil {
		return HighCard, err
	}

	// Count by rank and suit into fixed-size arrays. Deterministic
	// iteration, O(1) auxiliary space.
	var rankCounts [13]int
	var suitCounts [4]int
	for _, card := range cards {
		rankCounts[card.Rank.Value()-2]++
		suitCounts[card.Suit]++
	}

	// Flush detection. With at most seven cards only one suit can reach
	// five, so the first qualifying suit is the flush suit.
	flushSuit := deck.Suit(-1)
	for suit, count := range suitCounts {
		if count >= 5 {
			flushSuit = deck.Suit(suit)
			break
		}
	}

	if flushSuit >= 0 {
		var flushRanks [13]int
		for _, card := range cards {
			if card.Suit == flushSuit {
				flushRanks[card.Rank.Value()-2]++
			}
		}
		if high := straightHigh(flushRanks); high > 0 {
			if high == deck.Ace.Value() {
				return RoyalFlush, nil
			}
			return StraightFlush, nil
		}
	}

	trips := 0 // rank groups of three or more
	pairs := 0 // rank groups of exactly two
	quads := false
	for _, count := range rankCounts {
		switch {
		case count == 4:
			quads = true
		case count >= 3:
			trips++
		case count == 2:
			pairs++
		}
	}

	switch {
	case quads:
		return FourOfAKind, nil
	// A second group of three donates three cards, two of which fill the
	// pair slot of the full house.
	case trips >= 1 && (pairs >= 1 || trips >= 2):
		return FullHouse, nil
	case flushSuit >= 0:
		return Flush, nil
	case straightHigh(rankCounts) > 0:
		return Straight, nil
	case trips >= 1:
		return ThreeOfAKind, nil
	case pairs >= 2:
		return TwoPair, nil
	case pairs == 1:
		return Pair, nil
	default:
		return HighCard, nil
	}
}

// straightHigh returns the strength of the highest card completing a
// five-card run over the given rank counts, or 0 when no straight exists.
// The ace counts both high (14) and low (1) so the wheel A-2-3-4-5 is a
// straight with high card 5.
func straightHigh(rankCounts [13]int) int {
	var present [15]bool // values 1-14
	for i, count := range rankCounts {
		if count > 0 {
			present[i+2] = true
		}
	}
	present[1] = present[deck.Ace.Value()]

	run := 0
	best := 0
	for value := 1; value <= 14; value++ {
		if !present[value] {
			run = 0
			continue
		}
		run++
		if run >= 5 {
			best = value
		}
	}
	return best
}
