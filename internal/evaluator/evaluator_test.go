package evaluator

import (
	"testing"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/randutil"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		expected Category
	}{
		{
			name:     "royal flush",
			cards:    "AsKsQsJsTs9h8h",
			expected: RoyalFlush,
		},
		{
			name:     "royal flush with offsuit noise",
			cards:    "TsJsQsKsAs2c3d",
			expected: RoyalFlush,
		},
		{
			name:     "straight flush",
			cards:    "9s8s7s6s5s4h3h",
			expected: StraightFlush,
		},
		{
			name:     "steel wheel straight flush",
			cards:    "As2s3s4s5sKhQd",
			expected: StraightFlush,
		},
		{
			name:     "four of a kind",
			cards:    "AsAhAdAcKs2h3h",
			expected: FourOfAKind,
		},
		{
			name:     "full house",
			cards:    "AsAhAdKsKh2h3h",
			expected: FullHouse,
		},
		{
			name:     "full house from two trip groups",
			cards:    "KsKdKcQsQdQc2h",
			expected: FullHouse,
		},
		{
			name:     "flush",
			cards:    "AsKsQs8s6s4h3h",
			expected: Flush,
		},
		{
			name:     "straight",
			cards:    "AsKhQdJcTs9h8h",
			expected: Straight,
		},
		{
			name:     "wheel straight",
			cards:    "As2d3c4h5s9cKd",
			expected: Straight,
		},
		{
			name:     "three of a kind",
			cards:    "AsAhAdKs9c7h5h",
			expected: ThreeOfAKind,
		},
		{
			name:     "two pair",
			cards:    "AsAhKdKs9c7h5h",
			expected: TwoPair,
		},
		{
			name:     "three pairs is still two pair",
			cards:    "AsAhKdKs9c9h5h",
			expected: TwoPair,
		},
		{
			name:     "pair",
			cards:    "AsAhKdQs9c7h5h",
			expected: Pair,
		},
		{
			name:     "high card",
			cards:    "AsKhQd9s7c5h3h",
			expected: HighCard,
		},
		{
			name:     "five card hand",
			cards:    "AsKhQd9s7c",
			expected: HighCard,
		},
		{
			name:     "six card flush",
			cards:    "AsKsQs8s6s4h",
			expected: Flush,
		},
		{
			name:     "no straight around the corner",
			cards:    "KsAh2d3c4h9sJc",
			expected: HighCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := Evaluate(deck.MustParseCards(tt.cards))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if category != tt.expected {
				t.Errorf("Evaluate(%s) = %s, want %s", tt.cards, category, tt.expected)
			}
		})
	}
}

func TestEvaluateOrderInvariant(t *testing.T) {
	t.Parallel()

	cards := deck.MustParseCards("As2d3c4h5s9cKd")
	want, err := Evaluate(cards)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := randutil.New(7)
	for i := 0; i < 50; i++ {
		shuffled := make([]deck.Card, len(cards))
		copy(shuffled, cards)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := Evaluate(shuffled)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("Evaluate order-dependent: got %s, want %s for %v", got, want, shuffled)
		}
	}
}

func TestEvaluateHandSize(t *testing.T) {
	t.Parallel()

	if _, err := Evaluate(deck.MustParseCards("AsKh")); err == nil {
		t.Error("expected error for 2-card hand")
	}
	if _, err := Evaluate(deck.MustParseCards("As2s3s4s5s6s7s8s")); err == nil {
		t.Error("expected error for 8-card hand")
	}
}

func TestEvaluateDuplicateCards(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(deck.MustParseCards("AsAsKhQd9c"))
	if err == nil {
		t.Fatal("expected error for duplicate cards")
	}
}

func TestCategoryOrdering(t *testing.T) {
	t.Parallel()

	// Categories are strictly ranked by their ordinal
	ordered := []Category{
		HighCard, Pair, TwoPair, ThreeOfAKind, Straight,
		Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("expected %s < %s", ordered[i-1], ordered[i])
		}
	}

	if len(Categories()) != NumCategories {
		t.Errorf("Categories() returned %d entries, want %d", len(Categories()), NumCategories)
	}
}
