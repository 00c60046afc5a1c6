package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullDeck(t *testing.T) {
	t.Parallel()

	cards := Full()
	require.Len(t, cards, Size)

	// Every (rank, suit) pair exactly once
	seen := make(map[Card]bool, Size)
	for _, card := range cards {
		require.False(t, seen[card], "duplicate card %s in full deck", card.Code())
		seen[card] = true
	}

	// Deterministic enumeration order
	assert.Equal(t, Full(), cards)
	assert.Equal(t, Card{Suit: Clubs, Rank: Two}, cards[0])
	assert.Equal(t, Card{Suit: Spades, Rank: Ace}, cards[Size-1])
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	known := MustParseCards("AsKd")
	remaining, err := Remaining(known)
	require.NoError(t, err)
	require.Len(t, remaining, Size-2)

	for _, card := range remaining {
		for _, k := range known {
			assert.NotEqual(t, k, card)
		}
	}
}

func TestRemainingEmptyKnown(t *testing.T) {
	t.Parallel()

	remaining, err := Remaining(nil)
	require.NoError(t, err)
	assert.Equal(t, Full(), remaining)
}

func TestRemainingDuplicateCard(t *testing.T) {
	t.Parallel()

	_, err := Remaining(MustParseCards("AsKdAs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateCard)
}

func TestCardSet(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("As2c7h")
	set, err := NewCardSet(cards)
	require.NoError(t, err)

	for _, card := range cards {
		assert.True(t, set.Contains(card))
	}
	assert.False(t, set.Contains(Card{Rank: King, Suit: Spades}))

	_, err = NewCardSet(MustParseCards("AsAs"))
	assert.ErrorIs(t, err, ErrDuplicateCard)
}
