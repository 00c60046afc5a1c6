package deck

import (
	"errors"
	"fmt"
)

// Size is the number of cards in a standard deck
const Size = 52

// ErrDuplicateCard indicates the same (rank, suit) card was supplied more
// than once among the known cards. A physical deck holds each card exactly
// once, so this is always caller misuse rather than a state the engine can
// evaluate.
var ErrDuplicateCard = errors.New("duplicate card")

// Full returns all 52 distinct cards in a fixed order: suits outer
// (clubs through spades), ranks inner (two through ace). The order carries
// no meaning but is deterministic so downstream enumeration is reproducible.
func Full() []Card {
	cards := make([]Card, 0, Size)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return cards
}

// Remaining returns the full deck minus every card in known, preserving the
// deterministic order of Full. It returns an error wrapping ErrDuplicateCard
// if known itself contains the same card twice.
func Remaining(known []Card) ([]Card, error) {
	seen, err := NewCardSet(known)
	if err != nil {
		return nil, err
	}

	remaining := make([]Card, 0, Size-len(known))
	for _, card := range Full() {
		if !seen.Contains(card) {
			remaining = append(remaining, card)
		}
	}
	return remaining, nil
}

// CardSet represents a set of cards using a bitset for fast membership.
// Each card maps to a bit: index = (rank-2)*4 + suit.
type CardSet uint64

// cardIndex converts a card to its bit index (0-51)
func cardIndex(card Card) int {
	return (card.Rank.Value()-2)*4 + int(card.Suit)
}

// Add adds a card to the set
func (cs *CardSet) Add(card Card) {
	*cs |= 1 << cardIndex(card)
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(card Card) bool {
	return cs&(1<<cardIndex(card)) != 0
}

// NewCardSet creates a CardSet from a slice of cards. It returns an error
// wrapping ErrDuplicateCard when the slice holds the same card twice.
func NewCardSet(cards []Card) (CardSet, error) {
	var cs CardSet
	for _, card := range cards {
		if cs.Contains(card) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateCard, card.Code())
		}
		cs.Add(card)
	}
	return cs, nil
}
