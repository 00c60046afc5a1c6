package main

import (
	"fmt"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
)

// EvalCmd classifies a single hand
type EvalCmd struct {
	Cards string `arg:"" help:"5-7 cards in compact notation (e.g., 'AsKsQsJsTs')"`
}

func (c *EvalCmd) Run() error {
	cards, err := deck.ParseCards(c.Cards)
	if err != nil {
		return fmt.Errorf("parsing cards: %w", err)
	}

	category, err := evaluator.Evaluate(cards)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", deck.FormatCards(cards), category)
	return nil
}
