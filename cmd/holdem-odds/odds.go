package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
	"github.com/lox/holdem-odds/internal/odds"
	"github.com/lox/holdem-odds/internal/randutil"
)

// OddsCmd computes the category distribution and EV for a partial board
type OddsCmd struct {
	Hole       string  `arg:"" help:"Two hole cards (e.g., 'AsKd')"`
	Board      string  `short:"b" help:"Community board cards, 0-5 (e.g., 'Td7s8h')"`
	Pot        float64 `short:"p" help:"Pot size for expected value" default:"100"`
	Cost       float64 `help:"Hypothetical call cost" default:"20"`
	Iterations int     `short:"i" help:"Monte Carlo iterations when 3+ cards are unknown" default:"10000"`
	Seed       *int64  `help:"Random seed for reproducible results"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func (c *OddsCmd) Run() error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("parsing hole cards: %w", err)
	}
	if len(hole) != 2 {
		return fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}

	var board []deck.Card
	if c.Board != "" {
		board, err = deck.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("parsing board: %w", err)
		}
		if len(board) > 5 {
			return fmt.Errorf("board cannot have more than 5 cards")
		}
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	startTime := time.Now()
	dist, err := odds.Compute(context.Background(), hole, board, odds.Options{
		Iterations: c.Iterations,
		Rand:       randutil.New(seed),
	})
	if err != nil {
		return err
	}
	duration := time.Since(startTime)

	ev := odds.ExpectedValue(dist, c.Pot, c.Cost)
	c.display(hole, board, dist, ev, duration)
	return nil
}

func (c *OddsCmd) display(hole, board []deck.Card, dist odds.Distribution, ev float64, duration time.Duration) {
	fmt.Printf("%s %s\n", headerStyle.Render("hole"), handStyle.Render(deck.FormatCards(hole)))
	if len(board) > 0 {
		fmt.Printf("%s %s\n", headerStyle.Render("board"), handStyle.Render(deck.FormatCards(board)))
	}
	fmt.Printf("\n")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, category := range evaluator.Categories() {
		p := dist[category]
		if p == 0 {
			fmt.Fprintf(w, "%s\t%s\n", categoryStyle.Render(category.String()), percentStyle.Render("."))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n",
			categoryStyle.Render(category.String()),
			percentStyle.Render(fmt.Sprintf("%.2f%%", p*100)))
	}
	w.Flush()

	evStyle := gainStyle
	if ev < 0 {
		evStyle = lossStyle
	}
	fmt.Printf("\n%s %s (pot %.2f, cost %.2f)\n",
		headerStyle.Render("ev"), evStyle.Render(fmt.Sprintf("%+.2f", ev)), c.Pot, c.Cost)

	missing := 5 - len(board)
	if missing >= 3 {
		fmt.Printf("%d iterations in %v\n", c.Iterations, duration.Truncate(time.Millisecond))
	}
}
