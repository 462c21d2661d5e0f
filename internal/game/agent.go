package game

import (
	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/evaluator"
)

// Agent is any decision maker seated in a hand. Agents receive immutable
// snapshots and return a decision; they never mutate engine state. The
// engine validates every response and substitutes a fold for anything
// illegal, so a misbehaving agent can lose its own hand but nothing else.
type Agent interface {
	// Decide picks an action from the legal set. The amount is meaningful
	// only for Raise and is the total round-bet being raised to, not an
	// increment.
	Decide(state GameState, holeCards []deck.Card, legal []Action, minRaiseTo, maxRaiseTo int) (Action, int)

	// NotifyHandComplete is called once per dealt-in agent after settlement.
	NotifyHandComplete(state GameState, result Result)
}

// Standing is one row of a final tournament ranking.
type Standing struct {
	ID    string
	Chips int
	Place int
}

// TournamentObserver is an optional interface agents may implement to
// receive tournament lifecycle notifications. Discovery is by interface
// assertion, never reflection.
type TournamentObserver interface {
	TournamentStarted(playerIDs []string, startingChips int)
	TournamentEnded(standings []Standing)
}

// Result describes a settled hand: who won what, with which hands, and who
// busted. Stacks holds every dealt-in player's final chip count.
type Result struct {
	HandID         string
	Stacks         map[string]int
	Payouts        map[string]int
	Winners        []string
	WinningHands   map[string]evaluator.Category
	ShowdownHands  map[string][]deck.Card
	WentToShowdown bool
	Eliminated     []string
	IllegalActions map[string]int
	NextButton     int
}
