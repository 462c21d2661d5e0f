package game

import (
	"github.com/soleohess/poker/internal/deck"
)

// scriptedMove is one queued response for a scripted agent.
type scriptedMove struct {
	action Action
	amount int
}

// scriptedAgent plays back a fixed sequence of responses. When the script
// runs out it checks if legal and otherwise folds. It records how often it
// was asked and the hand results it was notified of.
type scriptedAgent struct {
	script  []scriptedMove
	decides int
	results []Result
}

func (a *scriptedAgent) Decide(_ GameState, _ []deck.Card, legal []Action, _, _ int) (Action, int) {
	a.decides++
	if len(a.script) > 0 {
		move := a.script[0]
		a.script = a.script[1:]
		return move.action, move.amount
	}
	for _, l := range legal {
		if l == Check {
			return Check, 0
		}
	}
	return Fold, 0
}

func (a *scriptedAgent) NotifyHandComplete(_ GameState, result Result) {
	a.results = append(a.results, result)
}

func script(moves ...scriptedMove) *scriptedAgent {
	return &scriptedAgent{script: moves}
}

func move(action Action, amount int) scriptedMove {
	return scriptedMove{action: action, amount: amount}
}

// stackDeck builds a prearranged deck from compact card notation, front card
// first. The controller deals two hole cards per seat in seat order, then
// burn+flop(3), burn+turn, burn+river.
func stackDeck(cards string) *deck.Deck {
	return deck.NewStacked(deck.MustParseCards(cards)...)
}
