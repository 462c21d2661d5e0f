package bot

import (
	"github.com/charmbracelet/log"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/game"
)

// CallBot checks and calls its way to showdown, with one concession to
// discipline: it folds the river when the price exceeds the pot.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance.
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger.WithPrefix("call-bot")}
}

func (c *CallBot) Decide(state game.GameState, _ []deck.Card, legal []game.Action, _, _ int) (game.Action, int) {
	toCall := state.CurrentBet - state.PlayerBets[state.CurrentPlayer]

	if state.Street == game.River && toCall > state.Pot-toCall {
		c.logger.Debug("folding river to oversized bet", "toCall", toCall, "pot", state.Pot)
		return checkOrFold(legal)
	}

	return checkOrCall(legal)
}

func (c *CallBot) NotifyHandComplete(game.GameState, game.Result) {}
