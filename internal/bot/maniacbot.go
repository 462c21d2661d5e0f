package bot

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/game"
)

// ManiacBot is an extremely aggressive bot that bets and shoves frequently
// and rarely folds.
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance.
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger.WithPrefix("maniac-bot")}
}

func (m *ManiacBot) Decide(state game.GameState, _ []deck.Card, legal []game.Action, minRaiseTo, maxRaiseTo int) (game.Action, int) {
	chips := state.PlayerChips[state.CurrentPlayer]
	shortStacked := chips <= 20*state.BigBlind

	if hasAction(legal, game.Check) {
		// Unopened pot: bet 85% of the time, shoving short stacks
		if m.rng.Float64() < 0.85 {
			if shortStacked || m.rng.Float64() < 0.3 {
				if hasAction(legal, game.AllIn) {
					return game.AllIn, 0
				}
			}
			if hasAction(legal, game.Raise) && maxRaiseTo >= minRaiseTo {
				// Bet three quarters of the legal window
				return game.Raise, minRaiseTo + (maxRaiseTo-minRaiseTo)*3/4
			}
		}
		return game.Check, 0
	}

	// Facing a bet: shove 40%, call 40%, fold 20%
	roll := m.rng.Float64()
	if roll < 0.4 && hasAction(legal, game.AllIn) {
		return game.AllIn, 0
	}
	if roll < 0.8 && hasAction(legal, game.Call) {
		return game.Call, 0
	}
	return checkOrFold(legal)
}

func (m *ManiacBot) NotifyHandComplete(game.GameState, game.Result) {}
