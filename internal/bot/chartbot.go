package bot

import (
	"github.com/charmbracelet/log"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/game"
)

// ChartBot plays preflop from a starting-hand percentile chart and takes
// the passive check/call line after the flop. Premium holdings raise, and
// shove when short stacked; trash folds to any bet.
type ChartBot struct {
	logger *log.Logger
}

// NewChartBot creates a new ChartBot instance.
func NewChartBot(logger *log.Logger) *ChartBot {
	return &ChartBot{logger: logger.WithPrefix("chart-bot")}
}

func (c *ChartBot) Decide(state game.GameState, hole []deck.Card, legal []game.Action, minRaiseTo, maxRaiseTo int) (game.Action, int) {
	if state.Street != game.Preflop {
		return checkOrCall(legal)
	}

	percentile := deck.Percentile(hole)
	chips := state.PlayerChips[state.CurrentPlayer]

	switch {
	case percentile >= 0.85:
		// Premium: shove short stacks, otherwise open to three big blinds
		if chips <= 20*state.BigBlind && hasAction(legal, game.AllIn) {
			c.logger.Debug("premium hand, shoving short stack", "percentile", percentile)
			return game.AllIn, 0
		}
		if hasAction(legal, game.Raise) && maxRaiseTo >= minRaiseTo {
			target := 3 * state.BigBlind
			if target < minRaiseTo {
				target = minRaiseTo
			}
			if target > maxRaiseTo {
				target = maxRaiseTo
			}
			return game.Raise, target
		}
		return checkOrCall(legal)

	case percentile >= 0.40:
		// Playable: see a flop cheaply
		return checkOrCall(legal)

	default:
		// Trash: take the free card if offered, never pay for one
		return checkOrFold(legal)
	}
}

func (c *ChartBot) NotifyHandComplete(game.GameState, game.Result) {}
