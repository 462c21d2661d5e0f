package bot

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/game"
)

// RandBot makes uniform random legal actions. Raises target a uniform
// amount inside the legal window.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance.
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("rand-bot")}
}

func (r *RandBot) Decide(_ game.GameState, _ []deck.Card, legal []game.Action, minRaiseTo, maxRaiseTo int) (game.Action, int) {
	if len(legal) == 0 {
		return game.Fold, 0
	}

	action := legal[r.rng.Intn(len(legal))]
	if action == game.Raise {
		if maxRaiseTo < minRaiseTo {
			return game.AllIn, 0
		}
		return game.Raise, minRaiseTo + r.rng.Intn(maxRaiseTo-minRaiseTo+1)
	}
	return action, 0
}

func (r *RandBot) NotifyHandComplete(game.GameState, game.Result) {}
