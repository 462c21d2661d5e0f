package bot

import (
	"github.com/charmbracelet/log"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/game"
)

// FoldBot always folds, or checks when checking is free. Useful as a
// baseline opponent and for exercising uncontested pots.
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance.
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger.WithPrefix("fold-bot")}
}

func (f *FoldBot) Decide(_ game.GameState, _ []deck.Card, legal []game.Action, _, _ int) (game.Action, int) {
	return checkOrFold(legal)
}

func (f *FoldBot) NotifyHandComplete(game.GameState, game.Result) {}
