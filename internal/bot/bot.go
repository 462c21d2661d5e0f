// Package bot provides the built-in table opponents. Each bot implements
// game.Agent with a fixed personality, from the trivial FoldBot up to the
// chart-driven ChartBot.
package bot

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/soleohess/poker/internal/game"
)

// Factory builds one bot. The rng is shared so that a seeded session
// replays identically.
type Factory func(rng *rand.Rand, logger *log.Logger) game.Agent

var registry = map[string]Factory{}

// Register adds a bot kind. The built-ins register themselves below; callers
// embedding the package can add their own before building tournaments.
func Register(kind string, factory Factory) {
	registry[kind] = factory
}

func init() {
	Register("fold", func(_ *rand.Rand, logger *log.Logger) game.Agent { return NewFoldBot(logger) })
	Register("call", func(_ *rand.Rand, logger *log.Logger) game.Agent { return NewCallBot(logger) })
	Register("rand", func(rng *rand.Rand, logger *log.Logger) game.Agent { return NewRandBot(rng, logger) })
	Register("chart", func(_ *rand.Rand, logger *log.Logger) game.Agent { return NewChartBot(logger) })
	Register("maniac", func(rng *rand.Rand, logger *log.Logger) game.Agent { return NewManiacBot(rng, logger) })
}

// New builds a bot of the named kind.
func New(kind string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	factory, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown bot kind: %s", kind)
	}
	return factory(rng, logger), nil
}

// Kinds lists the registered bot kinds in name order.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func hasAction(legal []game.Action, want game.Action) bool {
	for _, a := range legal {
		if a == want {
			return true
		}
	}
	return false
}

// checkOrFold is the universal fallback when a bot wants out of the hand.
func checkOrFold(legal []game.Action) (game.Action, int) {
	if hasAction(legal, game.Check) {
		return game.Check, 0
	}
	return game.Fold, 0
}

// checkOrCall takes the passive line: check when free, call when affordable.
func checkOrCall(legal []game.Action) (game.Action, int) {
	if hasAction(legal, game.Check) {
		return game.Check, 0
	}
	if hasAction(legal, game.Call) {
		return game.Call, 0
	}
	return game.Fold, 0
}
