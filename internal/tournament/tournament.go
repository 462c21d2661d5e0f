// Package tournament runs freeze-out tournaments: fixed entrants, escalating
// blinds, no rebuys, play until one stack holds all the chips.
package tournament

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/soleohess/poker/internal/game"
	"github.com/soleohess/poker/internal/runner"
)

// Settings controls the tournament structure.
type Settings struct {
	StartingChips         int
	SmallBlind            int
	BigBlind              int
	BlindIncreaseInterval int     // hands per blind level
	BlindIncreaseFactor   float64 // multiplier applied per level
	MaxHands              int     // safety cap; survivors rank by chips
	ActionTimeout         time.Duration
	MaxFaults             int // timeouts/panics before disqualification
}

// DefaultSettings mirrors the standard structure: 1000 chips, 10/20 blinds
// escalating 1.5x every 10 hands.
func DefaultSettings() Settings {
	return Settings{
		StartingChips:         1000,
		SmallBlind:            10,
		BigBlind:              20,
		BlindIncreaseInterval: 10,
		BlindIncreaseFactor:   1.5,
		MaxHands:              10000,
		ActionTimeout:         runner.DefaultTimeout,
		MaxFaults:             runner.DefaultMaxFaults,
	}
}

// Entrant pairs a player ID with its decision agent. Seating follows the
// order entrants are given.
type Entrant struct {
	ID    string
	Agent game.Agent
}

// PlayerStats accumulates per-player results over a tournament.
type PlayerStats struct {
	ID             string
	Chips          int
	HandsPlayed    int
	HandsWon       int
	BiggestPot     int
	Place          int // 1 is the winner
	EliminatedHand int // 0 while still seated
	Timeouts       int
	Panics         int
	IllegalActions int
}

// Option configures a Tournament.
type Option func(*Tournament)

// WithLogger sets the tournament logger.
func WithLogger(logger *log.Logger) Option {
	return func(t *Tournament) { t.logger = logger.WithPrefix("tournament") }
}

// WithEventSink forwards every hand's events to sink.
func WithEventSink(sink game.EventSink) Option {
	return func(t *Tournament) { t.sink = sink }
}

// WithClock substitutes the clock used for decision deadlines.
func WithClock(clock quartz.Clock) Option {
	return func(t *Tournament) { t.clock = clock }
}

// Tournament is a single-table freeze-out. Create one per run; it is not
// reusable.
type Tournament struct {
	settings Settings
	entrants []Entrant
	rng      *rand.Rand
	logger   *log.Logger
	sink     game.EventSink
	clock    quartz.Clock

	runners map[string]*runner.Runner
	stats   map[string]*PlayerStats
	chips   map[string]int
	played  bool
}

// New creates a tournament for the given entrants. The rng drives both
// shuffling and any randomized agents, so a seeded rng replays the
// tournament exactly.
func New(settings Settings, entrants []Entrant, rng *rand.Rand, opts ...Option) (*Tournament, error) {
	if len(entrants) < 2 {
		return nil, fmt.Errorf("tournament needs at least 2 entrants, got %d", len(entrants))
	}
	if settings.StartingChips <= 0 {
		return nil, fmt.Errorf("starting chips must be positive, got %d", settings.StartingChips)
	}
	if settings.SmallBlind <= 0 || settings.BigBlind < settings.SmallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", settings.SmallBlind, settings.BigBlind)
	}
	seen := make(map[string]bool, len(entrants))
	for _, e := range entrants {
		if e.ID == "" || e.Agent == nil {
			return nil, fmt.Errorf("entrant needs an ID and an agent")
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate entrant ID %q", e.ID)
		}
		seen[e.ID] = true
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	t := &Tournament{
		settings: settings,
		entrants: entrants,
		rng:      rng,
		logger:   log.New(io.Discard),
		sink:     game.NopSink{},
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.runners = make(map[string]*runner.Runner, len(entrants))
	t.stats = make(map[string]*PlayerStats, len(entrants))
	t.chips = make(map[string]int, len(entrants))
	for _, e := range entrants {
		t.runners[e.ID] = runner.New(e.ID, e.Agent,
			runner.WithTimeout(settings.ActionTimeout),
			runner.WithMaxFaults(settings.MaxFaults),
			runner.WithClock(t.clock),
			runner.WithLogger(t.logger))
		t.stats[e.ID] = &PlayerStats{ID: e.ID, Chips: settings.StartingChips}
		t.chips[e.ID] = settings.StartingChips
	}
	return t, nil
}

// Blinds returns the blind amounts in force for the given 1-based hand
// number.
func (t *Tournament) Blinds(handNum int) (small, big int) {
	level := 1
	if t.settings.BlindIncreaseInterval > 0 {
		level += (handNum - 1) / t.settings.BlindIncreaseInterval
	}
	factor := math.Pow(t.settings.BlindIncreaseFactor, float64(level-1))
	return int(float64(t.settings.SmallBlind) * factor), int(float64(t.settings.BigBlind) * factor)
}

// Run plays the tournament to completion and returns the final standings,
// winner first.
func (t *Tournament) Run() ([]game.Standing, error) {
	if t.played {
		return nil, fmt.Errorf("tournament already played")
	}
	t.played = true

	seated := make([]string, len(t.entrants))
	for i, e := range t.entrants {
		seated[i] = e.ID
	}

	for _, r := range t.runners {
		ids := make([]string, len(seated))
		copy(ids, seated)
		r.TournamentStarted(ids, t.settings.StartingChips)
	}

	button := 0
	handNum := 0
	nextPlace := len(t.entrants) // worst remaining finish position

	for len(seated) > 1 {
		handNum++
		if t.settings.MaxHands > 0 && handNum > t.settings.MaxHands {
			t.logger.Warn("hand cap reached, ranking survivors by chips", "hands", handNum-1)
			break
		}

		sb, bb := t.Blinds(handNum)
		seats := make([]game.Seat, len(seated))
		agents := make(map[string]game.Agent, len(seated))
		for i, id := range seated {
			seats[i] = game.Seat{ID: id, Chips: t.chips[id]}
			agents[id] = t.runners[id]
		}

		hand, err := game.NewHand(t.rng, seats, button%len(seated), sb, bb,
			game.WithEventSink(t.sink), game.WithLogger(t.logger))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", handNum, err)
		}

		result, err := hand.Play(agents)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", handNum, err)
		}

		// Eliminations take the worst open places, shortest stack going into
		// the hand first when several bust at once.
		eliminated := orderByChips(result.Eliminated, t.chips)
		t.recordHand(seated, *result)
		for _, id := range eliminated {
			t.stats[id].Place = nextPlace
			t.stats[id].EliminatedHand = handNum
			nextPlace--
			t.logger.Info("player eliminated", "player", id,
				"place", t.stats[id].Place, "hand", handNum)
		}

		seated = t.advanceSeating(seated, *result)
		button++
	}

	t.finalize(seated, nextPlace)
	standings := t.Standings()
	for _, r := range t.runners {
		r.TournamentEnded(standings)
	}
	t.logger.Info("tournament complete", "hands", handNum, "winner", standings[0].ID)
	return standings, nil
}

// recordHand folds a hand result into chips and stats.
func (t *Tournament) recordHand(seated []string, result game.Result) {
	for _, id := range seated {
		t.chips[id] = result.Stacks[id]
		t.stats[id].Chips = result.Stacks[id]
		t.stats[id].HandsPlayed++
	}
	for _, id := range result.Winners {
		t.stats[id].HandsWon++
	}
	for id, payout := range result.Payouts {
		if payout > t.stats[id].BiggestPot {
			t.stats[id].BiggestPot = payout
		}
	}
	for id, count := range result.IllegalActions {
		t.stats[id].IllegalActions += count
	}
}

// advanceSeating drops busted players while preserving seat order.
func (t *Tournament) advanceSeating(seated []string, result game.Result) []string {
	next := seated[:0]
	for _, id := range seated {
		if result.Stacks[id] > 0 {
			next = append(next, id)
		}
	}
	return next
}

// finalize assigns places to everyone still seated, best stack first.
func (t *Tournament) finalize(seated []string, nextPlace int) {
	survivors := orderByChips(seated, t.chips)
	// orderByChips is ascending; hand out the open places from the bottom up
	for _, id := range survivors {
		t.stats[id].Place = nextPlace
		nextPlace--
	}
	for id, r := range t.runners {
		t.stats[id].Timeouts = r.Timeouts()
		t.stats[id].Panics = r.Panics()
	}
}

// Standings returns the finish order, winner first. Valid after Run.
func (t *Tournament) Standings() []game.Standing {
	standings := make([]game.Standing, 0, len(t.stats))
	for _, s := range t.stats {
		standings = append(standings, game.Standing{ID: s.ID, Chips: s.Chips, Place: s.Place})
	}
	sortStandings(standings)
	return standings
}

// Stats returns per-player statistics keyed by player ID.
func (t *Tournament) Stats() map[string]*PlayerStats {
	return t.stats
}

func sortStandings(standings []game.Standing) {
	sort.Slice(standings, func(i, j int) bool {
		return standings[i].Place < standings[j].Place
	})
}

// orderByChips returns ids sorted by ascending chip count, stable.
func orderByChips(ids []string, chips map[string]int) []string {
	ordered := make([]string, len(ids))
	copy(ordered, ids)
	sort.SliceStable(ordered, func(i, j int) bool {
		return chips[ordered[i]] < chips[ordered[j]]
	})
	return ordered
}
