// Package runner supervises decision agents. A Runner wraps an agent with a
// decision deadline, panic containment, and fault accounting so that one
// misbehaving strategy cannot stall or crash a table.
package runner

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/game"
)

// DefaultTimeout is the decision deadline applied when none is configured.
const DefaultTimeout = 5 * time.Second

// DefaultMaxFaults is the number of timeouts or panics tolerated before the
// wrapped agent is disqualified and folded automatically.
const DefaultMaxFaults = 3

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-decision deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithMaxFaults sets how many faults disqualify the agent. Zero or negative
// disables disqualification.
func WithMaxFaults(n int) Option {
	return func(r *Runner) { r.maxFaults = n }
}

// WithClock substitutes the clock used for deadlines.
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) { r.clock = clock }
}

// WithLogger sets the logger used for fault reporting.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) { r.logger = logger.WithPrefix("runner").With("agent", r.name) }
}

// Runner wraps a game.Agent and enforces decision deadlines. Every call into
// the wrapped agent runs in its own goroutine; if it panics or outlives the
// deadline the Runner answers with a fold and records the fault. An agent
// that faults too often is disqualified and folds without being consulted.
type Runner struct {
	name      string
	inner     game.Agent
	logger    *log.Logger
	clock     quartz.Clock
	timeout   time.Duration
	maxFaults int

	mu       sync.Mutex
	timeouts int
	panics   int
}

// New wraps agent with the default deadline and fault limits.
func New(name string, agent game.Agent, opts ...Option) *Runner {
	r := &Runner{
		name:      name,
		inner:     agent,
		logger:    log.New(io.Discard).WithPrefix("runner").With("agent", name),
		clock:     quartz.NewReal(),
		timeout:   DefaultTimeout,
		maxFaults: DefaultMaxFaults,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the wrapped agent's name.
func (r *Runner) Name() string { return r.name }

// Timeouts returns how many decisions have exceeded the deadline.
func (r *Runner) Timeouts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timeouts
}

// Panics returns how many calls into the agent have panicked.
func (r *Runner) Panics() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.panics
}

// Disqualified reports whether the agent has exhausted its fault allowance.
func (r *Runner) Disqualified() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxFaults > 0 && r.timeouts+r.panics >= r.maxFaults
}

func (r *Runner) recordTimeout() {
	r.mu.Lock()
	r.timeouts++
	r.mu.Unlock()
}

func (r *Runner) recordPanic() {
	r.mu.Lock()
	r.panics++
	r.mu.Unlock()
}

type reply struct {
	action game.Action
	amount int
}

// Decide implements game.Agent. The wrapped agent's answer is returned as-is
// when it arrives in time; a timeout or panic becomes a fold.
func (r *Runner) Decide(state game.GameState, hole []deck.Card, legal []game.Action, minRaiseTo, maxRaiseTo int) (game.Action, int) {
	if r.Disqualified() {
		return game.Fold, 0
	}

	replies := make(chan reply, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.recordPanic()
				r.logger.Error("agent panicked during decision", "panic", rec)
				replies <- reply{game.Fold, 0}
			}
		}()
		action, amount := r.inner.Decide(state, hole, legal, minRaiseTo, maxRaiseTo)
		replies <- reply{action, amount}
	}()

	expired := make(chan struct{})
	timer := r.clock.AfterFunc(r.timeout, func() {
		close(expired)
	})
	defer timer.Stop()

	select {
	case rep := <-replies:
		return rep.action, rep.amount
	case <-expired:
		r.recordTimeout()
		r.logger.Warn("decision deadline exceeded, folding",
			"timeout", r.timeout, "timeouts", r.Timeouts())
		return game.Fold, 0
	}
}

// NotifyHandComplete forwards the result to the wrapped agent, containing any
// panic. Notifications carry no deadline; a slow observer only delays the
// next hand, it cannot corrupt the one that finished.
func (r *Runner) NotifyHandComplete(state game.GameState, result game.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.recordPanic()
			r.logger.Error("agent panicked during notification", "panic", rec)
		}
	}()
	r.inner.NotifyHandComplete(state, result)
}

// TournamentStarted forwards the tournament start notification when the
// wrapped agent observes tournament lifecycle.
func (r *Runner) TournamentStarted(playerIDs []string, startingChips int) {
	observer, ok := r.inner.(game.TournamentObserver)
	if !ok {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.recordPanic()
			r.logger.Error("agent panicked during start notification", "panic", rec)
		}
	}()
	observer.TournamentStarted(playerIDs, startingChips)
}

// TournamentEnded forwards final standings when the wrapped agent observes
// tournament lifecycle.
func (r *Runner) TournamentEnded(standings []game.Standing) {
	observer, ok := r.inner.(game.TournamentObserver)
	if !ok {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.recordPanic()
			r.logger.Error("agent panicked during standings notification", "panic", rec)
		}
	}()
	observer.TournamentEnded(standings)
}
