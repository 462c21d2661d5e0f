package runner

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/game"
)

// stubAgent delegates to configurable funcs so each test can shape its
// behaviour.
type stubAgent struct {
	decide  func() (game.Action, int)
	notify  func()
	decides int
}

func (a *stubAgent) Decide(game.GameState, []deck.Card, []game.Action, int, int) (game.Action, int) {
	a.decides++
	if a.decide != nil {
		return a.decide()
	}
	return game.Check, 0
}

func (a *stubAgent) NotifyHandComplete(game.GameState, game.Result) {
	if a.notify != nil {
		a.notify()
	}
}

var anyLegal = []game.Action{game.Fold, game.Check, game.Raise, game.AllIn}

func TestDecidePassesThrough(t *testing.T) {
	t.Parallel()

	agent := &stubAgent{decide: func() (game.Action, int) { return game.Raise, 60 }}
	r := New("stub", agent)

	action, amount := r.Decide(game.GameState{}, nil, anyLegal, 40, 980)
	assert.Equal(t, game.Raise, action)
	assert.Equal(t, 60, amount)
	assert.Equal(t, 0, r.Timeouts())
	assert.Equal(t, 0, r.Panics())
	assert.False(t, r.Disqualified())
}

func TestDecideTimeoutFolds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	release := make(chan struct{})
	defer close(release)
	agent := &stubAgent{decide: func() (game.Action, int) {
		<-release
		return game.Check, 0
	}}

	mock := quartz.NewMock(t)
	trap := mock.Trap().AfterFunc()
	defer trap.Close()

	r := New("slow", agent, WithClock(mock), WithTimeout(time.Second))

	type answer struct {
		action game.Action
		amount int
	}
	answers := make(chan answer, 1)
	go func() {
		action, amount := r.Decide(game.GameState{}, nil, anyLegal, 40, 980)
		answers <- answer{action, amount}
	}()

	// Wait for the deadline timer to be armed, then fire it.
	call := trap.MustWait(ctx)
	call.MustRelease(ctx)
	mock.Advance(time.Second).MustWait(ctx)

	got := <-answers
	assert.Equal(t, game.Fold, got.action)
	assert.Equal(t, 0, got.amount)
	assert.Equal(t, 1, r.Timeouts())
}

func TestDecidePanicFolds(t *testing.T) {
	t.Parallel()

	agent := &stubAgent{decide: func() (game.Action, int) { panic("bad strategy") }}
	r := New("panicky", agent)

	action, _ := r.Decide(game.GameState{}, nil, anyLegal, 40, 980)
	assert.Equal(t, game.Fold, action)
	assert.Equal(t, 1, r.Panics())
}

func TestDisqualificationStopsConsultingAgent(t *testing.T) {
	t.Parallel()

	agent := &stubAgent{decide: func() (game.Action, int) { panic("bad strategy") }}
	r := New("panicky", agent, WithMaxFaults(2))

	r.Decide(game.GameState{}, nil, anyLegal, 40, 980)
	r.Decide(game.GameState{}, nil, anyLegal, 40, 980)
	require.True(t, r.Disqualified())

	action, _ := r.Decide(game.GameState{}, nil, anyLegal, 40, 980)
	assert.Equal(t, game.Fold, action)
	assert.Equal(t, 2, agent.decides, "a disqualified agent is no longer consulted")
}

func TestNotifyHandCompleteContainsPanic(t *testing.T) {
	t.Parallel()

	agent := &stubAgent{notify: func() { panic("bad observer") }}
	r := New("panicky", agent)

	assert.NotPanics(t, func() {
		r.NotifyHandComplete(game.GameState{}, game.Result{})
	})
	assert.Equal(t, 1, r.Panics())
}
