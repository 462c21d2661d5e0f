package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleohess/poker/internal/deck"
)

func TestHeadsUpFoldEndsHand(t *testing.T) {
	t.Parallel()

	seats := []Seat{{ID: "alice", Chips: 1000}, {ID: "bob", Chips: 1000}}
	hand, err := NewHand(rand.New(rand.NewSource(1)), seats, 0, 10, 20)
	require.NoError(t, err)

	alice := script(move(Fold, 0))
	bob := script()

	result, err := hand.Play(map[string]Agent{"alice": alice, "bob": bob})
	require.NoError(t, err)

	assert.Equal(t, []string{"bob"}, result.Winners)
	assert.Equal(t, 990, result.Stacks["alice"])
	assert.Equal(t, 1010, result.Stacks["bob"])
	assert.False(t, result.WentToShowdown)
	assert.Equal(t, 1, result.NextButton)
	assert.Empty(t, result.Eliminated)

	// The hand ended before bob ever had to act
	assert.Equal(t, 1, alice.decides)
	assert.Equal(t, 0, bob.decides)

	// Both dealt-in agents are notified
	require.Len(t, alice.results, 1)
	require.Len(t, bob.results, 1)
}

func TestSidePotDistribution(t *testing.T) {
	t.Parallel()

	// A covers everyone, B and C are all-in short. C holds the best hand but
	// can only win the layer it funded; A takes the top layer uncontested.
	seats := []Seat{
		{ID: "a", Chips: 100},
		{ID: "b", Chips: 50},
		{ID: "c", Chips: 25},
	}
	stacked := stackDeck("QsQdKsKdAsAd" + "4c" + "2h5d9c" + "6c" + "Jh" + "8c" + "3s")
	hand, err := NewHand(nil, seats, 0, 10, 20, WithDeck(stacked))
	require.NoError(t, err)

	agents := map[string]Agent{
		"a": script(move(Raise, 100)),
		"b": script(move(AllIn, 0)),
		"c": script(move(AllIn, 0)),
	}

	result, err := hand.Play(agents)
	require.NoError(t, err)

	assert.True(t, result.WentToShowdown)
	assert.Equal(t, 75, result.Payouts["c"], "c wins only the layer all three funded")
	assert.Equal(t, 50, result.Payouts["b"], "b beats a for the middle layer")
	assert.Equal(t, 50, result.Payouts["a"], "a takes the top layer uncontested")

	assert.Equal(t, 50, result.Stacks["a"])
	assert.Equal(t, 50, result.Stacks["b"])
	assert.Equal(t, 75, result.Stacks["c"])
	assert.Empty(t, result.Eliminated)
	assert.Len(t, result.ShowdownHands, 3)
}

func TestIllegalRaiseBecomesFold(t *testing.T) {
	t.Parallel()

	seats := []Seat{{ID: "alice", Chips: 1000}, {ID: "bob", Chips: 1000}}
	recorder := &Recorder{}
	hand, err := NewHand(rand.New(rand.NewSource(3)), seats, 0, 10, 20, WithEventSink(recorder))
	require.NoError(t, err)

	// Min raise-to preflop is 40; raising to 25 is illegal
	alice := script(move(Raise, 25))

	result, err := hand.Play(map[string]Agent{"alice": alice, "bob": script()})
	require.NoError(t, err, "an illegal action must not escape the engine")

	assert.Equal(t, []string{"bob"}, result.Winners)
	assert.Equal(t, map[string]int{"alice": 1}, hand.IllegalActions())

	actions := recorder.ByKind(EventActionTaken)
	require.NotEmpty(t, actions)
	first := actions[0].(ActionTakenEvent)
	assert.Equal(t, "alice", first.Player)
	assert.Equal(t, Fold, first.Action)
	assert.True(t, first.Substituted)
}

func TestBigBlindGetsPreflopOption(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{ID: "a", Chips: 1000},
		{ID: "b", Chips: 1000},
		{ID: "c", Chips: 1000},
	}
	stacked := stackDeck("AsAhKsKhQsQh" + "4c" + "Ad7c2d" + "6c" + "9h" + "8c" + "4s")
	hand, err := NewHand(nil, seats, 0, 10, 20, WithDeck(stacked))
	require.NoError(t, err)

	a := script(move(Call, 0))
	b := script(move(Call, 0))
	c := script() // big blind; checks its option, then checks down

	result, err := hand.Play(map[string]Agent{"a": a, "b": b, "c": c})
	require.NoError(t, err)

	// c must be consulted preflop even though every bet was matched, then
	// once per postflop street.
	assert.Equal(t, 4, c.decides)

	assert.True(t, result.WentToShowdown)
	assert.Equal(t, []string{"a"}, result.Winners)
	assert.Equal(t, 1040, result.Stacks["a"])
}

func TestAllInBelowCurrentBetDoesNotReopen(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{ID: "a", Chips: 1000},
		{ID: "b", Chips: 1000},
		{ID: "c", Chips: 60},
	}
	stacked := stackDeck("AsAdKsKdQsQd" + "4c" + "2h5d9c" + "6c" + "Jh" + "8c" + "3s")
	hand, err := NewHand(nil, seats, 0, 10, 20, WithDeck(stacked))
	require.NoError(t, err)

	a := script(move(Raise, 100))
	b := script(move(Call, 0))
	c := script(move(AllIn, 0)) // 60 total, below the 100 bet

	result, err := hand.Play(map[string]Agent{"a": a, "b": b, "c": c})
	require.NoError(t, err)

	// c's short all-in is a call for less: neither a nor b act again preflop,
	// so each decides once preflop and once per postflop street.
	assert.Equal(t, 4, a.decides)
	assert.Equal(t, 4, b.decides)

	// a's aces win both layers (60x3 main, 40x2 side)
	assert.Equal(t, 260, result.Payouts["a"])
	assert.Equal(t, 1160, result.Stacks["a"])
	assert.Equal(t, 900, result.Stacks["b"])
	assert.Equal(t, []string{"c"}, result.Eliminated)
}

func TestSplitPotRemainderGoesClockwiseFromButton(t *testing.T) {
	t.Parallel()

	// Both survivors play the board straight; c's dead blind makes the
	// bottom layer odd. The spare chip goes to b, the first winner
	// clockwise from the button.
	seats := []Seat{
		{ID: "a", Chips: 1000},
		{ID: "b", Chips: 1000},
		{ID: "c", Chips: 1000},
	}
	stacked := stackDeck("2s2d3c3dTsTd" + "Kh" + "4h5h6d" + "Kd" + "7c" + "Kc" + "8s")
	hand, err := NewHand(nil, seats, 0, 10, 25, WithDeck(stacked))
	require.NoError(t, err)

	agents := map[string]Agent{
		"a": script(move(Raise, 50)),
		"b": script(move(Call, 0)),
		"c": script(move(Fold, 0)),
	}

	result, err := hand.Play(agents)
	require.NoError(t, err)

	assert.Equal(t, 63, result.Payouts["b"])
	assert.Equal(t, 62, result.Payouts["a"])
	assert.Equal(t, 975, result.Stacks["c"])
}

func TestShortBigBlindAllIn(t *testing.T) {
	t.Parallel()

	// bob cannot cover the big blind; the post is short but the current bet
	// stays at the full big blind.
	seats := []Seat{{ID: "alice", Chips: 1000}, {ID: "bob", Chips: 15}}
	stacked := stackDeck("2s7dAsAd" + "4c" + "KhQc9c" + "6c" + "5h" + "8c" + "3d")
	hand, err := NewHand(nil, seats, 0, 10, 20, WithDeck(stacked))
	require.NoError(t, err)

	alice := script(move(Call, 0))

	result, err := hand.Play(map[string]Agent{"alice": alice, "bob": script()})
	require.NoError(t, err)

	// bob's aces take the layer both funded (15x2); alice's overcall of 5
	// comes straight back to her.
	assert.Equal(t, 30, result.Stacks["bob"])
	assert.Equal(t, 985, result.Stacks["alice"])
	assert.Empty(t, result.Eliminated)
}

func TestHandEvents(t *testing.T) {
	t.Parallel()

	seats := []Seat{{ID: "alice", Chips: 1000}, {ID: "bob", Chips: 1000}}
	recorder := &Recorder{}
	stacked := stackDeck("AsAd7c2d" + "4c" + "KhQc9c" + "6c" + "5h" + "8c" + "3s")
	hand, err := NewHand(nil, seats, 0, 10, 20, WithDeck(stacked), WithEventSink(recorder))
	require.NoError(t, err)

	agents := map[string]Agent{
		"alice": script(move(Call, 0)),
		"bob":   script(),
	}
	result, err := hand.Play(agents)
	require.NoError(t, err)

	assert.Len(t, recorder.ByKind(EventHandStarted), 1)
	assert.Len(t, recorder.ByKind(EventBlindPosted), 2)
	assert.Len(t, recorder.ByKind(EventStreetDealt), 3)
	assert.Len(t, recorder.ByKind(EventHandEnded), 1)

	ended := recorder.ByKind(EventHandEnded)[0].(HandEndedEvent)
	paid := 0
	for _, amount := range ended.Payouts {
		paid += amount
	}
	assert.Equal(t, 40, paid, "the whole pot is disbursed")
	assert.Equal(t, result.Winners, ended.Winners)
}

// randomAgent picks uniformly from the legal set; raises target a random
// amount within the legal window.
type randomAgent struct {
	rng *rand.Rand
}

func (a *randomAgent) Decide(_ GameState, _ []deck.Card, legal []Action, minRaiseTo, maxRaiseTo int) (Action, int) {
	action := legal[a.rng.Intn(len(legal))]
	if action == Raise {
		if maxRaiseTo < minRaiseTo {
			// stack covers the call but not a full raise
			return AllIn, 0
		}
		return Raise, minRaiseTo + a.rng.Intn(maxRaiseTo-minRaiseTo+1)
	}
	return action, 0
}

func (a *randomAgent) NotifyHandComplete(GameState, Result) {}

func TestChipConservationUnderRandomPlay(t *testing.T) {
	t.Parallel()

	ids := []string{"p0", "p1", "p2", "p3", "p4", "p5"}

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		numPlayers := 2 + rng.Intn(5)

		seats := make([]Seat, numPlayers)
		agents := make(map[string]Agent, numPlayers)
		total := 0
		for i := 0; i < numPlayers; i++ {
			chips := 20 + rng.Intn(2000)
			seats[i] = Seat{ID: ids[i], Chips: chips}
			agents[ids[i]] = &randomAgent{rng: rng}
			total += chips
		}

		hand, err := NewHand(rng, seats, rng.Intn(numPlayers), 10, 20)
		require.NoError(t, err, "seed %d", seed)

		result, err := hand.Play(agents)
		require.NoError(t, err, "seed %d", seed)

		final := 0
		for _, chips := range result.Stacks {
			final += chips
		}
		require.Equal(t, total, final, "seed %d: chips must be conserved", seed)
	}
}
