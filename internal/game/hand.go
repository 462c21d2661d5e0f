package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/soleohess/poker/internal/deck"
)

// Seat pairs a player id with the stack it brings into the hand.
type Seat struct {
	ID    string
	Chips int
}

// Option configures a Hand during creation.
type Option func(*Hand)

// WithDeck supplies a pre-arranged deck; the hand will not shuffle it.
// Intended for deterministic tests.
func WithDeck(d *deck.Deck) Option {
	return func(h *Hand) {
		h.deck = d
		h.prearranged = true
	}
}

// WithEventSink routes controller events to sink instead of discarding them.
func WithEventSink(sink EventSink) Option {
	return func(h *Hand) { h.sink = sink }
}

// WithLogger sets the hand's logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Hand) { h.logger = logger }
}

// WithHandID overrides the generated hand id.
func WithHandID(id string) Option {
	return func(h *Hand) { h.id = id }
}

// Hand runs a single hand of Texas Hold'em from blinds to settlement. All
// per-hand state lives here and is discarded when the hand ends; only the
// returned Result crosses the boundary.
type Hand struct {
	id         string
	players    []*Player
	agents     map[string]Agent
	button     int
	smallBlind int
	bigBlind   int

	street    Street
	community []deck.Card
	deck      *deck.Deck
	pot       int
	betting   *BettingRound

	sink        EventSink
	logger      *log.Logger
	startTotal  int
	illegal     map[string]int
	prearranged bool
}

// NewHand creates a hand for the given seats. The button indexes into seats;
// blinds are posted from the seats after it (or by the button itself
// heads-up). Every seat must bring chips.
func NewHand(rng *rand.Rand, seats []Seat, button, smallBlind, bigBlind int, opts ...Option) (*Hand, error) {
	if len(seats) < 2 {
		return nil, errors.New("a hand needs at least 2 players")
	}
	if button < 0 || button >= len(seats) {
		return nil, fmt.Errorf("button %d out of range for %d seats", button, len(seats))
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", smallBlind, bigBlind)
	}

	h := &Hand{
		id:         uuid.NewString(),
		button:     button,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		street:     Preflop,
		betting:    NewBettingRound(len(seats), bigBlind),
		sink:       NopSink{},
		logger:     log.New(io.Discard),
		illegal:    make(map[string]int),
	}

	total := 0
	for i, seat := range seats {
		if seat.Chips <= 0 {
			return nil, fmt.Errorf("seat %d (%s) has no chips", i, seat.ID)
		}
		h.players = append(h.players, &Player{Seat: i, ID: seat.ID, Chips: seat.Chips})
		total += seat.Chips
	}
	h.startTotal = total

	for _, opt := range opts {
		opt(h)
	}
	if h.deck == nil {
		h.deck = deck.New(rng)
	}

	return h, nil
}

// IllegalActions returns per-player counts of invalid agent responses the
// engine substituted with folds. The tournament layer uses these for its
// disqualification policy.
func (h *Hand) IllegalActions() map[string]int {
	out := make(map[string]int, len(h.illegal))
	for id, n := range h.illegal {
		out[id] = n
	}
	return out
}

// Play runs the hand to completion: blinds, hole cards, the four betting
// rounds, then settlement. Agents are looked up by player id; a missing
// agent simply folds when it is due to act. The only fatal errors are
// invariant violations such as deck exhaustion.
func (h *Hand) Play(agents map[string]Agent) (*Result, error) {
	h.agents = agents

	if !h.prearranged {
		h.deck.Shuffle()
	}
	if err := h.dealHoleCards(); err != nil {
		return nil, err
	}
	h.postBlinds()

	ids := make([]string, len(h.players))
	for i, p := range h.players {
		ids[i] = p.ID
	}
	h.sink.Handle(HandStartedEvent{
		stamp: newStamp(), HandID: h.id, Players: ids,
		Button: h.button, SmallBlind: h.smallBlind, BigBlind: h.bigBlind,
	})

	for {
		h.runBettingRound()
		h.collectBets()
		if err := h.checkConservation(); err != nil {
			return nil, err
		}
		if h.countUnfolded() <= 1 {
			break
		}
		if h.street == River {
			h.street = Showdown
			break
		}
		if err := h.dealNextStreet(); err != nil {
			return nil, err
		}
	}

	return h.settle()
}

func (h *Hand) dealHoleCards() error {
	for _, p := range h.players {
		for i := 0; i < 2; i++ {
			card, err := h.deck.Draw()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}
	return nil
}

func (h *Hand) postBlinds() {
	n := len(h.players)
	sb := (h.button + 1) % n
	bb := (h.button + 2) % n
	if n == 2 {
		// Heads-up the button posts the small blind
		sb = h.button
		bb = (h.button + 1) % n
	}

	// Blinds are capped at the poster's stack; a short post is an all-in.
	sbAmount := h.players[sb].pay(h.smallBlind)
	bbAmount := h.players[bb].pay(h.bigBlind)
	h.betting.CurrentBet = h.bigBlind

	h.sink.Handle(BlindPostedEvent{stamp: newStamp(), Player: h.players[sb].ID, Amount: sbAmount})
	h.sink.Handle(BlindPostedEvent{stamp: newStamp(), Player: h.players[bb].ID, Amount: bbAmount, Big: true})
}

func (h *Hand) runBettingRound() {
	if h.street != Preflop {
		h.betting.ResetForStreet()
	}

	current := h.firstToAct()
	for current != -1 && !h.betting.Complete(h.players) {
		h.requestAndApply(h.players[current])
		current = h.nextToAct(current + 1)
	}
}

// firstToAct returns the seat opening the round: preflop it is the button
// heads-up or three seats left of the button otherwise (after the blinds);
// postflop it is the first player left of the button who can act.
func (h *Hand) firstToAct() int {
	start := (h.button + 1) % len(h.players)
	if h.street == Preflop {
		if len(h.players) == 2 {
			start = h.button
		} else {
			start = (h.button + 3) % len(h.players)
		}
	}
	return h.nextToAct(start)
}

func (h *Hand) nextToAct(from int) int {
	n := len(h.players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if h.players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// requestAndApply asks the seat's agent for a decision, validates it, and
// applies it. Anything invalid is silently turned into a fold and counted
// against the player; the hand itself never aborts on an agent fault.
func (h *Hand) requestAndApply(p *Player) {
	legal := h.betting.LegalActions(p)
	minRaiseTo := h.betting.MinRaiseTo()
	maxRaiseTo := p.Chips + p.Bet

	action, amount := Fold, 0
	substituted := false

	if agent := h.agents[p.ID]; agent != nil {
		hole := make([]deck.Card, len(p.HoleCards))
		copy(hole, p.HoleCards)
		action, amount = agent.Decide(h.snapshot(p.ID), hole, legal, minRaiseTo, maxRaiseTo)

		if !h.validate(action, amount, legal, minRaiseTo, maxRaiseTo) {
			h.illegal[p.ID]++
			h.logger.Warn("illegal action substituted with fold",
				"player", p.ID, "action", action, "amount", amount,
				"minRaiseTo", minRaiseTo, "maxRaiseTo", maxRaiseTo)
			action, amount = Fold, 0
			substituted = true
		}
	}

	h.apply(p, action, amount)

	roundBets := 0
	for _, q := range h.players {
		roundBets += q.Bet
	}
	h.sink.Handle(ActionTakenEvent{
		stamp: newStamp(), Player: p.ID, Street: h.street,
		Action: action, Amount: amount, Pot: h.pot + roundBets, Substituted: substituted,
	})
}

func (h *Hand) validate(action Action, amount int, legal []Action, minRaiseTo, maxRaiseTo int) bool {
	allowed := false
	for _, a := range legal {
		if a == action {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	if action == Raise {
		return amount >= minRaiseTo && amount <= maxRaiseTo
	}
	return true
}

func (h *Hand) apply(p *Player, action Action, amount int) {
	h.betting.MarkActed(p.Seat)

	switch action {
	case Fold:
		p.Folded = true

	case Check:
		// no chip movement

	case Call:
		p.pay(h.betting.CurrentBet - p.Bet)

	case Raise:
		// amount is the total round-bet target; pay caps at the stack, so a
		// raise the player cannot cover becomes an all-in for what they have.
		p.pay(amount - p.Bet)
		h.applyBetIncrease(p)

	case AllIn:
		p.pay(p.Chips)
		// An all-in below the current bet is a call for less and does not
		// reopen action for players already facing the full bet.
		h.applyBetIncrease(p)
	}
}

func (h *Hand) applyBetIncrease(p *Player) {
	if p.Bet <= h.betting.CurrentBet {
		return
	}
	increment := p.Bet - h.betting.CurrentBet
	if increment >= h.betting.MinRaise {
		h.betting.MinRaise = increment
	}
	h.betting.CurrentBet = p.Bet
	h.betting.Reopen(p.Seat)
}

func (h *Hand) collectBets() {
	for _, p := range h.players {
		h.pot += p.Bet
		p.Bet = 0
	}
}

func (h *Hand) dealNextStreet() error {
	if err := h.deck.Burn(); err != nil {
		return fmt.Errorf("burning before %s: %w", h.street+1, err)
	}

	reveal := 1
	if h.street == Preflop {
		reveal = 3
	}
	for i := 0; i < reveal; i++ {
		card, err := h.deck.Draw()
		if err != nil {
			return fmt.Errorf("dealing %s: %w", h.street+1, err)
		}
		h.community = append(h.community, card)
	}
	h.street++

	board := make([]deck.Card, len(h.community))
	copy(board, h.community)
	h.sink.Handle(StreetDealtEvent{stamp: newStamp(), Street: h.street, CommunityCards: board})
	return nil
}

func (h *Hand) countUnfolded() int {
	n := 0
	for _, p := range h.players {
		if !p.Folded {
			n++
		}
	}
	return n
}

// checkConservation verifies that no chips appeared or vanished:
// stacks + round bets + pot always equal the chips the hand started with.
func (h *Hand) checkConservation() error {
	total := h.pot
	for _, p := range h.players {
		total += p.Chips + p.Bet
	}
	if total != h.startTotal {
		return fmt.Errorf("chip conservation violated: have %d, started with %d", total, h.startTotal)
	}
	return nil
}

func (h *Hand) settle() (*Result, error) {
	payouts, winners, winningHands, err := h.settlePots()
	if err != nil {
		return nil, err
	}

	disbursed := 0
	for _, amount := range payouts {
		disbursed += amount
	}
	if disbursed != h.pot {
		return nil, fmt.Errorf("pot not fully disbursed: paid %d of %d", disbursed, h.pot)
	}

	for _, p := range h.players {
		p.Chips += payouts[p.ID]
	}
	h.pot = 0
	if err := h.checkConservation(); err != nil {
		return nil, err
	}

	result := &Result{
		HandID:         h.id,
		Stacks:         make(map[string]int, len(h.players)),
		Payouts:        payouts,
		Winners:        winners,
		WinningHands:   winningHands,
		WentToShowdown: h.street == Showdown,
		IllegalActions: h.IllegalActions(),
		NextButton:     (h.button + 1) % len(h.players),
	}
	for _, p := range h.players {
		result.Stacks[p.ID] = p.Chips
		if p.Chips == 0 {
			result.Eliminated = append(result.Eliminated, p.ID)
		}
	}
	if result.WentToShowdown {
		result.ShowdownHands = make(map[string][]deck.Card)
		for _, p := range h.players {
			if !p.Folded {
				hole := make([]deck.Card, len(p.HoleCards))
				copy(hole, p.HoleCards)
				result.ShowdownHands[p.ID] = hole
			}
		}
	}

	h.sink.Handle(HandEndedEvent{
		stamp: newStamp(), HandID: h.id, Winners: winners,
		Payouts: payouts, Showdown: result.WentToShowdown,
	})

	final := h.snapshot("")
	for _, p := range h.players {
		if agent := h.agents[p.ID]; agent != nil {
			agent.NotifyHandComplete(final, *result)
		}
	}

	return result, nil
}
