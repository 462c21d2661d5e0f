package game

import "github.com/soleohess/poker/internal/deck"

// Player is a single seat's per-hand record, exclusively owned by the hand
// controller for the duration of one hand.
type Player struct {
	Seat      int
	ID        string
	Chips     int
	HoleCards []deck.Card
	Folded    bool
	AllIn     bool

	// Bet is the amount committed this betting round; Contributed is the
	// monotone total across the whole hand and feeds the side-pot layering.
	Bet         int
	Contributed int
}

// CanAct returns true if the player can still take actions this round.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && p.Chips > 0
}

// pay moves up to amount chips from the stack into the round bet and the
// contribution ledger, capped at the remaining stack. It returns the amount
// actually moved.
func (p *Player) pay(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	p.Contributed += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}
