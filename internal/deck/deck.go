package deck

import (
	"errors"
	"math/rand"
	"time"
)

// ErrDeckExhausted is returned when drawing from an empty deck. With legal
// table sizes a hand never draws more than 52 cards, so hitting this is an
// invariant violation rather than a recoverable condition.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered sequence of cards. A freshly reset deck contains all 52
// distinct cards exactly once; Draw consumes from the front.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full, unshuffled deck using the given RNG for shuffling.
// A nil RNG falls back to a time-seeded source.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// NewStacked creates a deck that deals the given cards front to back.
// Intended for deterministic tests; the deck holds only these cards.
func NewStacked(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Reset deterministically rebuilds the 52-card sequence, each rank×suit pair
// exactly once.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
}

// Shuffle produces a uniformly random permutation of the remaining cards
// using Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the front card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Burn discards the front card before a street is revealed.
func (d *Deck) Burn() error {
	_, err := d.Draw()
	return err
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
