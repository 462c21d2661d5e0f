// Package evaluator ranks five-card poker hands and selects the best
// five-card combination out of a larger set, e.g. two hole cards plus the
// board.
package evaluator

import (
	"errors"
	"sort"

	"github.com/soleohess/poker/internal/deck"
)

// ErrInvalidHandSize is returned when EvaluateFive is given anything other
// than exactly five cards.
var ErrInvalidHandSize = errors.New("hand must contain exactly 5 cards")

// ErrTooFewCards is returned when EvaluateBest is given fewer than five cards.
var ErrTooFewCards = errors.New("need at least 5 cards to evaluate")

// Category is a hand category in ascending order of strength.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Rank returns the total order of the category (1..10, higher is stronger).
func (c Category) Rank() int {
	return int(c)
}

// String returns the category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "high_card"
	case Pair:
		return "pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	case RoyalFlush:
		return "royal_flush"
	default:
		return "unknown"
	}
}

// TieKey is an ordered sequence of rank values used for lexicographic
// comparison between hands of the same category.
type TieKey []int

// Compare returns a negative number if k is weaker than other, zero if
// equal, positive if stronger. Keys of the same category always have the
// same length.
func (k TieKey) Compare(other TieKey) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		if k[i] != other[i] {
			return k[i] - other[i]
		}
	}
	return len(k) - len(other)
}

// Eval is the score of a five-card hand.
type Eval struct {
	Category Category
	TieKey   TieKey
}

// Compare returns a negative number if e is weaker than other, zero if
// equal, positive if stronger.
func (e Eval) Compare(other Eval) int {
	if e.Category != other.Category {
		return e.Category.Rank() - other.Category.Rank()
	}
	return e.TieKey.Compare(other.TieKey)
}

// EvaluateFive scores exactly five cards.
func EvaluateFive(cards []deck.Card) (Eval, error) {
	if len(cards) != 5 {
		return Eval{}, ErrInvalidHandSize
	}

	ranks := make([]int, 5)
	for i, c := range cards {
		ranks[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	flush := isFlush(cards)
	straight := isStraight(ranks)

	// Group ranks by multiplicity, each group sorted high first.
	counts := make(map[int]int)
	for _, r := range ranks {
		counts[r]++
	}
	groups := make(map[int][]int) // multiplicity -> ranks
	for r, n := range counts {
		groups[n] = append(groups[n], r)
	}
	for n := range groups {
		sort.Sort(sort.Reverse(sort.IntSlice(groups[n])))
	}

	switch {
	case straight && flush:
		if ranks[0] == int(deck.Ace) && ranks[1] == int(deck.King) {
			return Eval{RoyalFlush, ranks}, nil
		}
		return Eval{StraightFlush, straightKey(ranks)}, nil
	case len(groups[4]) == 1:
		return Eval{FourOfAKind, TieKey{groups[4][0], groups[1][0]}}, nil
	case len(groups[3]) == 1 && len(groups[2]) == 1:
		return Eval{FullHouse, TieKey{groups[3][0], groups[2][0]}}, nil
	case flush:
		return Eval{Flush, ranks}, nil
	case straight:
		return Eval{Straight, straightKey(ranks)}, nil
	case len(groups[3]) == 1:
		return Eval{ThreeOfAKind, append(TieKey{groups[3][0]}, groups[1]...)}, nil
	case len(groups[2]) == 2:
		return Eval{TwoPair, TieKey{groups[2][0], groups[2][1], groups[1][0]}}, nil
	case len(groups[2]) == 1:
		return Eval{Pair, append(TieKey{groups[2][0]}, groups[1]...)}, nil
	default:
		return Eval{HighCard, ranks}, nil
	}
}

// straightKey maps the wheel (A,5,4,3,2) to [5,4,3,2,1] so it ranks below a
// six-high straight; every other straight keys on its ranks descending.
func straightKey(ranks []int) TieKey {
	if ranks[0] == int(deck.Ace) && ranks[1] == 5 {
		return TieKey{5, 4, 3, 2, 1}
	}
	return TieKey(ranks)
}

func isFlush(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isStraight expects ranks sorted descending.
func isStraight(ranks []int) bool {
	// Wheel: A,5,4,3,2
	if ranks[0] == int(deck.Ace) && ranks[1] == 5 && ranks[2] == 4 && ranks[3] == 3 && ranks[4] == 2 {
		return true
	}
	for i := 1; i < 5; i++ {
		if ranks[i] != ranks[i-1]-1 {
			return false
		}
	}
	return true
}

// EvaluateBest enumerates all C(N,5) five-card combinations of cards and
// returns the strongest score together with the cards that produced it. When
// several combinations tie for best, any one of them may be returned.
func EvaluateBest(cards []deck.Card) (Eval, []deck.Card, error) {
	if len(cards) < 5 {
		return Eval{}, nil, ErrTooFewCards
	}

	var (
		best      Eval
		bestCards []deck.Card
		found     bool
	)

	combo := make([]deck.Card, 5)
	var walk func(start, depth int) error
	walk = func(start, depth int) error {
		if depth == 5 {
			eval, err := EvaluateFive(combo)
			if err != nil {
				return err
			}
			if !found || eval.Compare(best) > 0 {
				best = eval
				bestCards = append(bestCards[:0], combo...)
				found = true
			}
			return nil
		}
		for i := start; i <= len(cards)-(5-depth); i++ {
			combo[depth] = cards[i]
			if err := walk(i+1, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0, 0); err != nil {
		return Eval{}, nil, err
	}

	out := make([]deck.Card, 5)
	copy(out, bestCards)
	return best, out, nil
}

// Contender pairs a player id with all cards available to that player.
type Contender struct {
	ID    string
	Cards []deck.Card
}

// Winners evaluates each contender's best hand and returns every id whose
// score is not beaten by any other, preserving input order. Multi-way ties
// return multiple ids.
func Winners(contenders []Contender) ([]string, error) {
	var (
		winners []string
		best    Eval
	)

	for _, c := range contenders {
		eval, _, err := EvaluateBest(c.Cards)
		if err != nil {
			return nil, err
		}
		if len(winners) == 0 {
			best = eval
			winners = append(winners, c.ID)
			continue
		}
		switch cmp := eval.Compare(best); {
		case cmp > 0:
			best = eval
			winners = append(winners[:0], c.ID)
		case cmp == 0:
			winners = append(winners, c.ID)
		}
	}

	return winners, nil
}
