package game

import (
	"fmt"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/evaluator"
)

// potSlice is one layer of the pot: the chips in the layer and the ids still
// able to win it.
type potSlice struct {
	amount       int
	contributors []string
	eligible     []string
}

// layerPots peels the contribution ledger into slices, smallest remaining
// contribution first. contributors must be in deterministic order (clockwise
// from the button); eligibility keeps only non-folded contributors, so
// folded players' dead chips still fund layers they cannot win.
func layerPots(contributors []*Player) []potSlice {
	remaining := make(map[string]int, len(contributors))
	for _, p := range contributors {
		remaining[p.ID] = p.Contributed
	}

	var slices []potSlice
	for {
		lowest := 0
		for _, p := range contributors {
			r := remaining[p.ID]
			if r > 0 && (lowest == 0 || r < lowest) {
				lowest = r
			}
		}
		if lowest == 0 {
			return slices
		}

		slice := potSlice{}
		for _, p := range contributors {
			if remaining[p.ID] < lowest {
				continue
			}
			remaining[p.ID] -= lowest
			slice.amount += lowest
			slice.contributors = append(slice.contributors, p.ID)
			if !p.Folded {
				slice.eligible = append(slice.eligible, p.ID)
			}
		}
		slices = append(slices, slice)
	}
}

// settlePots distributes every slice of the pot. Contested slices are decided
// by best seven-card hand among the eligible; an indivisible remainder goes
// to the winning player closest clockwise from the button, which is the
// first entry of the (ordered) eligible list that won.
func (h *Hand) settlePots() (map[string]int, []string, map[string]evaluator.Category, error) {
	// Contributors clockwise from the seat after the button; the ordering
	// fixes the remainder-chip rule deterministically.
	contributors := make([]*Player, 0, len(h.players))
	for i := 1; i <= len(h.players); i++ {
		p := h.players[(h.button+i)%len(h.players)]
		if p.Contributed > 0 {
			contributors = append(contributors, p)
		}
	}

	holes := make(map[string][]deck.Card, len(h.players))
	for _, p := range h.players {
		holes[p.ID] = p.HoleCards
	}

	payouts := make(map[string]int)
	winningHands := make(map[string]evaluator.Category)
	var handWinners []string
	seen := make(map[string]bool)

	for idx, slice := range layerPots(contributors) {
		var sliceWinners []string
		switch len(slice.eligible) {
		case 0:
			// Every contributor to this layer folded; hand the chips back to
			// them so the pot still fully disburses.
			sliceWinners = slice.contributors
		case 1:
			sliceWinners = slice.eligible
		default:
			contenders := make([]evaluator.Contender, 0, len(slice.eligible))
			for _, id := range slice.eligible {
				contenders = append(contenders, evaluator.Contender{
					ID:    id,
					Cards: append(append([]deck.Card{}, holes[id]...), h.community...),
				})
			}
			var err error
			sliceWinners, err = evaluator.Winners(contenders)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("settling pot slice %d: %w", idx, err)
			}
			for _, id := range sliceWinners {
				eval, _, err := evaluator.EvaluateBest(append(append([]deck.Card{}, holes[id]...), h.community...))
				if err != nil {
					return nil, nil, nil, fmt.Errorf("settling pot slice %d: %w", idx, err)
				}
				winningHands[id] = eval.Category
			}
		}

		share := slice.amount / len(sliceWinners)
		remainder := slice.amount % len(sliceWinners)
		for i, id := range sliceWinners {
			amount := share
			if i == 0 {
				amount += remainder
			}
			payouts[id] += amount
			h.sink.Handle(PotAwardedEvent{stamp: newStamp(), Player: id, Amount: amount, Slice: idx})
			if !seen[id] {
				seen[id] = true
				handWinners = append(handWinners, id)
			}
		}
	}

	return payouts, handWinners, winningHands, nil
}
