package game

// BettingRound holds the state of a single betting round: the highest
// round-bet so far, the minimum legal raise increment, and which seats have
// acted since the last raise.
type BettingRound struct {
	CurrentBet int
	MinRaise   int
	BigBlind   int
	Acted      []bool
}

// NewBettingRound creates betting state for a hand with numPlayers seats.
func NewBettingRound(numPlayers, bigBlind int) *BettingRound {
	return &BettingRound{
		MinRaise: bigBlind,
		BigBlind: bigBlind,
		Acted:    make([]bool, numPlayers),
	}
}

// ResetForStreet clears per-round state for a postflop street: round bets
// start at zero and the minimum raise falls back to the big blind.
func (br *BettingRound) ResetForStreet() {
	br.CurrentBet = 0
	br.MinRaise = br.BigBlind
	for i := range br.Acted {
		br.Acted[i] = false
	}
}

// MarkActed records that a seat has acted since the last raise. Posting a
// blind does not count as acting, which is what gives the big blind its
// preflop option.
func (br *BettingRound) MarkActed(seat int) {
	if seat >= 0 && seat < len(br.Acted) {
		br.Acted[seat] = true
	}
}

// Reopen clears the acted set after a raise, leaving only the raiser marked.
func (br *BettingRound) Reopen(raiser int) {
	for i := range br.Acted {
		br.Acted[i] = false
	}
	br.MarkActed(raiser)
}

// MinRaiseTo returns the smallest total round-bet a raise may target.
func (br *BettingRound) MinRaiseTo() int {
	return br.CurrentBet + br.MinRaise
}

// LegalActions derives the set of legal actions for a player facing the
// current bet. Fold is always legal; check only with nothing to call; call
// only when affordable in full; raise only when the stack exceeds the call
// amount; all-in whenever chips remain.
func (br *BettingRound) LegalActions(p *Player) []Action {
	actions := []Action{Fold}
	toCall := br.CurrentBet - p.Bet

	if toCall == 0 {
		actions = append(actions, Check)
	} else if p.Chips >= toCall {
		actions = append(actions, Call)
	}
	if p.Chips > toCall {
		actions = append(actions, Raise)
	}
	if p.Chips > 0 {
		actions = append(actions, AllIn)
	}
	return actions
}

// Complete reports whether the round is finished: every active player with
// chips remaining has acted since the last raise and has matched the current
// bet. A round with at most one non-folded player is trivially complete.
func (br *BettingRound) Complete(players []*Player) bool {
	unfolded := 0
	for _, p := range players {
		if !p.Folded {
			unfolded++
		}
	}
	if unfolded <= 1 {
		return true
	}

	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if !br.Acted[p.Seat] || p.Bet != br.CurrentBet {
			return false
		}
	}
	return true
}
