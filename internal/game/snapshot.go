package game

import "github.com/soleohess/poker/internal/deck"

// GameState is an immutable snapshot of the hand handed to agents. All maps
// and slices are copies; mutating a snapshot never affects controller state.
type GameState struct {
	HandID         string
	Pot            int
	CommunityCards []deck.Card
	CurrentBet     int
	PlayerChips    map[string]int
	PlayerBets     map[string]int
	ActivePlayers  []string
	CurrentPlayer  string
	Street         Street
	MinRaiseTo     int
	MinRaise       int
	SmallBlind     int
	BigBlind       int
}

// snapshot builds a GameState for the given actor ("" outside a turn). Pot
// includes bets not yet collected so agents always see the full chip mass in
// the middle.
func (h *Hand) snapshot(currentPlayer string) GameState {
	chips := make(map[string]int, len(h.players))
	bets := make(map[string]int, len(h.players))
	roundBets := 0
	for _, p := range h.players {
		chips[p.ID] = p.Chips
		bets[p.ID] = p.Bet
		roundBets += p.Bet
	}

	// Active players clockwise from the seat after the button
	active := make([]string, 0, len(h.players))
	for i := 1; i <= len(h.players); i++ {
		p := h.players[(h.button+i)%len(h.players)]
		if !p.Folded {
			active = append(active, p.ID)
		}
	}

	community := make([]deck.Card, len(h.community))
	copy(community, h.community)

	return GameState{
		HandID:         h.id,
		Pot:            h.pot + roundBets,
		CommunityCards: community,
		CurrentBet:     h.betting.CurrentBet,
		PlayerChips:    chips,
		PlayerBets:     bets,
		ActivePlayers:  active,
		CurrentPlayer:  currentPlayer,
		Street:         h.street,
		MinRaiseTo:     h.betting.MinRaiseTo(),
		MinRaise:       h.betting.MinRaise,
		SmallBlind:     h.smallBlind,
		BigBlind:       h.bigBlind,
	}
}
