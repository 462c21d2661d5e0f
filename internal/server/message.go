// Package server hosts tournaments for remote agents. Players connect over a
// websocket, announce themselves, and answer action requests; each connection
// backs a NetworkAgent seated like any local bot.
package server

import (
	"encoding/json"
	"time"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/game"
)

// MessageType identifies a websocket message.
type MessageType string

const (
	// Client to server
	MessageTypeJoin   MessageType = "join"
	MessageTypeAction MessageType = "action"

	// Server to client
	MessageTypeJoined          MessageType = "joined"
	MessageTypeError           MessageType = "error"
	MessageTypeActionRequest   MessageType = "action_request"
	MessageTypeHandResult      MessageType = "hand_result"
	MessageTypeTournamentStart MessageType = "tournament_start"
	MessageTypeTournamentEnd   MessageType = "tournament_end"
)

// Message is the websocket envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a payload in an envelope with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client to server payloads

type JoinData struct {
	PlayerName string `json:"playerName"`
}

type ActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// Server to client payloads

type JoinedData struct {
	PlayerID string `json:"playerId"`
	Seated   int    `json:"seated"`
	Waiting  int    `json:"waiting"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GameStateData is the wire form of a table snapshot. Cards travel in
// compact notation ("As", "Td").
type GameStateData struct {
	HandID         string         `json:"handId"`
	Street         string         `json:"street"`
	Pot            int            `json:"pot"`
	CurrentBet     int            `json:"currentBet"`
	CommunityCards []string       `json:"communityCards"`
	PlayerChips    map[string]int `json:"playerChips"`
	PlayerBets     map[string]int `json:"playerBets"`
	ActivePlayers  []string       `json:"activePlayers"`
	CurrentPlayer  string         `json:"currentPlayer"`
	SmallBlind     int            `json:"smallBlind"`
	BigBlind       int            `json:"bigBlind"`
}

type ActionRequestData struct {
	State          GameStateData `json:"state"`
	HoleCards      []string      `json:"holeCards"`
	ValidActions   []string      `json:"validActions"`
	MinRaiseTo     int           `json:"minRaiseTo"`
	MaxRaiseTo     int           `json:"maxRaiseTo"`
	TimeoutSeconds int           `json:"timeoutSeconds"`
}

type HandResultData struct {
	HandID     string         `json:"handId"`
	Winners    []string       `json:"winners"`
	Payouts    map[string]int `json:"payouts"`
	Stacks     map[string]int `json:"stacks"`
	Eliminated []string       `json:"eliminated,omitempty"`
	Board      []string       `json:"board,omitempty"`
}

type TournamentStartData struct {
	Players       []string `json:"players"`
	StartingChips int      `json:"startingChips"`
}

type StandingData struct {
	PlayerID string `json:"playerId"`
	Chips    int    `json:"chips"`
	Place    int    `json:"place"`
}

type TournamentEndData struct {
	Standings []StandingData `json:"standings"`
}

// Wire conversions

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Compact()
	}
	return out
}

func actionStrings(actions []game.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.String()
	}
	return out
}

// GameStateFromSnapshot converts an engine snapshot to its wire form.
func GameStateFromSnapshot(state game.GameState) GameStateData {
	return GameStateData{
		HandID:         state.HandID,
		Street:         state.Street.String(),
		Pot:            state.Pot,
		CurrentBet:     state.CurrentBet,
		CommunityCards: cardStrings(state.CommunityCards),
		PlayerChips:    state.PlayerChips,
		PlayerBets:     state.PlayerBets,
		ActivePlayers:  state.ActivePlayers,
		CurrentPlayer:  state.CurrentPlayer,
		SmallBlind:     state.SmallBlind,
		BigBlind:       state.BigBlind,
	}
}

// parseAction maps a wire action name back to the engine action.
func parseAction(name string) (game.Action, bool) {
	switch name {
	case "fold":
		return game.Fold, true
	case "check":
		return game.Check, true
	case "call":
		return game.Call, true
	case "raise":
		return game.Raise, true
	case "allin":
		return game.AllIn, true
	}
	return game.Fold, false
}
