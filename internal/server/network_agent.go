package server

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/soleohess/poker/internal/deck"
	"github.com/soleohess/poker/internal/game"
)

// sender is the outbound half of a client connection.
type sender interface {
	Send(msg *Message) error
}

// NetworkAgent seats a remote player in a hand. Decisions are proxied over
// the connection; a disconnect or deadline becomes a fold, so a vanished
// client cannot stall the table.
type NetworkAgent struct {
	playerID  string
	conn      sender
	logger    *log.Logger
	clock     quartz.Clock
	timeout   time.Duration
	decisions chan ActionData
}

// NewNetworkAgent creates an agent proxying to conn.
func NewNetworkAgent(playerID string, conn sender, logger *log.Logger, timeout time.Duration, clock quartz.Clock) *NetworkAgent {
	return &NetworkAgent{
		playerID:  playerID,
		conn:      conn,
		logger:    logger.WithPrefix("network-agent").With("player", playerID),
		clock:     clock,
		timeout:   timeout,
		decisions: make(chan ActionData, 1),
	}
}

// PlayerID returns the remote player's name.
func (na *NetworkAgent) PlayerID() string { return na.playerID }

// Decide implements game.Agent by requesting a decision from the remote
// client.
func (na *NetworkAgent) Decide(state game.GameState, hole []deck.Card, legal []game.Action, minRaiseTo, maxRaiseTo int) (game.Action, int) {
	request := ActionRequestData{
		State:          GameStateFromSnapshot(state),
		HoleCards:      cardStrings(hole),
		ValidActions:   actionStrings(legal),
		MinRaiseTo:     minRaiseTo,
		MaxRaiseTo:     maxRaiseTo,
		TimeoutSeconds: int(na.timeout / time.Second),
	}

	msg, err := NewMessage(MessageTypeActionRequest, request)
	if err != nil {
		na.logger.Error("failed to build action request", "error", err)
		return game.Fold, 0
	}
	if err := na.conn.Send(msg); err != nil {
		na.logger.Warn("client unreachable, folding", "error", err)
		return game.Fold, 0
	}

	expired := make(chan struct{})
	timer := na.clock.AfterFunc(na.timeout, func() {
		close(expired)
	})
	defer timer.Stop()

	select {
	case decision := <-na.decisions:
		action, ok := parseAction(decision.Action)
		if !ok {
			na.logger.Warn("unknown action from client, folding", "action", decision.Action)
			return game.Fold, 0
		}
		return action, decision.Amount

	case <-expired:
		na.logger.Warn("decision timeout, folding", "timeout", na.timeout)
		return game.Fold, 0
	}
}

// HandleAction delivers a decision received from the client. A decision
// arriving with no request pending is dropped.
func (na *NetworkAgent) HandleAction(data ActionData) {
	select {
	case na.decisions <- data:
	default:
		na.logger.Debug("dropping unsolicited decision", "action", data.Action)
	}
}

// NotifyHandComplete sends the settled hand to the client.
func (na *NetworkAgent) NotifyHandComplete(state game.GameState, result game.Result) {
	data := HandResultData{
		HandID:     result.HandID,
		Winners:    result.Winners,
		Payouts:    result.Payouts,
		Stacks:     result.Stacks,
		Eliminated: result.Eliminated,
		Board:      cardStrings(state.CommunityCards),
	}
	na.send(MessageTypeHandResult, data)
}

// TournamentStarted implements game.TournamentObserver.
func (na *NetworkAgent) TournamentStarted(playerIDs []string, startingChips int) {
	na.send(MessageTypeTournamentStart, TournamentStartData{
		Players:       playerIDs,
		StartingChips: startingChips,
	})
}

// TournamentEnded implements game.TournamentObserver.
func (na *NetworkAgent) TournamentEnded(standings []game.Standing) {
	data := TournamentEndData{Standings: make([]StandingData, len(standings))}
	for i, s := range standings {
		data.Standings[i] = StandingData{PlayerID: s.ID, Chips: s.Chips, Place: s.Place}
	}
	na.send(MessageTypeTournamentEnd, data)
}

func (na *NetworkAgent) send(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		na.logger.Error("failed to build message", "type", messageType, "error", err)
		return
	}
	if err := na.conn.Send(msg); err != nil {
		na.logger.Debug("failed to send message", "type", messageType, "error", err)
	}
}

// decodeActionData parses the payload of an action message.
func decodeActionData(raw json.RawMessage) (ActionData, error) {
	var data ActionData
	err := json.Unmarshal(raw, &data)
	return data, err
}
