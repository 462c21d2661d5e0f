package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/soleohess/poker/internal/deck"
)

// EventKind identifies a game event type
type EventKind string

const (
	EventHandStarted EventKind = "hand_started"
	EventBlindPosted EventKind = "blind_posted"
	EventActionTaken EventKind = "action_taken"
	EventStreetDealt EventKind = "street_dealt"
	EventPotAwarded  EventKind = "pot_awarded"
	EventHandEnded   EventKind = "hand_ended"
)

// Event is anything the hand controller reports while running a hand.
type Event interface {
	Kind() EventKind
	Timestamp() time.Time
}

// EventSink receives controller events. The controller calls it inline from
// the hand goroutine, so sinks must not block.
type EventSink interface {
	Handle(Event)
}

type stamp struct{ at time.Time }

func newStamp() stamp                { return stamp{at: time.Now()} }
func (s stamp) Timestamp() time.Time { return s.at }

// HandStartedEvent is emitted after blinds are posted and hole cards dealt.
type HandStartedEvent struct {
	stamp
	HandID     string
	Players    []string
	Button     int
	SmallBlind int
	BigBlind   int
}

func (HandStartedEvent) Kind() EventKind { return EventHandStarted }

// BlindPostedEvent is emitted for each forced bet, which may be short when
// the poster's stack cannot cover the blind.
type BlindPostedEvent struct {
	stamp
	Player string
	Amount int
	Big    bool
}

func (BlindPostedEvent) Kind() EventKind { return EventBlindPosted }

// ActionTakenEvent is emitted after an action has been applied. Substituted
// reports that the agent's response was invalid and the engine folded for it.
type ActionTakenEvent struct {
	stamp
	Player      string
	Street      Street
	Action      Action
	Amount      int
	Pot         int
	Substituted bool
}

func (ActionTakenEvent) Kind() EventKind { return EventActionTaken }

// StreetDealtEvent is emitted when community cards are revealed.
type StreetDealtEvent struct {
	stamp
	Street         Street
	CommunityCards []deck.Card
}

func (StreetDealtEvent) Kind() EventKind { return EventStreetDealt }

// PotAwardedEvent is emitted once per pot slice per winner.
type PotAwardedEvent struct {
	stamp
	Player string
	Amount int
	Slice  int
}

func (PotAwardedEvent) Kind() EventKind { return EventPotAwarded }

// HandEndedEvent is emitted after settlement.
type HandEndedEvent struct {
	stamp
	HandID   string
	Winners  []string
	Payouts  map[string]int
	Showdown bool
}

func (HandEndedEvent) Kind() EventKind { return EventHandEnded }

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Handle(Event) {}

// LogSink writes events to a structured logger.
type LogSink struct {
	Logger *log.Logger
}

func (s LogSink) Handle(e Event) {
	switch ev := e.(type) {
	case HandStartedEvent:
		s.Logger.Info("hand started", "hand", ev.HandID, "players", ev.Players, "button", ev.Button, "blinds", []int{ev.SmallBlind, ev.BigBlind})
	case BlindPostedEvent:
		s.Logger.Debug("blind posted", "player", ev.Player, "amount", ev.Amount, "big", ev.Big)
	case ActionTakenEvent:
		s.Logger.Debug("action", "street", ev.Street, "player", ev.Player, "action", ev.Action, "amount", ev.Amount, "pot", ev.Pot, "substituted", ev.Substituted)
	case StreetDealtEvent:
		s.Logger.Debug("street dealt", "street", ev.Street, "board", ev.CommunityCards)
	case PotAwardedEvent:
		s.Logger.Debug("pot awarded", "player", ev.Player, "amount", ev.Amount, "slice", ev.Slice)
	case HandEndedEvent:
		s.Logger.Info("hand ended", "hand", ev.HandID, "winners", ev.Winners, "payouts", ev.Payouts, "showdown", ev.Showdown)
	}
}

// Recorder keeps every event in order; used by tests and replay tooling.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Handle(e Event) {
	r.Events = append(r.Events, e)
}

// ByKind returns the recorded events of one kind, in order.
func (r *Recorder) ByKind(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}
