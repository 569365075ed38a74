package game

import (
	"time"

	"github.com/lox/twentyone/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeSessionStart EventType = "session_start"
	EventTypeSessionEnd   EventType = "session_end"
	EventTypeRoundStart   EventType = "round_start"
	EventTypeStatus       EventType = "status"
	EventTypeInvalidInput EventType = "invalid_input"
	EventTypeWagerClamped EventType = "wager_clamped"
	EventTypePlayerAction EventType = "player_action"
	EventTypeBust         EventType = "bust"
	EventTypeBothStanding EventType = "both_standing"
	EventTypeOutcome      EventType = "outcome"
	EventTypeSettlement   EventType = "settlement"
	EventTypeBroke        EventType = "broke"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything the engine reports to the output boundary
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// SessionStartEvent is published once the player's name is known
type SessionStartEvent struct {
	PlayerName   string
	ComputerName string
	Balance      int
	Wager        int
	timestamp    time.Time
}

func (e SessionStartEvent) EventType() EventType { return EventTypeSessionStart }
func (e SessionStartEvent) Timestamp() time.Time { return e.timestamp }

// NewSessionStartEvent creates a new session start event
func NewSessionStartEvent(playerName, computerName string, balance, wager int) SessionStartEvent {
	return SessionStartEvent{
		PlayerName:   playerName,
		ComputerName: computerName,
		Balance:      balance,
		Wager:        wager,
		timestamp:    time.Now(),
	}
}

// SessionEndEvent is published when the session loop stops
type SessionEndEvent struct {
	Summary   Summary
	timestamp time.Time
}

func (e SessionEndEvent) EventType() EventType { return EventTypeSessionEnd }
func (e SessionEndEvent) Timestamp() time.Time { return e.timestamp }

// NewSessionEndEvent creates a new session end event
func NewSessionEndEvent(summary Summary) SessionEndEvent {
	return SessionEndEvent{Summary: summary, timestamp: time.Now()}
}

// RoundStartEvent is published before the wager is asked for
type RoundStartEvent struct {
	Number    int
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(number int) RoundStartEvent {
	return RoundStartEvent{Number: number, timestamp: time.Now()}
}

// StatusEvent reports both participants at the top of each rotation and
// after settlement
type StatusEvent struct {
	RoundID      string
	Participants []ParticipantSnapshot
	timestamp    time.Time
}

func (e StatusEvent) EventType() EventType { return EventTypeStatus }
func (e StatusEvent) Timestamp() time.Time { return e.timestamp }

// NewStatusEvent snapshots the given participants
func NewStatusEvent(roundID string, participants ...*Participant) StatusEvent {
	snapshots := make([]ParticipantSnapshot, len(participants))
	for i, p := range participants {
		snapshots[i] = p.Snapshot()
	}
	return StatusEvent{
		RoundID:      roundID,
		Participants: snapshots,
		timestamp:    time.Now(),
	}
}

// InvalidInputEvent is published when a reply cannot be classified
type InvalidInputEvent struct {
	Prompt    Prompt
	Reply     string
	timestamp time.Time
}

func (e InvalidInputEvent) EventType() EventType { return EventTypeInvalidInput }
func (e InvalidInputEvent) Timestamp() time.Time { return e.timestamp }

// NewInvalidInputEvent creates a new invalid input event
func NewInvalidInputEvent(prompt Prompt, reply string) InvalidInputEvent {
	return InvalidInputEvent{Prompt: prompt, Reply: reply, timestamp: time.Now()}
}

// WagerClampedEvent is published when a requested wager is cut to the balance
type WagerClampedEvent struct {
	Requested int
	Balance   int
	Wager     int
	timestamp time.Time
}

func (e WagerClampedEvent) EventType() EventType { return EventTypeWagerClamped }
func (e WagerClampedEvent) Timestamp() time.Time { return e.timestamp }

// NewWagerClampedEvent creates a new wager clamped event
func NewWagerClampedEvent(requested, balance, wager int) WagerClampedEvent {
	return WagerClampedEvent{
		Requested: requested,
		Balance:   balance,
		Wager:     wager,
		timestamp: time.Now(),
	}
}

// PlayerActionEvent is published after a hit or stand is applied
type PlayerActionEvent struct {
	RoundID    string
	PlayerName string
	Action     Action
	Card       deck.Card // Only set for Hit
	Score      int
	timestamp  time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(roundID, playerName string, action Action, card deck.Card, score int) PlayerActionEvent {
	return PlayerActionEvent{
		RoundID:    roundID,
		PlayerName: playerName,
		Action:     action,
		Card:       card,
		Score:      score,
		timestamp:  time.Now(),
	}
}

// BustEvent is published when a rotation ends with a hand over the limit
type BustEvent struct {
	RoundID    string
	PlayerName string
	Score      int
	timestamp  time.Time
}

func (e BustEvent) EventType() EventType { return EventTypeBust }
func (e BustEvent) Timestamp() time.Time { return e.timestamp }

// NewBustEvent creates a new bust event
func NewBustEvent(roundID, playerName string, score int) BustEvent {
	return BustEvent{
		RoundID:    roundID,
		PlayerName: playerName,
		Score:      score,
		timestamp:  time.Now(),
	}
}

// BothStandingEvent is published when a rotation ends with both hands standing
type BothStandingEvent struct {
	RoundID   string
	timestamp time.Time
}

func (e BothStandingEvent) EventType() EventType { return EventTypeBothStanding }
func (e BothStandingEvent) Timestamp() time.Time { return e.timestamp }

// NewBothStandingEvent creates a new both standing event
func NewBothStandingEvent(roundID string) BothStandingEvent {
	return BothStandingEvent{RoundID: roundID, timestamp: time.Now()}
}

// OutcomeEvent is published when a round reaches Done
type OutcomeEvent struct {
	Outcome   Outcome
	timestamp time.Time
}

func (e OutcomeEvent) EventType() EventType { return EventTypeOutcome }
func (e OutcomeEvent) Timestamp() time.Time { return e.timestamp }

// NewOutcomeEvent creates a new outcome event
func NewOutcomeEvent(outcome Outcome) OutcomeEvent {
	return OutcomeEvent{Outcome: outcome, timestamp: time.Now()}
}

// SettlementEvent reports the balance changes applied for a round. A push
// has no changes.
type SettlementEvent struct {
	RoundID   string
	Changes   []BalanceChange
	timestamp time.Time
}

func (e SettlementEvent) EventType() EventType { return EventTypeSettlement }
func (e SettlementEvent) Timestamp() time.Time { return e.timestamp }

// NewSettlementEvent creates a new settlement event
func NewSettlementEvent(roundID string, changes []BalanceChange) SettlementEvent {
	return SettlementEvent{RoundID: roundID, Changes: changes, timestamp: time.Now()}
}

// BrokeEvent is published when the player wants another round but cannot wager
type BrokeEvent struct {
	PlayerName string
	Balance    int
	timestamp  time.Time
}

func (e BrokeEvent) EventType() EventType { return EventTypeBroke }
func (e BrokeEvent) Timestamp() time.Time { return e.timestamp }

// NewBrokeEvent creates a new broke event
func NewBrokeEvent(playerName string, balance int) BrokeEvent {
	return BrokeEvent{PlayerName: playerName, Balance: balance, timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to an EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) {
	f(event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order, on the
// publishing goroutine
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers cannot be compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
