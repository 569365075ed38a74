package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/deck"
)

var errScriptExhausted = errors.New("script exhausted")

// scriptedPrompter replays canned replies per prompt and fails once a list
// runs out, so tests notice unexpected questions
type scriptedPrompter struct {
	names   []string
	wagers  []string
	actions []string
	again   []string
	asked   map[Prompt]int
}

func newScriptedPrompter() *scriptedPrompter {
	return &scriptedPrompter{asked: make(map[Prompt]int)}
}

func (p *scriptedPrompter) next(prompt Prompt, replies *[]string) (string, error) {
	p.asked[prompt]++
	if len(*replies) == 0 {
		return "", errScriptExhausted
	}
	reply := (*replies)[0]
	*replies = (*replies)[1:]
	return reply, nil
}

func (p *scriptedPrompter) AskName(_ context.Context, _ string) (string, error) {
	return p.next(PromptName, &p.names)
}

func (p *scriptedPrompter) AskWager(_ context.Context, _ int) (string, error) {
	return p.next(PromptWager, &p.wagers)
}

func (p *scriptedPrompter) AskAction(_ context.Context, _ string) (string, error) {
	return p.next(PromptAction, &p.actions)
}

func (p *scriptedPrompter) AskPlayAgain(_ context.Context, _ string) (string, error) {
	return p.next(PromptPlayAgain, &p.again)
}

// eventRecorder collects every published event
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) count(et EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == et {
			n++
		}
	}
	return n
}

func (r *eventRecorder) of(et EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

func newRecordingBus() (EventBus, *eventRecorder) {
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)
	return bus, rec
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func handOf(t *testing.T, cards string) *Hand {
	t.Helper()
	h := NewHand()
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
	}
	return h
}

// stackedDecks returns a deck factory dealing one stacked deck per round
func stackedDecks(t *testing.T, rounds ...string) func() *deck.Deck {
	t.Helper()
	i := 0
	return func() *deck.Deck {
		require.Less(t, i, len(rounds), "more rounds played than decks stacked")
		d := deck.NewStackedDeck(deck.MustParseCards(rounds[i])...)
		i++
		return d
	}
}
