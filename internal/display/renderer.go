package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/game"
)

// Renderer writes game events to a terminal as styled text. It implements
// game.EventSubscriber.
type Renderer struct {
	out    io.Writer
	styles *Styles
}

// Option configures a Renderer
type Option func(*rendererConfig)

type rendererConfig struct {
	color bool
}

// WithColor enables or disables colour. Colour is on by default and follows
// what the terminal supports.
func WithColor(enabled bool) Option {
	return func(c *rendererConfig) { c.color = enabled }
}

// New creates a renderer writing to out
func New(out io.Writer, opts ...Option) *Renderer {
	cfg := &rendererConfig{color: true}
	for _, opt := range opts {
		opt(cfg)
	}

	var r *lipgloss.Renderer
	if cfg.color {
		r = lipgloss.NewRenderer(out)
	} else {
		r = lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
	}

	return &Renderer{out: out, styles: NewStyles(r)}
}

// OnEvent renders a single event
func (r *Renderer) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.SessionStartEvent:
		r.println(r.styles.Header.Render(" ♠ ♥ Twenty-One ♦ ♣ "))
		r.printf("%s and %s sit down with %s each.\n",
			r.styles.Player.Render(e.PlayerName),
			r.styles.Player.Render(e.ComputerName),
			r.styles.Balance.Render(fmt.Sprint(e.Balance)))

	case game.RoundStartEvent:
		r.println()
		r.println(r.styles.Header.Render(fmt.Sprintf("Round %d", e.Number)))
		r.println("Let's start a new game!")

	case game.StatusEvent:
		for _, p := range e.Participants {
			r.printf("%s: current score %s, cards %s, balance %s\n",
				r.styles.Player.Render(p.Name),
				r.styles.Score.Render(fmt.Sprint(p.Score)),
				r.FormatCards(p.Cards),
				r.styles.Balance.Render(fmt.Sprint(p.Balance)))
		}

	case game.InvalidInputEvent:
		switch e.Prompt {
		case game.PromptWager:
			r.println(r.styles.Warning.Render("I didn't get that. Please try again entering a whole number!"))
		default:
			r.println(r.styles.Warning.Render("I didn't get that - please try again!"))
		}

	case game.WagerClampedEvent:
		r.println(r.styles.Warning.Render(fmt.Sprintf(
			"%d is over your current balance %d - bet will be set to %d",
			e.Requested, e.Balance, e.Wager)))

	case game.PlayerActionEvent:
		switch e.Action {
		case game.Hit:
			r.printf("%s %s and draws %s (%d)\n",
				r.styles.Player.Render(e.PlayerName),
				r.styles.Action.Render("hits"),
				r.formatCard(e.Card),
				e.Score)
		case game.Stand:
			r.printf("%s is standing.\n", r.styles.Player.Render(e.PlayerName))
		}

	case game.BustEvent:
		r.println(r.styles.Loser.Render(fmt.Sprintf("%s is busted with %d!", e.PlayerName, e.Score)))

	case game.BothStandingEvent:
		r.println("Both players are standing.")

	case game.OutcomeEvent:
		o := e.Outcome
		if o.Result == game.Push {
			r.println(r.styles.Push.Render("Both players have the same score. Nobody wins."))
			break
		}
		r.println(r.styles.Winner.Render(fmt.Sprintf("%s has won %d!", o.Winner.Name, o.Wager)))

	case game.SettlementEvent:
		for _, c := range e.Changes {
			style := r.styles.Winner
			if c.Delta < 0 {
				style = r.styles.Loser
			}
			r.printf("%s %s (balance %s)\n",
				r.styles.Player.Render(c.Name),
				style.Render(fmt.Sprintf("%+d", c.Delta)),
				r.styles.Balance.Render(fmt.Sprint(c.Balance)))
		}
		r.println(r.styles.Info.Render("Round over."))

	case game.BrokeEvent:
		r.println(r.styles.Loser.Render(fmt.Sprintf(
			"%s, be serious. You are BROKE (balance %d)! No more rounds for you.", e.PlayerName, e.Balance)))

	case game.SessionEndEvent:
		s := e.Summary
		if !s.Broke {
			r.println("Sorry to hear that. See you later!")
		}
		r.println(r.styles.Info.Render(fmt.Sprintf(
			"%d rounds: %d won, %d lost, %d pushed. Final balance %d.",
			s.Rounds, s.Wins, s.Losses, s.Pushes, s.FinalBalance)))
	}
}

// FormatCards renders a card list such as "[A♠ 10♥]"
func (r *Renderer) FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.formatCard(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (r *Renderer) formatCard(c deck.Card) string {
	if c.IsRed() {
		return r.styles.CardRed.Render(c.Short())
	}
	return r.styles.CardBlack.Render(c.Short())
}

func (r *Renderer) println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

func (r *Renderer) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}
