// Package prompt binds the game's input boundary to a line-oriented
// terminal: each question is written to an io.Writer and answered by one
// line read from an io.Reader.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
)

var (
	// ErrTimeout is returned when no reply arrives within the configured timeout
	ErrTimeout = errors.New("timed out waiting for a reply")

	// ErrClosed is returned by questions asked after Close
	ErrClosed = errors.New("prompter closed")
)

type line struct {
	text string
	err  error
}

// LinePrompter asks questions one line at a time. It implements game.Prompter.
type LinePrompter struct {
	in      *bufio.Reader
	out     io.Writer
	clock   quartz.Clock
	timeout time.Duration

	start     sync.Once
	closeOnce sync.Once
	lines     chan line
	done      chan struct{}
}

// Option configures a LinePrompter
type Option func(*LinePrompter)

// WithTimeout limits how long each question waits for a reply. Zero waits forever.
func WithTimeout(d time.Duration) Option {
	return func(p *LinePrompter) { p.timeout = d }
}

// WithClock sets the clock used for timeouts
func WithClock(clock quartz.Clock) Option {
	return func(p *LinePrompter) { p.clock = clock }
}

// New creates a prompter reading replies from in and writing questions to out
func New(in io.Reader, out io.Writer, opts ...Option) *LinePrompter {
	p := &LinePrompter{
		in:    bufio.NewReader(in),
		out:   out,
		clock: quartz.NewReal(),
		lines: make(chan line),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AskName asks for the player's name
func (p *LinePrompter) AskName(ctx context.Context, defaultName string) (string, error) {
	return p.ask(ctx, fmt.Sprintf("What is your name? (press enter for '%s'): ", defaultName))
}

// AskWager asks for the wager for the next round
func (p *LinePrompter) AskWager(ctx context.Context, currentWager int) (string, error) {
	return p.ask(ctx, fmt.Sprintf("How much would you like to bet? (press enter to leave current value: %d): ", currentWager))
}

// AskAction asks whether to hit or stand
func (p *LinePrompter) AskAction(ctx context.Context, playerName string) (string, error) {
	return p.ask(ctx, fmt.Sprintf("%s, please state your choice (hit, stand): ", playerName))
}

// AskPlayAgain asks whether to play another round
func (p *LinePrompter) AskPlayAgain(ctx context.Context, playerName string) (string, error) {
	return p.ask(ctx, fmt.Sprintf("Do you want to play again, %s? (y/n): ", playerName))
}

// Close stops delivering replies. A read already blocked on the input is
// abandoned rather than interrupted.
func (p *LinePrompter) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	return nil
}

func (p *LinePrompter) ask(ctx context.Context, question string) (string, error) {
	select {
	case <-p.done:
		return "", ErrClosed
	default:
	}
	p.start.Do(func() { go p.readLines() })

	// The deadline is armed before the question is shown
	var timeoutFired chan struct{}
	if p.timeout > 0 {
		timeoutFired = make(chan struct{})
		timer := p.clock.AfterFunc(p.timeout, func() {
			close(timeoutFired)
		})
		defer timer.Stop()
	}

	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	select {
	case l, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return l.text, nil
	case <-timeoutFired:
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", ErrClosed
	}
}

// readLines feeds replies to ask until the input ends or the prompter is
// closed. A reply that arrives after its question timed out is delivered to
// the next question.
func (p *LinePrompter) readLines() {
	defer close(p.lines)
	for {
		text, err := p.in.ReadString('\n')
		if text != "" && !p.send(line{text: strings.TrimRight(text, "\r\n")}) {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.send(line{err: fmt.Errorf("read reply: %w", err)})
			}
			return
		}
	}
}

func (p *LinePrompter) send(l line) bool {
	select {
	case <-p.done:
		return false
	default:
	}

	select {
	case p.lines <- l:
		return true
	case <-p.done:
		return false
	}
}
