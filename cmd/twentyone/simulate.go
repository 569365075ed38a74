package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/simulator"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Bold(true).
	Padding(0, 1)

// SimulateCmd plays automated sessions with both seats on the threshold rule
type SimulateCmd struct {
	Sessions          int           `kong:"default='100',help='Number of sessions to play'"`
	Rounds            int           `kong:"default='100',help='Maximum rounds per session'"`
	Seed              *int64        `kong:"help='Deterministic RNG seed (optional)'"`
	Workers           int           `kong:"default='0',help='Concurrent sessions (0 for one per CPU)'"`
	PlayerThreshold   int           `kong:"default='18',help='Score at which the simulated player stops drawing'"`
	ComputerThreshold int           `kong:"default='18',help='Score at which the computer stops drawing'"`
	Wager             int           `kong:"default='10',help='Wager per round'"`
	Balance           int           `kong:"default='100',help='Starting balance for both players'"`
	Timeout           time.Duration `kong:"default='30s',help='Abort a session that runs longer than this'"`
	Debug             bool          `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "simulate"})

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Sessions:          c.Sessions,
		RoundsPerSession:  c.Rounds,
		Seed:              seed,
		Workers:           c.Workers,
		PlayerThreshold:   c.PlayerThreshold,
		ComputerThreshold: c.ComputerThreshold,
		Wager:             c.Wager,
		StartingBalance:   c.Balance,
		Timeout:           c.Timeout,
		Logger:            logger,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Player %d vs Computer %d", c.PlayerThreshold, c.ComputerThreshold)))
	fmt.Printf("Seed: %d, elapsed: %v\n", seed, time.Since(start).Round(time.Millisecond))
	simulator.WriteSummary(os.Stdout, stats)
	return nil
}
