package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lox/twentyone/internal/config"
	"github.com/lox/twentyone/internal/display"
	"github.com/lox/twentyone/internal/game"
	"github.com/lox/twentyone/internal/prompt"
	"github.com/lox/twentyone/internal/randutil"
	"github.com/lox/twentyone/internal/tui"
)

// PlayCmd runs an interactive session on the terminal
type PlayCmd struct {
	Config    string        `kong:"default='twentyone.hcl',help='HCL config file (missing file uses defaults)'"`
	Env       string        `kong:"default='.env',help='Dotenv file with TWENTYONE_* overrides'"`
	Name      string        `kong:"help='Default player name offered at the name prompt'"`
	Balance   *int          `kong:"help='Starting balance for both players'"`
	Wager     *int          `kong:"help='Initial wager'"`
	Threshold *int          `kong:"help='Score at which the computer stops drawing'"`
	Seed      *int64        `kong:"help='Deterministic RNG seed (optional)'"`
	UI        string        `kong:"help='Input mode: line or tui'"`
	NoColor   bool          `kong:"help='Disable coloured output'"`
	Timeout   time.Duration `kong:"help='Give up when a reply takes longer than this'"`
	LogFile   string        `kong:"help='Diagnostic log file'"`
	Debug     bool          `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(cfg.Log.File, levelFor(c.Debug, cfg.LogLevel()))
	if err != nil {
		return err
	}
	defer closeLog()

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	}
	rng := randutil.New(seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := game.NewEventBus()
	bus.Subscribe(display.New(os.Stdout, display.WithColor(cfg.UI.Color)))

	var prompter game.Prompter
	switch cfg.UI.Mode {
	case "tui":
		prompter = tui.NewPrompter(os.Stdin, os.Stdout, logger)
	default:
		lp := prompt.New(os.Stdin, os.Stdout, prompt.WithTimeout(cfg.UI.PromptTimeout))
		defer lp.Close()
		prompter = lp
	}

	session := game.NewSession(rng, prompter,
		game.WithStartingBalance(cfg.Game.StartingBalance),
		game.WithWager(cfg.Game.InitialWager),
		game.WithThreshold(cfg.Game.ComputerThreshold),
		game.WithDefaultName(cfg.Game.PlayerName),
		game.WithComputerName(cfg.Game.ComputerName),
		game.WithEventBus(bus),
		game.WithLogger(logger),
	)

	summary, err := session.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled), errors.Is(err, tui.ErrCancelled):
		logger.Info("Session abandoned", "rounds", summary.Rounds, "balance", summary.FinalBalance, "error", err)
		fmt.Fprintln(os.Stdout)
		return nil
	case errors.Is(err, prompt.ErrTimeout):
		logger.Warn("Reply timed out", "error", err)
		fmt.Fprintln(os.Stdout, "\nNo reply, leaving the table.")
		return nil
	default:
		logger.Error("Session failed", "error", err)
		return err
	}
}

// loadConfig layers the config file, the environment and then flags
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnv(cfg, c.Env); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(c.Name); name != "" {
		cfg.Game.PlayerName = name
	}
	if c.Balance != nil {
		cfg.Game.StartingBalance = *c.Balance
	}
	if c.Wager != nil {
		cfg.Game.InitialWager = *c.Wager
	}
	if c.Threshold != nil {
		cfg.Game.ComputerThreshold = *c.Threshold
	}
	if c.UI != "" {
		cfg.UI.Mode = c.UI
	}
	if c.NoColor {
		cfg.UI.Color = false
	}
	if c.Timeout > 0 {
		cfg.UI.PromptTimeout = c.Timeout
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
