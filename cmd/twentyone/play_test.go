package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("twentyone"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestPlayIsDefaultCommand(t *testing.T) {
	cli, ctx := parseCLI(t, "--balance", "50", "--no-color")

	assert.Equal(t, "play", ctx.Command())
	require.NotNil(t, cli.Play.Balance)
	assert.Equal(t, 50, *cli.Play.Balance)
	assert.True(t, cli.Play.NoColor)
}

func TestPlayConfigLayering(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "twentyone.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
game {
  starting_balance = 200
  initial_wager    = 20
  player_name      = "FromFile"
}
`), 0o600))
	t.Setenv("TWENTYONE_INITIAL_WAGER", "30")

	cli, _ := parseCLI(t, "play",
		"--config", cfgPath,
		"--env", filepath.Join(dir, ".env"),
		"--name", "Ada",
		"--threshold", "16",
		"--timeout", "5s",
		"--ui", "tui",
	)

	cfg, err := cli.Play.loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Game.StartingBalance, "file")
	assert.Equal(t, 30, cfg.Game.InitialWager, "environment beats file")
	assert.Equal(t, "Ada", cfg.Game.PlayerName, "flag beats file")
	assert.Equal(t, 16, cfg.Game.ComputerThreshold)
	assert.Equal(t, 5*time.Second, cfg.UI.PromptTimeout)
	assert.Equal(t, "tui", cfg.UI.Mode)
	assert.True(t, cfg.UI.Color)
}

func TestPlayRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cli, _ := parseCLI(t, "play",
		"--config", filepath.Join(dir, "missing.hcl"),
		"--env", filepath.Join(dir, ".env"),
		"--wager", "0",
	)

	_, err := cli.Play.loadConfig()
	assert.ErrorContains(t, err, "initial wager")
}

func TestSimulateFlags(t *testing.T) {
	cli, ctx := parseCLI(t, "simulate", "--sessions", "5", "--seed", "42", "--player-threshold", "15")

	assert.Equal(t, "simulate", ctx.Command())
	assert.Equal(t, 5, cli.Simulate.Sessions)
	assert.Equal(t, 100, cli.Simulate.Rounds)
	require.NotNil(t, cli.Simulate.Seed)
	assert.Equal(t, int64(42), *cli.Simulate.Seed)
	assert.Equal(t, 15, cli.Simulate.PlayerThreshold)
	assert.Equal(t, 18, cli.Simulate.ComputerThreshold)
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	logger, closeLog, err := setupLogger("", levelFor(false, 0))
	require.NoError(t, err)
	defer closeLog()
	assert.NotNil(t, logger)
}
