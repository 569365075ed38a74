package simulator

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestNewAppliesDefaults(t *testing.T) {
	sim := New(Config{})

	assert.Equal(t, 1, sim.config.Sessions)
	assert.Equal(t, 100, sim.config.RoundsPerSession)
	assert.Positive(t, sim.config.Workers)
	assert.Equal(t, game.DefaultThreshold, sim.config.PlayerThreshold)
	assert.Equal(t, game.DefaultThreshold, sim.config.ComputerThreshold)
	assert.Equal(t, game.DefaultWager, sim.config.Wager)
	assert.Equal(t, game.DefaultStartingBalance, sim.config.StartingBalance)
	assert.NotNil(t, sim.config.Logger)
}

func TestRunCountsEveryRound(t *testing.T) {
	sim := New(Config{
		Sessions:         4,
		RoundsPerSession: 5,
		Seed:             42,
		Workers:          2,
		StartingBalance:  1000,
		Logger:           quietLogger(),
	})

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	// 1000 units at 10 a round cannot go broke in 5 rounds
	assert.Equal(t, 4, stats.Sessions)
	assert.Zero(t, stats.BrokeSessions)
	assert.Equal(t, 20, stats.Rounds)
	assert.Equal(t, stats.Rounds, stats.Wins+stats.Losses+stats.Pushes)
	assert.GreaterOrEqual(t, stats.Rotations, stats.Rounds)
	require.NoError(t, stats.Validate())

	for _, net := range stats.Values {
		assert.Contains(t, []float64{-10, 0, 10}, net)
	}
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) []float64 {
		stats, err := New(Config{
			Sessions:         6,
			RoundsPerSession: 10,
			Seed:             7,
			Workers:          workers,
			Logger:           quietLogger(),
		}).Run(context.Background())
		require.NoError(t, err)
		return stats.Values
	}

	sequential := run(1)
	assert.Equal(t, sequential, run(3))
	assert.Equal(t, sequential, run(6))
}

func TestRunSeedChangesResults(t *testing.T) {
	run := func(seed int64) []float64 {
		stats, err := New(Config{
			Sessions:         2,
			RoundsPerSession: 25,
			Seed:             seed,
			Logger:           quietLogger(),
		}).Run(context.Background())
		require.NoError(t, err)
		return stats.Values
	}

	assert.NotEqual(t, run(1), run(2))
}

func TestRunStopsBrokeSessions(t *testing.T) {
	stats, err := New(Config{
		Sessions:         3,
		RoundsPerSession: 1000,
		Seed:             99,
		Wager:            50,
		StartingBalance:  50,
		Logger:           quietLogger(),
	}).Run(context.Background())
	require.NoError(t, err)

	// Staking the whole balance, a session survives 1000 rounds only by
	// never falling back to zero.
	assert.Equal(t, 3, stats.Sessions)
	assert.Less(t, stats.Rounds, 3000)
	assert.Positive(t, stats.BrokeSessions)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Sessions: 2, Logger: quietLogger()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAutoPrompterAnswers(t *testing.T) {
	ctx := context.Background()
	p := autoPrompter{}

	name, _ := p.AskName(ctx, "Player")
	assert.Equal(t, "Player", game.ParseName(name, "Player"))

	action, _ := p.AskAction(ctx, "Player")
	assert.Equal(t, game.Stand, game.ParseAction(action))

	again, _ := p.AskPlayAgain(ctx, "Player")
	assert.True(t, game.ParsePlayAgain(again))
}

func TestWriteSummary(t *testing.T) {
	stats, err := New(Config{Sessions: 1, RoundsPerSession: 3, Seed: 1, StartingBalance: 500, Logger: quietLogger()}).
		Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteSummary(&buf, stats)

	out := buf.String()
	assert.Contains(t, out, "Sessions played: 1 (0 ended broke)")
	assert.Contains(t, out, "Rounds played: 3")
	assert.Contains(t, out, "95% CI")
}
