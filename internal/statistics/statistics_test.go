package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.WinRate())
	assert.Zero(t, stats.AverageRotations())
	require.NoError(t, stats.Validate())
}

func TestStatistics_SingleRound(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 10, Win: true, ComputerBust: true, Rotations: 2})

	if stats.Rounds != 1 {
		t.Errorf("Expected 1 round, got %d", stats.Rounds)
	}
	if stats.Mean() != 10 {
		t.Errorf("Expected mean of 10, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	assert.Equal(t, 1, stats.BustWins)
	assert.Equal(t, 1, stats.ComputerBusts)
	assert.Zero(t, stats.ScoreWins)
	require.NoError(t, stats.Validate())
}

func TestStatistics_MultipleRounds(t *testing.T) {
	stats := &Statistics{}
	results := []RoundResult{
		{Net: 10, Win: true, Rotations: 1},
		{Net: -10, PlayerBusted: true, Rotations: 2},
		{Net: 0, Push: true, Rotations: 3},
		{Net: 20, Win: true, ComputerBust: true, Rotations: 2},
		{Net: -10, Rotations: 2},
	}
	for _, r := range results {
		stats.Add(r)
	}

	assert.Equal(t, 5, stats.Rounds)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 2, stats.Losses)
	assert.Equal(t, 1, stats.Pushes)
	assert.Equal(t, 1, stats.PlayerBusts)
	assert.Equal(t, 1, stats.ScoreWins)
	assert.Equal(t, 1, stats.BustWins)

	assert.InDelta(t, 2.0, stats.Mean(), 1e-9)
	// values 10 -10 0 20 -10: squares sum 700, variance (700 - 5*4)/4
	assert.InDelta(t, 170.0, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(170.0), stats.StdDev(), 1e-9)
	assert.InDelta(t, 0.4, stats.WinRate(), 1e-9)
	assert.InDelta(t, 0.2, stats.PushRate(), 1e-9)
	assert.InDelta(t, 0.2, stats.BustRate(), 1e-9)
	assert.InDelta(t, 2.0, stats.AverageRotations(), 1e-9)
	assert.InDelta(t, 0.0, stats.Median(), 1e-9)

	low, high := stats.ConfidenceInterval95()
	assert.Less(t, low, stats.Mean())
	assert.Greater(t, high, stats.Mean())
	assert.InDelta(t, stats.Mean(), (low+high)/2, 1e-9)

	require.NoError(t, stats.Validate())
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	for _, net := range []int{-10, 0, 10, 20} {
		stats.Add(RoundResult{Net: net, Win: net > 0, Push: net == 0})
	}

	assert.InDelta(t, -10.0, stats.Percentile(0), 1e-9)
	assert.InDelta(t, 20.0, stats.Percentile(1), 1e-9)
	assert.InDelta(t, 5.0, stats.Median(), 1e-9)
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	a.Add(RoundResult{Net: 10, Win: true})
	a.AddSession(false)

	b := &Statistics{}
	b.Add(RoundResult{Net: -10, PlayerBusted: true})
	b.Add(RoundResult{Net: -10})
	b.AddSession(true)

	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, 3, a.Rounds)
	assert.Equal(t, []float64{10, -10, -10}, a.Values)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 2, a.Losses)
	assert.Equal(t, 2, a.Sessions)
	assert.Equal(t, 1, a.BrokeSessions)
	require.NoError(t, a.Validate())
}

func TestStatistics_ValidateDetectsMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 10, Win: true})
	stats.Wins = 2

	assert.ErrorContains(t, stats.Validate(), "does not match rounds")
}
