// Package simulator plays many fully automated sessions and aggregates
// the results. Both seats are driven by the threshold rule.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/twentyone/internal/game"
	"github.com/lox/twentyone/internal/randutil"
	"github.com/lox/twentyone/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions          int
	RoundsPerSession  int
	Seed              int64
	Workers           int
	PlayerThreshold   int
	ComputerThreshold int
	Wager             int
	StartingBalance   int
	Timeout           time.Duration // per session, zero for none
	Logger            *log.Logger
}

// Simulator runs automated sessions
type Simulator struct {
	config Config
}

// New creates a simulator, filling unset fields with the table defaults
func New(config Config) *Simulator {
	if config.Sessions <= 0 {
		config.Sessions = 1
	}
	if config.RoundsPerSession <= 0 {
		config.RoundsPerSession = 100
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.PlayerThreshold <= 0 {
		config.PlayerThreshold = game.DefaultThreshold
	}
	if config.ComputerThreshold <= 0 {
		config.ComputerThreshold = game.DefaultThreshold
	}
	if config.Wager <= 0 {
		config.Wager = game.DefaultWager
	}
	if config.StartingBalance <= 0 {
		config.StartingBalance = game.DefaultStartingBalance
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every session and merges their statistics in session order, so
// the result for a seed does not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([]*statistics.Statistics, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Sessions {
		g.Go(func() error {
			stats, err := s.playSession(ctx, i)
			if err != nil {
				return fmt.Errorf("session %d: %w", i+1, err)
			}
			results[i] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, stats := range results {
		total.Merge(stats)
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

func (s *Simulator) playSession(ctx context.Context, index int) (*statistics.Statistics, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	seed := randutil.Derive(s.config.Seed, index)
	stats := &statistics.Statistics{}

	bus := game.NewEventBus()
	bus.Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
		if e, ok := event.(game.OutcomeEvent); ok {
			stats.Add(roundResult(e.Outcome))
		}
	}))

	session := game.NewSession(randutil.New(seed), autoPrompter{},
		game.WithStartingBalance(s.config.StartingBalance),
		game.WithWager(s.config.Wager),
		game.WithThreshold(s.config.ComputerThreshold),
		game.WithPlayerThreshold(s.config.PlayerThreshold),
		game.WithHumanAgent(game.NewComputerAgent()),
		game.WithDefaultName("Simulated"),
		game.WithMaxRounds(s.config.RoundsPerSession),
		game.WithEventBus(bus),
		game.WithLogger(s.config.Logger),
	)

	summary, err := session.Run(ctx)
	if err != nil {
		return nil, err
	}
	stats.AddSession(summary.Broke || summary.FinalBalance <= 0)

	s.config.Logger.Debug("Session finished",
		"session", index+1,
		"seed", seed,
		"rounds", summary.Rounds,
		"balance", summary.FinalBalance)
	return stats, nil
}

func roundResult(o game.Outcome) statistics.RoundResult {
	return statistics.RoundResult{
		Net:           o.HumanNet(),
		Win:           o.Result == game.HumanWin,
		Push:          o.Result == game.Push,
		PlayerBusted:  o.Reason == game.ReasonBust && o.Result == game.ComputerWin,
		ComputerBust:  o.Reason == game.ReasonBust && o.Result == game.HumanWin,
		Rotations:     o.Rotations,
		PlayerScore:   o.HumanScore,
		ComputerScore: o.ComputerScore,
	}
}

// autoPrompter answers every question the way a player who accepts the
// defaults, always stands and always plays again would.
type autoPrompter struct{}

func (autoPrompter) AskName(context.Context, string) (string, error)      { return "", nil }
func (autoPrompter) AskWager(context.Context, int) (string, error)        { return "", nil }
func (autoPrompter) AskAction(context.Context, string) (string, error)    { return "stand", nil }
func (autoPrompter) AskPlayAgain(context.Context, string) (string, error) { return "y", nil }

// WriteSummary prints the simulation results
func WriteSummary(w io.Writer, stats *statistics.Statistics) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "Sessions played: %d (%d ended broke)\n", stats.Sessions, stats.BrokeSessions)
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Won: %d (%.1f%%), lost: %d, pushed: %d (%.1f%%)\n",
		stats.Wins, stats.WinRate()*100, stats.Losses, stats.Pushes, stats.PushRate()*100)
	fmt.Fprintf(w, "Wins on score: %d, wins on computer bust: %d\n", stats.ScoreWins, stats.BustWins)
	fmt.Fprintf(w, "Player busts: %d (%.1f%%), computer busts: %d\n",
		stats.PlayerBusts, stats.BustRate()*100, stats.ComputerBusts)
	fmt.Fprintf(w, "Rotations per round: %.2f\n", stats.AverageRotations())
	fmt.Fprintf(w, "Mean: %.4f units/round\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f units/round\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f units\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] units/round\n", low, high)
}
