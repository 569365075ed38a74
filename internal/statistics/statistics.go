// Package statistics aggregates round outcomes from the human seat's point
// of view.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult is the outcome of a single round for the human seat
type RoundResult struct {
	Net           int  // units won (positive) or lost (negative); zero on a push
	Win           bool // human won
	Push          bool // nobody won
	PlayerBusted  bool
	ComputerBust  bool
	Rotations     int
	PlayerScore   int
	ComputerScore int
}

// Statistics tracks results across many rounds
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // sum of squares for variance
	Values  []float64 // per-round net, for median and percentiles

	Wins   int
	Losses int
	Pushes int

	PlayerBusts   int
	ComputerBusts int
	ScoreWins     int // wins decided by comparing scores
	BustWins      int // wins decided by the computer busting

	Rotations int

	Sessions      int
	BrokeSessions int
}

// Add incorporates a round result
func (s *Statistics) Add(r RoundResult) {
	net := float64(r.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)
	s.Rotations += r.Rotations

	switch {
	case r.Push:
		s.Pushes++
	case r.Win:
		s.Wins++
		if r.ComputerBust {
			s.BustWins++
		} else {
			s.ScoreWins++
		}
	default:
		s.Losses++
	}

	if r.PlayerBusted {
		s.PlayerBusts++
	}
	if r.ComputerBust {
		s.ComputerBusts++
	}
}

// AddSession records that a session finished, and whether it ended broke
func (s *Statistics) AddSession(broke bool) {
	s.Sessions++
	if broke {
		s.BrokeSessions++
	}
}

// Merge folds other into s. Values are appended in order.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.PlayerBusts += other.PlayerBusts
	s.ComputerBusts += other.ComputerBusts
	s.ScoreWins += other.ScoreWins
	s.BustWins += other.BustWins
	s.Rotations += other.Rotations
	s.Sessions += other.Sessions
	s.BrokeSessions += other.BrokeSessions
}

// Mean returns the average net units per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of the per-round net
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds won
func (s *Statistics) WinRate() float64 {
	return s.rate(s.Wins)
}

// PushRate returns the fraction of rounds pushed
func (s *Statistics) PushRate() float64 {
	return s.rate(s.Pushes)
}

// BustRate returns the fraction of rounds in which the human seat busted
func (s *Statistics) BustRate() float64 {
	return s.rate(s.PlayerBusts)
}

// AverageRotations returns the mean number of turn rotations per round
func (s *Statistics) AverageRotations() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Rotations) / float64(s.Rounds)
}

func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// Median returns the median per-round net
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the per-round net at p (0.0 to 1.0), interpolating
// between neighbours
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds < 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values length (%d) does not match rounds (%d)", len(s.Values), s.Rounds)
	}
	if total := s.Wins + s.Losses + s.Pushes; total != s.Rounds {
		return fmt.Errorf("wins+losses+pushes (%d) does not match rounds (%d)", total, s.Rounds)
	}
	if s.ScoreWins+s.BustWins != s.Wins {
		return fmt.Errorf("win breakdown (%d+%d) does not match wins (%d)", s.ScoreWins, s.BustWins, s.Wins)
	}
	if s.BrokeSessions > s.Sessions {
		return fmt.Errorf("broke sessions (%d) exceed sessions (%d)", s.BrokeSessions, s.Sessions)
	}
	return nil
}
