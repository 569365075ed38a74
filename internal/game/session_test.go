package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/randutil"
)

func newTestSession(t *testing.T, prompter *scriptedPrompter, opts ...SessionOption) (*Session, *eventRecorder) {
	t.Helper()
	bus, rec := newRecordingBus()
	opts = append([]SessionOption{WithEventBus(bus), WithLogger(quietLogger())}, opts...)
	return NewSession(randutil.New(1), prompter, opts...), rec
}

func TestSessionWagerClampedToBalance(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.wagers = []string{"500"}
	s, rec := newTestSession(t, prompter)

	require.NoError(t, s.PromptWager(context.Background()))

	assert.Equal(t, 100, s.Wager())
	require.Equal(t, 1, rec.count(EventTypeWagerClamped))
	clamped := rec.of(EventTypeWagerClamped)[0].(WagerClampedEvent)
	assert.Equal(t, 500, clamped.Requested)
	assert.Equal(t, 100, clamped.Balance)
	assert.Equal(t, 100, clamped.Wager)
}

func TestSessionWagerRepromptsUntilValid(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.wagers = []string{"ten", "-5", "20"}
	s, rec := newTestSession(t, prompter)

	require.NoError(t, s.PromptWager(context.Background()))

	assert.Equal(t, 20, s.Wager())
	assert.Equal(t, 3, prompter.asked[PromptWager])
	assert.Equal(t, 2, rec.count(EventTypeInvalidInput))
}

func TestSessionBlankWagerKeepsCurrent(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.wagers = []string{""}
	s, _ := newTestSession(t, prompter, WithWager(15))

	require.NoError(t, s.PromptWager(context.Background()))
	assert.Equal(t, 15, s.Wager())
}

func TestSessionNamePrompt(t *testing.T) {
	t.Run("blank keeps default", func(t *testing.T) {
		prompter := newScriptedPrompter()
		prompter.names = []string{""}
		s, _ := newTestSession(t, prompter, WithDefaultName("Grace"))

		require.NoError(t, s.PromptName(context.Background()))
		assert.Equal(t, "Grace", s.Human().Name)
	})

	t.Run("reply overrides default", func(t *testing.T) {
		prompter := newScriptedPrompter()
		prompter.names = []string{"Ada"}
		s, _ := newTestSession(t, prompter, WithDefaultName("Grace"))

		require.NoError(t, s.PromptName(context.Background()))
		assert.Equal(t, "Ada", s.Human().Name)
	})
}

func TestSessionPlayRoundSettles(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.wagers = []string{"25"}
	prompter.actions = []string{"stand"}
	// human stands on 10, computer 10 -> 15 -> 25
	s, rec := newTestSession(t, prompter, WithDeckFactory(stackedDecks(t, "Kh Tc 5d Kd")))

	outcome, err := s.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, HumanWin, outcome.Result)
	assert.Equal(t, 125, s.Human().Balance)
	assert.Equal(t, 75, s.Computer().Balance)

	require.Equal(t, 1, rec.count(EventTypeSettlement))
	settlement := rec.of(EventTypeSettlement)[0].(SettlementEvent)
	assert.Len(t, settlement.Changes, 2)

	// one status per rotation plus the settlement report
	assert.Equal(t, outcome.Rotations+1, rec.count(EventTypeStatus))
	final := rec.of(EventTypeStatus)[rec.count(EventTypeStatus)-1].(StatusEvent)
	assert.Equal(t, 125, final.Participants[0].Balance)
}

func TestSessionPushLeavesBalances(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.wagers = []string{""}
	prompter.actions = []string{"hit", "stand"}
	s, rec := newTestSession(t, prompter, WithDeckFactory(stackedDecks(t, "Kh 9c 9d Ts")))

	outcome, err := s.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Push, outcome.Result)
	assert.Equal(t, 100, s.Human().Balance)
	assert.Equal(t, 100, s.Computer().Balance)
	settlement := rec.of(EventTypeSettlement)[0].(SettlementEvent)
	assert.Empty(t, settlement.Changes)
}

func TestSessionBrokePlayerCannotContinue(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.names = []string{"Ada"}
	prompter.wagers = []string{""}
	prompter.actions = []string{"stand"}
	prompter.again = []string{"yes"}
	// human stands on 10, computer 10 -> 18
	s, rec := newTestSession(t, prompter,
		WithStartingBalance(10),
		WithWager(10),
		WithDeckFactory(stackedDecks(t, "Kh Tc 8s")))

	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Broke)
	assert.Equal(t, 1, summary.Rounds)
	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 0, summary.FinalBalance)
	assert.Equal(t, 1, prompter.asked[PromptWager], "no second round is started")
	require.Equal(t, 1, rec.count(EventTypeBroke))
	assert.Equal(t, "Ada", rec.of(EventTypeBroke)[0].(BrokeEvent).PlayerName)
	assert.Equal(t, 1, rec.count(EventTypeSessionEnd))
}

func TestSessionPlaysUntilDeclined(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.names = []string{""}
	prompter.wagers = []string{"", ""}
	prompter.actions = []string{"stand", "stand"}
	prompter.again = []string{"y", "n"}
	s, rec := newTestSession(t, prompter, WithDeckFactory(stackedDecks(t,
		"Kh Tc 5d Kd",
		"Kh Tc 8s",
	)))

	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Rounds)
	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 100, summary.FinalBalance)
	assert.False(t, summary.Broke)
	assert.Equal(t, "Player", summary.PlayerName)
	assert.Equal(t, 2, rec.count(EventTypeRoundStart))
	assert.Equal(t, 2, rec.count(EventTypeOutcome))
}

func TestSessionMaxRoundsSkipsReplayPrompt(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.names = []string{""}
	prompter.wagers = []string{""}
	prompter.actions = []string{"stand"}
	s, _ := newTestSession(t, prompter,
		WithMaxRounds(1),
		WithDeckFactory(stackedDecks(t, "Kh Tc 5d Kd")))

	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Rounds)
	assert.Equal(t, 0, prompter.asked[PromptPlayAgain])
}

func TestSessionPrompterErrorAbandonsRound(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.names = []string{""}
	prompter.wagers = []string{"50"}
	s, _ := newTestSession(t, prompter, WithDeckFactory(stackedDecks(t, "Kh Tc 5d Kd")))

	summary, err := s.Run(context.Background())
	require.ErrorIs(t, err, errScriptExhausted)

	assert.Equal(t, 0, summary.Rounds)
	assert.Equal(t, 100, s.Human().Balance)
	assert.Equal(t, 100, s.Computer().Balance)
}

func TestSessionAutomatedHumanSeat(t *testing.T) {
	prompter := newScriptedPrompter()
	prompter.names = []string{""}
	prompter.wagers = []string{""}
	// player threshold 15: 10 -> 16 stands; computer 10 -> 17 -> 21 stands
	s, _ := newTestSession(t, prompter,
		WithHumanAgent(NewComputerAgent()),
		WithPlayerThreshold(15),
		WithMaxRounds(1),
		WithDeckFactory(stackedDecks(t, "Kh Tc 6d 7s 4c")))

	summary, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 0, prompter.asked[PromptAction])
}

func TestSessionDefaults(t *testing.T) {
	s, _ := newTestSession(t, newScriptedPrompter())

	assert.Equal(t, DefaultStartingBalance, s.Human().Balance)
	assert.Equal(t, DefaultStartingBalance, s.Computer().Balance)
	assert.Equal(t, DefaultWager, s.Wager())
	assert.Equal(t, DefaultThreshold, s.Computer().Threshold)
	assert.Equal(t, DefaultPlayerName, s.Human().Name)
	assert.Equal(t, DefaultComputerName, s.Computer().Name)
}

func TestNewSessionRequiresRNG(t *testing.T) {
	assert.Panics(t, func() { NewSession(nil, newScriptedPrompter()) })
}

func TestSessionStartingBrokeNeverPlays(t *testing.T) {
	for _, balance := range []int{0, -5} {
		prompter := newScriptedPrompter()
		prompter.names = []string{"Ada"}
		s, rec := newTestSession(t, prompter,
			WithStartingBalance(balance),
			WithDeckFactory(stackedDecks(t, "Kh Tc 8s")))

		summary, err := s.Run(context.Background())
		require.NoError(t, err)

		assert.True(t, summary.Broke)
		assert.Zero(t, summary.Rounds)
		assert.Equal(t, balance, summary.FinalBalance)
		assert.Zero(t, prompter.asked[PromptWager], "no round is started")
		assert.Zero(t, prompter.asked[PromptPlayAgain])
		assert.Equal(t, 1, rec.count(EventTypeBroke))
		assert.Zero(t, rec.count(EventTypeRoundStart))
	}
}

func TestSessionPlayRoundRejectsBrokePlayer(t *testing.T) {
	s, _ := newTestSession(t, newScriptedPrompter(), WithStartingBalance(0))

	_, err := s.PlayRound(context.Background())
	require.ErrorIs(t, err, ErrBroke)
	assert.Zero(t, s.Human().Balance)
	assert.Zero(t, s.Computer().Balance)
}
