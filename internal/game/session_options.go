package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/deck"
)

// Reference table defaults
const (
	DefaultStartingBalance = 100
	DefaultWager           = 10
	DefaultThreshold       = 18
	DefaultPlayerName      = "Player"
	DefaultComputerName    = "Computer"
)

// SessionOption configures a Session during creation.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	startingBalance int
	wager           int
	threshold       int
	playerThreshold int
	playerName      string
	computerName    string
	maxRounds       int
	bus             EventBus
	logger          *log.Logger
	humanAgent      Agent
	newDeck         func() *deck.Deck
}

// WithStartingBalance sets both participants' opening balance
func WithStartingBalance(balance int) SessionOption {
	return func(c *sessionConfig) { c.startingBalance = balance }
}

// WithWager sets the wager offered in the first round
func WithWager(wager int) SessionOption {
	return func(c *sessionConfig) { c.wager = wager }
}

// WithThreshold sets the computer's drawing threshold
func WithThreshold(threshold int) SessionOption {
	return func(c *sessionConfig) { c.threshold = threshold }
}

// WithPlayerThreshold sets a threshold on the human seat, for automated
// agents playing it
func WithPlayerThreshold(threshold int) SessionOption {
	return func(c *sessionConfig) { c.playerThreshold = threshold }
}

// WithDefaultName sets the name offered when asking for the player's name
func WithDefaultName(name string) SessionOption {
	return func(c *sessionConfig) { c.playerName = name }
}

// WithComputerName sets the computer participant's display name
func WithComputerName(name string) SessionOption {
	return func(c *sessionConfig) { c.computerName = name }
}

// WithMaxRounds stops the session after n rounds without asking to play
// again. Zero means no limit.
func WithMaxRounds(n int) SessionOption {
	return func(c *sessionConfig) { c.maxRounds = n }
}

// WithEventBus sets the bus events are published on
func WithEventBus(bus EventBus) SessionOption {
	return func(c *sessionConfig) { c.bus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) SessionOption {
	return func(c *sessionConfig) { c.logger = logger }
}

// WithHumanAgent replaces the prompting HumanAgent on the human seat
func WithHumanAgent(agent Agent) SessionOption {
	return func(c *sessionConfig) { c.humanAgent = agent }
}

// WithDeckFactory overrides how the fresh deck for each round is built
func WithDeckFactory(newDeck func() *deck.Deck) SessionOption {
	return func(c *sessionConfig) { c.newDeck = newDeck }
}

func defaultSessionConfig() *sessionConfig {
	return &sessionConfig{
		startingBalance: DefaultStartingBalance,
		wager:           DefaultWager,
		threshold:       DefaultThreshold,
		playerName:      DefaultPlayerName,
		computerName:    DefaultComputerName,
		logger:          log.New(io.Discard),
	}
}
