// Package config loads twentyone settings from an HCL file, a .env file
// and TWENTYONE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

// DefaultFile is the config file read when no path is given
const DefaultFile = "twentyone.hcl"

// EnvPrefix prefixes every environment override
const EnvPrefix = "TWENTYONE_"

// Config is the complete game configuration
type Config struct {
	Game GameSettings
	UI   UISettings
	Log  LogSettings
}

// GameSettings controls balances, wagers and the computer opponent
type GameSettings struct {
	StartingBalance   int
	InitialWager      int
	ComputerThreshold int
	ComputerName      string
	PlayerName        string
}

// UISettings controls how the game talks to the player
type UISettings struct {
	Mode          string // "line" or "tui"
	Color         bool
	PromptTimeout time.Duration // whole seconds in the file and environment
}

// LogSettings controls the diagnostic log
type LogSettings struct {
	Level string
	File  string
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Game: GameSettings{
			StartingBalance:   100,
			InitialWager:      10,
			ComputerThreshold: 18,
			ComputerName:      "Computer",
			PlayerName:        "Player",
		},
		UI: UISettings{
			Mode:  "line",
			Color: true,
		},
		Log: LogSettings{
			Level: "warn",
			File:  "twentyone.log",
		},
	}
}

// file mirrors the HCL layout. Every block and attribute is optional; unset
// values keep their defaults.
type file struct {
	Game *struct {
		StartingBalance   *int    `hcl:"starting_balance,optional"`
		InitialWager      *int    `hcl:"initial_wager,optional"`
		ComputerThreshold *int    `hcl:"computer_threshold,optional"`
		ComputerName      *string `hcl:"computer_name,optional"`
		PlayerName        *string `hcl:"player_name,optional"`
	} `hcl:"game,block"`
	UI *struct {
		Mode          *string `hcl:"mode,optional"`
		Color         *bool   `hcl:"color,optional"`
		PromptTimeout *int    `hcl:"prompt_timeout,optional"`
	} `hcl:"ui,block"`
	Log *struct {
		Level *string `hcl:"level,optional"`
		File  *string `hcl:"file,optional"`
	} `hcl:"log,block"`
}

// Load reads the HCL file at filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source over the defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := DefaultConfig()
	if g := raw.Game; g != nil {
		setInt(&cfg.Game.StartingBalance, g.StartingBalance)
		setInt(&cfg.Game.InitialWager, g.InitialWager)
		setInt(&cfg.Game.ComputerThreshold, g.ComputerThreshold)
		setString(&cfg.Game.ComputerName, g.ComputerName)
		setString(&cfg.Game.PlayerName, g.PlayerName)
	}
	if ui := raw.UI; ui != nil {
		setString(&cfg.UI.Mode, ui.Mode)
		if ui.Color != nil {
			cfg.UI.Color = *ui.Color
		}
		if ui.PromptTimeout != nil {
			cfg.UI.PromptTimeout = time.Duration(*ui.PromptTimeout) * time.Second
		}
	}
	if l := raw.Log; l != nil {
		setString(&cfg.Log.Level, l.Level)
		setString(&cfg.Log.File, l.File)
	}
	return cfg, nil
}

// LoadEnv loads the given .env files (missing ones are skipped) and applies
// TWENTYONE_* variables from the environment over cfg.
func LoadEnv(cfg *Config, files ...string) error {
	for _, name := range files {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}

	ints := map[string]*int{
		"STARTING_BALANCE":   &cfg.Game.StartingBalance,
		"INITIAL_WAGER":      &cfg.Game.InitialWager,
		"COMPUTER_THRESHOLD": &cfg.Game.ComputerThreshold,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}

	strs := map[string]*string{
		"COMPUTER_NAME": &cfg.Game.ComputerName,
		"PLAYER_NAME":   &cfg.Game.PlayerName,
		"UI_MODE":       &cfg.UI.Mode,
		"LOG_LEVEL":     &cfg.Log.Level,
		"LOG_FILE":      &cfg.Log.File,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("COLOR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCOLOR: %w", EnvPrefix, err)
		}
		cfg.UI.Color = b
	}
	// Whole seconds, like prompt_timeout in the file
	if v, ok := lookup("PROMPT_TIMEOUT"); ok {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPROMPT_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.UI.PromptTimeout = time.Duration(secs) * time.Second
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.StartingBalance <= 0 {
		return fmt.Errorf("starting balance must be positive")
	}
	if c.Game.InitialWager <= 0 {
		return fmt.Errorf("initial wager must be positive")
	}
	if c.Game.ComputerThreshold < 0 {
		return fmt.Errorf("computer threshold cannot be negative")
	}
	if strings.TrimSpace(c.Game.ComputerName) == "" {
		return fmt.Errorf("computer name is required")
	}
	if c.UI.PromptTimeout < 0 {
		return fmt.Errorf("prompt timeout cannot be negative")
	}

	switch c.UI.Mode {
	case "line", "tui":
	default:
		return fmt.Errorf("invalid ui mode: %s", c.UI.Mode)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to warn
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
