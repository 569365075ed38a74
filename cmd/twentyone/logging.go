package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger writes diagnostics to path so they stay out of the game
// transcript. An empty path discards them.
func setupLogger(path string, level log.Level) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
	closer := func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}
	return logger, closer, nil
}

func levelFor(debug bool, fallback log.Level) log.Level {
	if debug {
		return log.DebugLevel
	}
	return fallback
}
