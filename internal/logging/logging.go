// Package logging builds the zap loggers used across the application.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugLogPath is where --debug writes when no log file is configured.
// Debug output goes to a file so it never interleaves with CLI or TUI output.
const DebugLogPath = "agenda-debug.log"

// ParseLevel converts a config level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	return l, nil
}

// New returns a console logger at the given level. When file is empty the
// logger writes to stderr, otherwise it appends JSON lines to file.
func New(level, file string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if file == "" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.OutputPaths = []string{"stderr"}
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{file}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// ForCLI builds the logger for an interactive command. Debug mode logs
// everything to file (DebugLogPath when none is set); otherwise only
// warnings and errors reach stderr, unless level asks for less.
func ForCLI(level, file string, debug bool) (*zap.Logger, error) {
	if debug {
		if file == "" {
			file = DebugLogPath
		}
		return New("debug", file)
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if lvl < zapcore.WarnLevel && file == "" {
		level = "warn"
	}
	return New(level, file)
}
