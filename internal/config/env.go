package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings read from the environment.
type Env struct {
	// Database is the path of the SQLite game journal.
	Database string `env:"AZUL_DB" envDefault:"azul.db"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"AZUL_LOG_LEVEL" envDefault:"info"`

	// GameConfig is an optional CUE game file used by "new".
	GameConfig string `env:"AZUL_CONFIG"`
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Level converts LogLevel to a slog.Level.
func (e Env) Level() (slog.Level, error) {
	switch strings.ToLower(e.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid AZUL_LOG_LEVEL %q", e.LogLevel)
	}
}
