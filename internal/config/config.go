// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alexiusacademia/rcmn/internal/units"
	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvUnits    = "RCMN_UNITS"
	EnvLogLevel = "RCMN_LOG_LEVEL"
	EnvAddr     = "RCMN_ADDR"
	EnvRate     = "RCMN_RATE"
	EnvBurst    = "RCMN_BURST"
	EnvStrict   = "RCMN_STRICT"
)

type Config struct {
	Units    units.System
	LogLevel slog.Level
	Addr     string  // HTTP listen address
	Rate     float64 // requests per second per client
	Burst    int
	Strict   bool // non-convergence is an error
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Units:    units.US,
		LogLevel: slog.LevelInfo,
		Addr:     ":8080",
		Rate:     5,
		Burst:    10,
	}
}

// Load reads the given env files (".env" when none are named) and then the
// process environment, which takes precedence. A missing .env is not an error.
func Load(files ...string) (Config, error) {
	fileEnv, err := godotenv.Read(files...)
	if err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read env file: %w", err)
		}
		fileEnv = map[string]string{}
	}
	return FromEnv(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileEnv[key]
	})
}

// FromEnv builds a Config from a lookup function, starting from Default.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv(EnvUnits); v != "" {
		sys, err := units.ParseSystem(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvUnits, err)
		}
		cfg.Units = sys
	}
	if v := getenv(EnvLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	if v := getenv(EnvRate); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 {
			return cfg, fmt.Errorf("%s: invalid rate %q", EnvRate, v)
		}
		cfg.Rate = r
	}
	if v := getenv(EnvBurst); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil || b <= 0 {
			return cfg, fmt.Errorf("%s: invalid burst %q", EnvBurst, v)
		}
		cfg.Burst = b
	}
	if v := getenv(EnvStrict); v != "" {
		s, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvStrict, err)
		}
		cfg.Strict = s
	}
	return cfg, cfg.Validate()
}

// Validate checks the server settings, whichever source set them.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address is empty")
	}
	if !(c.Rate > 0) {
		return fmt.Errorf("rate must be positive, got %g", c.Rate)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("burst must be positive, got %d", c.Burst)
	}
	return nil
}
