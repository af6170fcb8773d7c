package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	WindowWidth  = 1280
	WindowHeight = 800
	WindowTitle  = "Constellation - Esc/Q: Quit, F3: Debug overlay"

	FrameRingSize = 120

	// Terminal cell size in virtual pixels
	CellWidth  = 8
	CellHeight = 16

	// Constellation parameters
	ParticleCount      = 80
	LinkThreshold      = 150
	RepulsionStrength  = 0.02
	MaxSpeed           = 0.2
	MinRadius          = 5.0
	RadiusSpread       = 1.5
	MinOpacity         = 0.1
	OpacitySpread      = 0.2
	MaxLinkAlpha       = 0.1
	LinkWidth          = 0.5
	ParticleTone       = 150

	DefaultTerminalGain = 4.0
)

// Page background of the portfolio (#fdfdfc).
const (
	BackgroundR = 0xfd
	BackgroundG = 0xfd
	BackgroundB = 0xfc
)

const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Settings is the runtime configuration read from the environment.
type Settings struct {
	Backend      string
	Width        int
	Height       int
	Seed         int64
	Debug        bool
	TerminalGain float64

	Environment string
	LogLevel    string
	LogFile     string
}

// Load reads an optional .env file from the working directory, then the
// CONSTELLATION_* environment variables.
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds Settings from the process environment only.
func FromEnv() (Settings, error) {
	s := Settings{
		Backend:      strings.ToLower(envOr("CONSTELLATION_BACKEND", BackendWindow)),
		Width:        WindowWidth,
		Height:       WindowHeight,
		TerminalGain: DefaultTerminalGain,
		Environment:  envOr("CONSTELLATION_ENV", "development"),
		LogLevel:     envOr("CONSTELLATION_LOG_LEVEL", "info"),
		LogFile:      os.Getenv("CONSTELLATION_LOG_FILE"),
	}

	switch s.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return Settings{}, fmt.Errorf("CONSTELLATION_BACKEND=%q: %w", s.Backend, ErrUnknownBackend)
	}

	var err error
	if s.Width, err = envInt("CONSTELLATION_WIDTH", s.Width); err != nil {
		return Settings{}, err
	}
	if s.Height, err = envInt("CONSTELLATION_HEIGHT", s.Height); err != nil {
		return Settings{}, err
	}
	if v, ok := os.LookupEnv("CONSTELLATION_SEED"); ok && v != "" {
		if s.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Settings{}, fmt.Errorf("CONSTELLATION_SEED: %w", err)
		}
	}
	if v, ok := os.LookupEnv("CONSTELLATION_DEBUG"); ok && v != "" {
		if s.Debug, err = strconv.ParseBool(v); err != nil {
			return Settings{}, fmt.Errorf("CONSTELLATION_DEBUG: %w", err)
		}
	}
	if v, ok := os.LookupEnv("CONSTELLATION_TERMINAL_GAIN"); ok && v != "" {
		if s.TerminalGain, err = strconv.ParseFloat(v, 64); err != nil {
			return Settings{}, fmt.Errorf("CONSTELLATION_TERMINAL_GAIN: %w", err)
		}
	}
	return s, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}
