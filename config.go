package gameloop

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultUpdatesPerSecond is the simulation rate used when none is configured.
	DefaultUpdatesPerSecond = 60
	// DefaultMaxFrameTime is the per-frame clamp used when none is configured.
	DefaultMaxFrameTime = 100 * time.Millisecond
)

var (
	// ErrInvalidUpdateRate is returned for an updates-per-second value <= 0.
	ErrInvalidUpdateRate = errors.New("gameloop: updates per second must be positive")
	// ErrInvalidMaxFrameTime is returned for a maximum frame time <= 0.
	ErrInvalidMaxFrameTime = errors.New("gameloop: max frame time must be positive")
	// ErrInvalidUpdateCap is returned for a negative per-frame update cap.
	ErrInvalidUpdateCap = errors.New("gameloop: max updates per frame must not be negative")
)

// Config configures a Loop.
type Config struct {
	// UpdatesPerSecond sets the fixed step to 1s / UpdatesPerSecond.
	UpdatesPerSecond int `yaml:"updates_per_second"`
	// MaxFrameTime clamps how much elapsed time a single frame may feed into
	// the accumulator. Time beyond it is discarded.
	MaxFrameTime time.Duration `yaml:"max_frame_time"`
	// MaxUpdatesPerFrame caps update calls per frame. Zero disables the cap.
	MaxUpdatesPerFrame int `yaml:"max_updates_per_frame"`

	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger `yaml:"-"`
	// TimeSource feeds the loop's Clock. Nil uses SystemTime.
	TimeSource TimeSource `yaml:"-"`
}

// DefaultConfig returns a Config running at DefaultUpdatesPerSecond with
// DefaultMaxFrameTime and no update cap.
func DefaultConfig() Config {
	return Config{
		UpdatesPerSecond: DefaultUpdatesPerSecond,
		MaxFrameTime:     DefaultMaxFrameTime,
	}
}

// Validate checks the numeric settings.
func (c Config) Validate() error {
	if c.UpdatesPerSecond <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidUpdateRate, c.UpdatesPerSecond)
	}
	if c.MaxFrameTime <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidMaxFrameTime, c.MaxFrameTime)
	}
	if c.MaxUpdatesPerFrame < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidUpdateCap, c.MaxUpdatesPerFrame)
	}
	return nil
}

// LoadConfig parses YAML over DefaultConfig and validates the result.
// Durations use Go syntax, for example:
//
//	updates_per_second: 120
//	max_frame_time: 250ms
//	max_updates_per_frame: 8
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse loop config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse loop config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read loop config: %w", err)
	}
	return LoadConfig(data)
}

func stepFor(updatesPerSecond int) time.Duration {
	return time.Second / time.Duration(updatesPerSecond)
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
