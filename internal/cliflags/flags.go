// Package cliflags holds the loop flags shared by the example programs.
package cliflags

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/phanxgames/gameloop"
)

// Flags are the loop settings a program accepts on its command line.
type Flags struct {
	ConfigPath         string
	UpdatesPerSecond   int
	MaxFrameTime       time.Duration
	MaxUpdatesPerFrame int
	LogLevel           string
}

// AddFlags registers the loop flags on fs.
func (f *Flags) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "YAML loop config; flags given explicitly override it")
	fs.IntVar(&f.UpdatesPerSecond, "ups", gameloop.DefaultUpdatesPerSecond, "fixed updates per second")
	fs.DurationVar(&f.MaxFrameTime, "max-frame-time", gameloop.DefaultMaxFrameTime, "clamp on the elapsed time one frame may simulate")
	fs.IntVar(&f.MaxUpdatesPerFrame, "max-updates", 0, "cap on updates per frame (0 = no cap)")
	fs.StringVar(&f.LogLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

// Config builds the loop config: the file named by --config (if any), then
// every flag the user set explicitly.
func (f *Flags) Config(fs *pflag.FlagSet) (gameloop.Config, error) {
	cfg := gameloop.DefaultConfig()
	if f.ConfigPath != "" {
		loaded, err := gameloop.LoadConfigFile(f.ConfigPath)
		if err != nil {
			return gameloop.Config{}, err
		}
		cfg = loaded
	}
	if f.ConfigPath == "" || fs.Changed("ups") {
		cfg.UpdatesPerSecond = f.UpdatesPerSecond
	}
	if f.ConfigPath == "" || fs.Changed("max-frame-time") {
		cfg.MaxFrameTime = f.MaxFrameTime
	}
	if f.ConfigPath == "" || fs.Changed("max-updates") {
		cfg.MaxUpdatesPerFrame = f.MaxUpdatesPerFrame
	}
	if err := cfg.Validate(); err != nil {
		return gameloop.Config{}, err
	}
	return cfg, nil
}

// Logger returns a text logger writing to w at the configured level.
func (f *Flags) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(f.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", f.LogLevel)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
