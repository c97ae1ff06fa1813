// Package config holds the glguard command configuration. Files are TOML and
// are decoded over Default, so a file only needs the keys it changes.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Context backends.
const (
	BackendWindow   = "window"
	BackendHeadless = "headless"
)

type Config struct {
	Context ContextConfig `toml:"context"`
	Smoke   SmokeConfig   `toml:"smoke"`
	Log     LogConfig     `toml:"log"`
}

// ContextConfig describes the GL context the smoke test runs in.
type ContextConfig struct {
	Backend  string `toml:"backend"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	BitDepth int    `toml:"bit_depth"`
	Visible  bool   `toml:"visible"`
}

type SmokeConfig struct {
	Frames     int        `toml:"frames"`
	ClearColor [4]float32 `toml:"clear_color"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Context: ContextConfig{
			Backend:  BackendWindow,
			Width:    640,
			Height:   360,
			BitDepth: 8,
			Visible:  false,
		},
		Smoke: SmokeConfig{
			Frames:     60,
			ClearColor: [4]float32{0.1, 0.1, 0.12, 1},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load decodes the file at path over Default and validates the result. Keys
// that do not belong to Config are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Save writes cfg to path, replacing any existing file.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Context.Backend {
	case BackendWindow, BackendHeadless:
	default:
		errs = append(errs, fmt.Errorf("context.backend: unknown backend %q", c.Context.Backend))
	}
	if c.Context.Width <= 0 || c.Context.Height <= 0 {
		errs = append(errs, fmt.Errorf("context: size %dx%d must be positive", c.Context.Width, c.Context.Height))
	}
	if c.Context.BitDepth != 8 && c.Context.BitDepth != 10 && c.Context.BitDepth != 16 {
		errs = append(errs, fmt.Errorf("context.bit_depth: %d is not 8, 10 or 16", c.Context.BitDepth))
	}
	if c.Smoke.Frames < 1 {
		errs = append(errs, fmt.Errorf("smoke.frames: %d must be at least 1", c.Smoke.Frames))
	}
	for i, v := range c.Smoke.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("smoke.clear_color[%d]: %g is outside [0, 1]", i, v))
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// NewLogger builds a logger writing to w with the configured level and
// format. An invalid level falls back to info.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
