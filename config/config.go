// Package config loads the runtime settings shared by the command-line programs
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

var (
	ErrTickRate   = errors.New("tick rate out of range")
	ErrMaxCatchUp = errors.New("max catch-up out of range")
	ErrVolume     = errors.New("volume out of range")
	ErrScale      = errors.New("view scale out of range")
	ErrLogLevel   = errors.New("unknown log level")
	ErrLevelIndex = errors.New("level index out of range")
	ErrUnknownKey = errors.New("unknown config key")
)

// Limits
const (
	MaxTickRate = 240
	MaxCatchUp  = 30
	MaxScale    = 8
)

// Config is the top-level settings document
type Config struct {
	Physics Physics `toml:"physics"`
	Replay  Replay  `toml:"replay"`
	Audio   Audio   `toml:"audio"`
	View    View    `toml:"view"`
	Log     Log     `toml:"log"`
}

// Physics controls the frame driver
type Physics struct {
	TickRate   int `toml:"tick_rate"`
	MaxCatchUp int `toml:"max_catch_up"`
}

// Replay selects what to fly
// Level is a builtin name or a path to a .toml description or a decoded level set;
// Demo optionally names a demo byte file flown instead of live input
type Replay struct {
	Level      string `toml:"level"`
	Demo       string `toml:"demo"`
	LevelIndex int    `toml:"level_index"`
}

// Audio controls event sounds
type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// View controls presentation scale
type View struct {
	Scale int `toml:"scale"`
}

// Log controls the process logger; an empty File keeps stderr
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Physics: Physics{TickRate: 30, MaxCatchUp: 3},
		Replay:  Replay{Level: "runway"},
		Audio:   Audio{Enabled: true, Volume: 0.8},
		View:    View{Scale: 2},
		Log:     Log{Level: "info"},
	}
}

// Load reads path over the defaults
// A missing or invalid file returns the defaults alongside the error so callers may continue
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.decode(string(data)); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes text over the defaults and validates the result
func Parse(text string) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(text); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every field is usable
func (c *Config) Validate() error {
	if c.Physics.TickRate < 1 || c.Physics.TickRate > MaxTickRate {
		return fmt.Errorf("%w: %d", ErrTickRate, c.Physics.TickRate)
	}
	if c.Physics.MaxCatchUp < 1 || c.Physics.MaxCatchUp > MaxCatchUp {
		return fmt.Errorf("%w: %d", ErrMaxCatchUp, c.Physics.MaxCatchUp)
	}
	if !(c.Audio.Volume >= 0 && c.Audio.Volume <= 1) {
		return fmt.Errorf("%w: %v", ErrVolume, c.Audio.Volume)
	}
	if c.View.Scale < 1 || c.View.Scale > MaxScale {
		return fmt.Errorf("%w: %d", ErrScale, c.View.Scale)
	}
	if c.Replay.LevelIndex < 0 {
		return fmt.Errorf("%w: %d", ErrLevelIndex, c.Replay.LevelIndex)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrLogLevel, c.Log.Level)
	}
	return nil
}

// Encode writes c as TOML
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", err
	}
	return b.String(), nil
}
