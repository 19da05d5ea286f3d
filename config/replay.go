package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/open-roads/input"
	"github.com/lixenwraith/open-roads/level"
)

// OpenLevel loads the level Replay names
// A ".toml" path is a text description, a ".lvl" path one decoded level image,
// any other existing path a decoded level set indexed by LevelIndex;
// otherwise Level names a builtin
func (r Replay) OpenLevel() (*level.Level, error) {
	ext := strings.ToLower(filepath.Ext(r.Level))
	if ext == ".toml" {
		return level.LoadDescription(r.Level)
	}

	data, err := os.ReadFile(r.Level)
	if err != nil {
		if os.IsNotExist(err) && ext == "" {
			return level.Builtin(r.Level)
		}
		return nil, fmt.Errorf("read level %s: %w", r.Level, err)
	}

	if ext == ".lvl" {
		return level.Decode(strings.TrimSuffix(filepath.Base(r.Level), ext), data)
	}
	levels, err := level.DecodeSet(data)
	if err != nil {
		return nil, fmt.Errorf("level set %s: %w", r.Level, err)
	}
	if r.LevelIndex >= len(levels) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLevelIndex, r.LevelIndex, len(levels))
	}
	return levels[r.LevelIndex], nil
}

// OpenDemo loads the demo tape Replay names; nil without error when none is set
func (r Replay) OpenDemo() (*input.DemoController, error) {
	if r.Demo == "" {
		return nil, nil
	}
	data, err := os.ReadFile(r.Demo)
	if err != nil {
		return nil, fmt.Errorf("read demo %s: %w", r.Demo, err)
	}
	return input.NewDemoController(data), nil
}
