package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("config: invalid value")

// Config holds the tunables of a simulation run. It is passed explicitly to
// the world; nothing here is process-global.
type Config struct {
	// TickDelay is the nominal milliseconds between ticks
	TickDelay int64 `json:"tick_delay_ms"`
	// MaxFrameMillis caps how much wall time one loop update may simulate
	MaxFrameMillis int64 `json:"max_frame_ms"`

	// TicksPerFrame is how many ticks each looping animation frame is shown
	TicksPerFrame int `json:"ticks_per_frame"`
	// BeenHitTicks is how long a hit interrupts a unit
	BeenHitTicks int `json:"been_hit_ticks"`
	// DyingTicks is how long the dying animation plays before the corpse is placed
	DyingTicks int `json:"dying_ticks"`
	// PickUpTicks is how long picking up an item takes
	PickUpTicks int `json:"pick_up_ticks"`

	// AIThinkTicks is how often AI controllers look for targets
	AIThinkTicks int `json:"ai_think_ticks"`
	// FogOfWar enables per-team visibility tracking
	FogOfWar bool `json:"fog_of_war"`

	// Viewer only
	TilePixels   int `json:"tile_pixels"`
	ScreenWidth  int `json:"screen_width"`
	ScreenHeight int `json:"screen_height"`
}

// Default returns the stock configuration (50ms ticks)
func Default() Config {
	return Config{
		TickDelay:      50,
		MaxFrameMillis: 250,
		TicksPerFrame:  2,
		BeenHitTicks:   3,
		DyingTicks:     10,
		PickUpTicks:    6,
		AIThinkTicks:   10,
		FogOfWar:       true,
		TilePixels:     32,
		ScreenWidth:    1280,
		ScreenHeight:   720,
	}
}

// Validate checks every field is usable
func (c Config) Validate() error {
	switch {
	case c.TickDelay <= 0:
		return fmt.Errorf("%w: tick_delay_ms must be > 0, got %d", ErrInvalid, c.TickDelay)
	case c.MaxFrameMillis < c.TickDelay:
		return fmt.Errorf("%w: max_frame_ms (%d) must be >= tick_delay_ms (%d)", ErrInvalid, c.MaxFrameMillis, c.TickDelay)
	case c.TicksPerFrame <= 0:
		return fmt.Errorf("%w: ticks_per_frame must be > 0", ErrInvalid)
	case c.BeenHitTicks < 0 || c.DyingTicks <= 0 || c.PickUpTicks <= 0:
		return fmt.Errorf("%w: animation lengths must be positive", ErrInvalid)
	case c.AIThinkTicks <= 0:
		return fmt.Errorf("%w: ai_think_ticks must be > 0", ErrInvalid)
	case c.TilePixels <= 0:
		return fmt.Errorf("%w: tile_pixels must be > 0", ErrInvalid)
	}
	return nil
}

// TicksPerSecond is the tick rate implied by TickDelay
func (c Config) TicksPerSecond() int {
	return int(1000 / c.TickDelay)
}

// Load reads a JSON config file. Fields missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
