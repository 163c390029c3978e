package submarine

import (
	"flag"
	"strconv"
)

const (
	minHullWidth  = 24
	minHullHeight = 10
)

// Config controls the demo world the viewer and tools run.
type Config struct {
	HullWidth  int
	HullHeight int

	// Rock world size and the hull's starting rock cell.
	RockWidth  int
	RockHeight int
	RockX      int
	RockY      int

	// RockImage, when set, is a PNG or BMP bitmap at twice the rock size
	// that replaces the generated floor.
	RockImage string

	// Boulders scattered on the sea floor by Reset.
	Boulders int
	Seed     int64

	Settings UpdateSettings
}

// DefaultConfig returns the standard demo configuration.
func DefaultConfig() Config {
	return Config{
		HullWidth:  32,
		HullHeight: 16,
		RockWidth:  24,
		RockHeight: 16,
		RockX:      4,
		RockY:      4,
		Boulders:   6,
		Seed:       1337,
		Settings:   DefaultUpdateSettings(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["hull_w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= minHullWidth {
			c.HullWidth = parsed
		}
	}
	if v, ok := cfg["hull_h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= minHullHeight {
			c.HullHeight = parsed
		}
	}
	if v, ok := cfg["rock_w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.RockWidth = parsed
		}
	}
	if v, ok := cfg["rock_h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.RockHeight = parsed
		}
	}
	if v, ok := cfg["rock_x"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.RockX = parsed
		}
	}
	if v, ok := cfg["rock_y"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.RockY = parsed
		}
	}
	if v, ok := cfg["rock_image"]; ok {
		c.RockImage = v
	}
	if v, ok := cfg["boulders"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Boulders = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	c.Settings = SettingsFromMap(cfg)
	return c
}

// Bind attaches the configuration to the provided FlagSet. Update settings
// stay at their current values; tools toggle them through SettingsFromMap.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.HullWidth, "hull-w", c.HullWidth, "demo hull width in cells")
	fs.IntVar(&c.HullHeight, "hull-h", c.HullHeight, "demo hull height in cells")
	fs.IntVar(&c.RockWidth, "rock-w", c.RockWidth, "rock world width in rock cells")
	fs.IntVar(&c.RockHeight, "rock-h", c.RockHeight, "rock world height in rock cells")
	fs.IntVar(&c.RockX, "rock-x", c.RockX, "starting rock column of the hull")
	fs.IntVar(&c.RockY, "rock-y", c.RockY, "starting rock row of the hull")
	fs.StringVar(&c.RockImage, "rock-image", c.RockImage, "PNG or BMP rock bitmap, two pixels per rock cell")
	fs.IntVar(&c.Boulders, "boulders", c.Boulders, "boulders scattered on the sea floor")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for boulder placement")
}

// normalize raises a too-small hull to the minimum the demo layout needs.
func (c Config) normalize() Config {
	c.HullWidth = max(c.HullWidth, minHullWidth)
	c.HullHeight = max(c.HullHeight, minHullHeight)
	c.RockWidth = max(c.RockWidth, 1)
	c.RockHeight = max(c.RockHeight, 1)
	return c
}
