// Package outputcfg describes the per-engine color/XY bit-depth negotiated
// with a projector, mirroring the teacher's small, validated-at-construction
// config structs (e.g. hue.OutputConfig has no Go analogue in the teacher
// repo, but the validate-then-store pattern is the same one client.NewClient
// uses for bridgeIP/username).
package outputcfg

import (
	"fmt"

	"github.com/kungfusheep/laserctl/lerr"
)

// Config is immutable once constructed.
type Config struct {
	colorBits int
	xyBits    int
}

// Default matches spec.md §3: (8-bit color, 16-bit XY).
func Default() Config {
	cfg, _ := New(8, 16)
	return cfg
}

// New validates and constructs a Config. Only 8 or 16 bit widths are legal
// for either axis; anything else is an InvalidConfig error.
func New(colorBits, xyBits int) (Config, error) {
	if colorBits != 8 && colorBits != 16 {
		return Config{}, fmt.Errorf("outputcfg: invalid color bit depth %d: %w", colorBits, lerr.ErrInvalidConfig)
	}
	if xyBits != 8 && xyBits != 16 {
		return Config{}, fmt.Errorf("outputcfg: invalid xy bit depth %d: %w", xyBits, lerr.ErrInvalidConfig)
	}
	return Config{colorBits: colorBits, xyBits: xyBits}, nil
}

// ColorBits returns the negotiated color channel width (8 or 16).
func (c Config) ColorBits() int { return c.colorBits }

// XYBits returns the negotiated coordinate channel width (8 or 16).
func (c Config) XYBits() int { return c.xyBits }

// Name returns a canonical human-readable description.
func (c Config) Name() string {
	return fmt.Sprintf("%d-bit RGB, %d-bit XY", c.colorBits, c.xyBits)
}

// ColorMax is the maximum representable value for one color channel at this
// config's color bit depth.
func (c Config) ColorMax() uint16 {
	if c.colorBits == 16 {
		return 0xFFFF
	}
	return 0xFF
}

// XYMax is the maximum representable magnitude for one coordinate axis at
// this config's XY bit depth.
func (c Config) XYMax() uint16 {
	if c.xyBits == 16 {
		return 0xFFFF
	}
	return 0xFF
}
