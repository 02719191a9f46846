package fx

import (
	"math"

	"github.com/kungfusheep/laserctl/frame"
)

// HueShift rotates each point's RGB color around the HSV hue wheel by
// HueDegrees degrees. Directly grounded on mcp/entertainment.go's
// hsvToRGB/rainbow-effect code, adapted from a wall-clock-driven ticker
// loop into a pure function of an explicit EvalContext so the same
// transform is reusable inside the deterministic chain engine.
func HueShift(f frame.Frame, p Params, ctx EvalContext) frame.Frame {
	deg := p.HueDegrees.Resolve(ctx.Timing)
	if deg == 0 {
		return f
	}
	out := frame.Clone(f)
	for i, pt := range out {
		if frame.Blanked(pt) {
			continue
		}
		h, s, v := rgbToHSV(pt.R, pt.G, pt.B)
		h = math.Mod(h+deg, 360)
		if h < 0 {
			h += 360
		}
		r, g, b := hsvToRGB(h, s, v)
		out[i].R, out[i].G, out[i].B = r, g, b
	}
	return out
}

// hsvToRGB converts HSV (h in [0,360), s,v in [0,1]) to 0-255-range RGB,
// the same formula as mcp/entertainment.go's hsvToRGB but returning
// integral channel values instead of floats.
func hsvToRGB(h, s, v float64) (uint16, uint16, uint16) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return uint16((r + m) * 255), uint16((g + m) * 255), uint16((b + m) * 255)
}

// rgbToHSV is hsvToRGB's inverse, used to find the current hue before
// rotating it.
func rgbToHSV(r, g, b uint16) (h, s, v float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	v = max
	delta := max - min
	if max == 0 {
		return 0, 0, v
	}
	s = delta / max
	if delta == 0 {
		return 0, s, v
	}
	switch max {
	case rf:
		h = 60 * math.Mod((gf-bf)/delta, 6)
	case gf:
		h = 60 * ((bf-rf)/delta + 2)
	default:
		h = 60 * ((rf-gf)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}
