package fx

import "github.com/kungfusheep/laserctl/frame"

// RGBCurves applies three independent monotone LUTs over [0,255]->[0,255]
// to each point's color channels, interpolating linearly between control
// points and clamping outside the curve's domain. Endpoints at x=0 and
// x=255 are assumed present per the WorldSnapshot invariant (spec.md §3);
// an identity curve (straight line through (0,0) and (255,255) with no
// interior points) is a no-op, which is the property exercised by the
// rgb-curves identity test in spec.md §8.
func RGBCurves(f frame.Frame, p Params, _ EvalContext) frame.Frame {
	out := frame.Clone(f)
	for i, pt := range out {
		out[i].R = applyCurve(p.RedCurve, pt.R)
		out[i].G = applyCurve(p.GreenCurve, pt.G)
		out[i].B = applyCurve(p.BlueCurve, pt.B)
	}
	return out
}

// applyCurve maps a single 0-255-range channel value through curve c. An
// empty curve is treated as identity.
func applyCurve(c Curve, value uint16) uint16 {
	if len(c) == 0 {
		return value
	}
	x := float64(value)
	if x <= c[0].X {
		return clamp255(c[0].Y)
	}
	last := c[len(c)-1]
	if x >= last.X {
		return clamp255(last.Y)
	}
	for i := 0; i < len(c)-1; i++ {
		a, b := c[i], c[i+1]
		if x >= a.X && x <= b.X {
			span := b.X - a.X
			if span <= 0 {
				return clamp255(a.Y)
			}
			t := (x - a.X) / span
			return clamp255(a.Y + (b.Y-a.Y)*t)
		}
	}
	return value
}

func clamp255(y float64) uint16 {
	if y < 0 {
		return 0
	}
	if y > 255 {
		return 255
	}
	return uint16(y + 0.5)
}
