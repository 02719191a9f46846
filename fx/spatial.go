package fx

import (
	"math"

	"github.com/kungfusheep/laserctl/frame"
)

// CornerPin maps the canonical unit quad [-1,1]x[-1,1] onto the four
// destination corners via bilinear interpolation (the Open Question on
// corner-pin math is resolved in favor of bilinear — see SPEC_FULL.md),
// clamping the result to [-1,1] before denormalizing back to point space.
func CornerPin(f frame.Frame, p Params, _ EvalContext) frame.Frame {
	out := frame.Clone(f)
	for i, pt := range out {
		nx := frame.Normalize(pt.X)
		ny := frame.Normalize(pt.Y)
		// Map [-1,1] to [0,1] bilinear weights.
		u := (nx + 1) / 2
		v := (ny + 1) / 2

		top := lerp2(p.TL, p.TR, u)
		bot := lerp2(p.BL, p.BR, u)
		dst := lerp2(top, bot, v)

		out[i].X = frame.Denormalize(clamp1(dst.X))
		out[i].Y = frame.Denormalize(clamp1(dst.Y))
	}
	return out
}

func lerp2(a, b Point2D, t float64) Point2D {
	return Point2D{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func clamp1(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// Scale multiplies normalized coordinates by (sx, sy).
func Scale(f frame.Frame, p Params, ctx EvalContext) frame.Frame {
	sx := p.ScaleX.Resolve(ctx.Timing)
	sy := p.ScaleY.Resolve(ctx.Timing)
	out := frame.Clone(f)
	for i, pt := range out {
		nx := frame.Normalize(pt.X) * sx
		ny := frame.Normalize(pt.Y) * sy
		out[i].X = frame.Denormalize(clamp1(nx))
		out[i].Y = frame.Denormalize(clamp1(ny))
	}
	return out
}

// Offset translates normalized coordinates by (tx, ty).
func Offset(f frame.Frame, p Params, ctx EvalContext) frame.Frame {
	tx := p.OffsetX.Resolve(ctx.Timing)
	ty := p.OffsetY.Resolve(ctx.Timing)
	out := frame.Clone(f)
	for i, pt := range out {
		nx := frame.Normalize(pt.X) + tx
		ny := frame.Normalize(pt.Y) + ty
		out[i].X = frame.Denormalize(clamp1(nx))
		out[i].Y = frame.Denormalize(clamp1(ny))
	}
	return out
}

// Rotate rotates normalized coordinates by theta radians, counter-clockwise,
// about the origin.
func Rotate(f frame.Frame, p Params, ctx EvalContext) frame.Frame {
	theta := p.RotationRadians.Resolve(ctx.Timing)
	sinT, cosT := math.Sin(theta), math.Cos(theta)
	out := frame.Clone(f)
	for i, pt := range out {
		nx := frame.Normalize(pt.X)
		ny := frame.Normalize(pt.Y)
		rx := nx*cosT - ny*sinT
		ry := nx*sinT + ny*cosT
		out[i].X = frame.Denormalize(clamp1(rx))
		out[i].Y = frame.Denormalize(clamp1(ry))
	}
	return out
}

// BlockedRegions blanks (not drops) any point inside any configured
// rectangle or circle region, in normalized space.
func BlockedRegions(f frame.Frame, p Params, _ EvalContext) frame.Frame {
	if len(p.Regions) == 0 {
		return f
	}
	out := frame.Clone(f)
	for i, pt := range out {
		nx := frame.Normalize(pt.X)
		ny := frame.Normalize(pt.Y)
		for _, r := range p.Regions {
			if pointInRegion(nx, ny, r) {
				out[i] = frame.Blank(out[i])
				break
			}
		}
	}
	return out
}

func pointInRegion(x, y float64, r Region) bool {
	dx := x - r.Center.X
	dy := y - r.Center.Y
	switch r.Shape {
	case RegionCircle:
		return dx*dx+dy*dy <= r.Radius*r.Radius
	default: // RegionRect
		return math.Abs(dx) <= r.HalfW && math.Abs(dy) <= r.HalfH
	}
}

// Viewport clips and remaps a sub-rectangle of normalized space to the
// full [-1,1] range; points outside the viewport are removed entirely
// (unlike blocked-regions, which blanks in place).
func Viewport(f frame.Frame, p Params, _ EvalContext) frame.Frame {
	minX, maxX := p.ViewMin.X, p.ViewMax.X
	minY, maxY := p.ViewMin.Y, p.ViewMax.Y
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 || spanY == 0 {
		return frame.Empty()
	}

	out := make(frame.Frame, 0, len(f))
	for _, pt := range f {
		nx := frame.Normalize(pt.X)
		ny := frame.Normalize(pt.Y)
		if nx < minX || nx > maxX || ny < minY || ny > maxY {
			continue
		}
		rx := ((nx-minX)/spanX)*2 - 1
		ry := ((ny-minY)/spanY)*2 - 1
		np := pt
		np.X = frame.Denormalize(clamp1(rx))
		np.Y = frame.Denormalize(clamp1(ry))
		out = append(out, np)
	}
	return out
}
