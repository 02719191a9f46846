// Package frame defines the point and frame types emitted by the effect
// pipeline and consumed by the IDN wire codec.
package frame

// Point is a single laser point: signed full-range XY plus a color tuple.
// Color channels are always authored in 0-255 space regardless of the
// negotiated wire bit depth — the same convention the teacher's
// RGBToUint16/FloatRGBToUint16 helpers use (scale-on-encode, not
// scale-on-author). idn widens to 16-bit on the wire by the same
// *257 factor when a projector's OutputConfig asks for 16-bit color.
type Point struct {
	X, Y    int16
	R, G, B uint16
}

// Blanked reports whether p carries no visible color.
func Blanked(p Point) bool {
	return p.R == 0 && p.G == 0 && p.B == 0
}

// Blank returns a copy of p with its color zeroed and coordinates preserved.
func Blank(p Point) Point {
	p.R, p.G, p.B = 0, 0, 0
	return p
}

// Frame is an ordered, finite sequence of points rendered within one tick.
// An empty Frame is valid and means "no output this tick".
type Frame []Point

// Empty returns a zero-length frame. A named constructor mirrors the
// source's empty_frame() operation and keeps call sites self-documenting.
func Empty() Frame {
	return Frame{}
}

// Clone returns a deep copy of f so that transformers can mutate their
// output without aliasing the caller's buffer.
func Clone(f Frame) Frame {
	if len(f) == 0 {
		return Empty()
	}
	out := make(Frame, len(f))
	copy(out, f)
	return out
}

// Concat concatenates frames in order, matching the chosen multi-preset
// composition policy (see SPEC_FULL.md open-question decision #1): point
// vectors are summed, not interleaved or truncated to the last preset.
func Concat(frames ...Frame) Frame {
	n := 0
	for _, f := range frames {
		n += len(f)
	}
	if n == 0 {
		return Empty()
	}
	out := make(Frame, 0, n)
	for _, f := range frames {
		out = append(out, f...)
	}
	return out
}

// Normalize converts a signed full-range coordinate to [-1, 1].
func Normalize(coord int16) float64 {
	return float64(coord) / 32767.0
}

// Denormalize converts a [-1, 1] coordinate back to the signed full-range
// representation, clamping out-of-range input.
func Denormalize(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(v * 32767.0)
}
