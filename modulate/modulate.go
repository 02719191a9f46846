// Package modulate evaluates beat/time-synced modulator configs into scalar
// parameter values (spec.md §4.F). Grounded in spirit on
// scheduler/effects.go's CreatePulseEffect, which steps a brightness value
// through a fixed number of phases across a duration — here generalized
// into a continuous, deterministic waveform function of beat phase instead
// of a discrete command sequence, since the core must never block on
// scheduled sleeps (spec.md §5).
package modulate

import "math"

// Type selects the waveform shape.
type Type string

const (
	Sine         Type = "sine"
	Triangle     Type = "triangle"
	Saw          Type = "saw"
	Square       Type = "square"
	KeyframeType Type = "keyframe"
	Constant     Type = "constant"
)

// Keyframe is one point of a keyframe modulator: beat offset within one
// period, and the value at that offset. Keyframes are mutually exclusive
// with waveform-type modulators on the same parameter (spec.md §4.F).
type Keyframe struct {
	Beat  float64
	Value float64
}

// Config is a ModulatorConfig: {active, type, min, max, period_beats,
// phase, value, keyframes}.
type Config struct {
	Active      bool
	Type        Type
	Min, Max    float64
	PeriodBeats float64
	Phase       float64
	Value       float64 // frozen fallback value when inactive
	Keyframes   []Keyframe
}

// EvalContext carries the per-frame timing state modulators read.
type EvalContext struct {
	AccumulatedBeats float64
	PhaseOffset      float64
}

// Evaluate computes c's effective scalar value for this frame.
func (c *Config) Evaluate(ctx EvalContext) float64 {
	if !c.Active {
		return c.Value
	}
	if len(c.Keyframes) > 0 {
		return evaluateKeyframes(c, ctx)
	}

	period := c.PeriodBeats
	if period <= 0 {
		period = 1
	}
	phaseTotal := ctx.AccumulatedBeats + ctx.PhaseOffset + c.Phase
	frac := math.Mod(phaseTotal/period, 1)
	if frac < 0 {
		frac += 1
	}
	w := waveform(c.Type, frac)
	return c.Min + (c.Max-c.Min)*w
}

// waveform returns w in [0,1] for the given type at fractional phase t in
// [0,1).
func waveform(t Type, frac float64) float64 {
	switch t {
	case Triangle:
		if frac < 0.5 {
			return frac * 2
		}
		return 2 - frac*2
	case Saw:
		return frac
	case Square:
		if frac < 0.5 {
			return 0
		}
		return 1
	case Constant:
		return 0
	case Sine:
		fallthrough
	default:
		return (1 + math.Sin(2*math.Pi*frac-math.Pi/2)) / 2
	}
}

// evaluateKeyframes linearly interpolates between the two keyframes
// bracketing the current beat-within-period, wrapping at the period
// boundary. Keyframes are assumed sorted by Beat ascending.
func evaluateKeyframes(c *Config, ctx EvalContext) float64 {
	period := c.PeriodBeats
	if period <= 0 {
		period = 1
	}
	phaseTotal := ctx.AccumulatedBeats + ctx.PhaseOffset + c.Phase
	beat := math.Mod(phaseTotal, period)
	if beat < 0 {
		beat += period
	}

	kfs := c.Keyframes
	if len(kfs) == 1 {
		return kfs[0].Value
	}

	for i := 0; i < len(kfs)-1; i++ {
		a, b := kfs[i], kfs[i+1]
		if beat >= a.Beat && beat <= b.Beat {
			span := b.Beat - a.Beat
			if span <= 0 {
				return a.Value
			}
			t := (beat - a.Beat) / span
			return a.Value + (b.Value-a.Value)*t
		}
	}

	// Wrap from last keyframe back to the first across the period boundary.
	last, first := kfs[len(kfs)-1], kfs[0]
	span := (period - last.Beat) + first.Beat
	if span <= 0 {
		return last.Value
	}
	var t float64
	if beat >= last.Beat {
		t = (beat - last.Beat) / span
	} else {
		t = (period - last.Beat + beat) / span
	}
	return last.Value + (first.Value-last.Value)*t
}

// AdvanceBeats advances accumulated beats by one frame's worth of elapsed
// time at the given BPM (spec.md §4.F: Δbeats = Δms * bpm / 60000).
func AdvanceBeats(accumulated float64, deltaMs int64, bpm float64) float64 {
	return accumulated + float64(deltaMs)*bpm/60000.0
}

// EasePhaseOffset asymptotes phaseOffset 10% of the way toward target per
// call, the fixed per-frame easing spec.md §4.F asks for (used by tap-tempo
// resync).
func EasePhaseOffset(current, target float64) float64 {
	const easeFactor = 0.10
	return current + (target-current)*easeFactor
}
