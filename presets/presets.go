// Package presets provides a minimal, built-in PresetResolver
// implementation (spec.md §6's external "preset resolver" collaborator)
// so the CLI can drive a full end-to-end show without requiring an
// external editor/GUI process. Grounded on scheduler/effects.go's
// progress-ratio-driven generative effects, adapted from discrete
// flash/pulse command sequences into continuous, pure parametric point
// generators keyed by preset ID.
package presets

import (
	"math"

	"github.com/kungfusheep/laserctl/frame"
)

// Generator produces a frame for a given elapsed time, independent of any
// world state — the same pure-function shape fx.Transformer uses.
type Generator func(elapsedMs int64) frame.Frame

// Registry is a built-in PresetResolver backed by a fixed set of
// parametric generators, analogous to fx.Registry's string-keyed lookup.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry returns a Registry pre-populated with every built-in preset.
func NewRegistry() *Registry {
	return &Registry{
		generators: map[string]Generator{
			"circle":   circle(64, 0.8),
			"line":     line(128, 0.8),
			"dot":      dot(),
			"lissajous": lissajous(128, 0.8, 3, 2),
		},
	}
}

// Register adds or replaces a generator.
func (r *Registry) Register(presetID string, g Generator) {
	r.generators[presetID] = g
}

// Animate implements provider.PresetResolver.
func (r *Registry) Animate(presetID string, elapsedMs int64) (frame.Frame, bool) {
	g, ok := r.generators[presetID]
	if !ok {
		return nil, false
	}
	return g(elapsedMs), true
}

func circle(points int, radius float64) Generator {
	return func(elapsedMs int64) frame.Frame {
		out := make(frame.Frame, points)
		spin := float64(elapsedMs) / 1000.0
		for i := 0; i < points; i++ {
			theta := 2*math.Pi*float64(i)/float64(points) + spin
			out[i] = frame.Point{
				X: frame.Denormalize(radius * math.Cos(theta)),
				Y: frame.Denormalize(radius * math.Sin(theta)),
				R: 0, G: 255, B: 0,
			}
		}
		return out
	}
}

func line(points int, halfLength float64) Generator {
	return func(elapsedMs int64) frame.Frame {
		out := make(frame.Frame, points)
		for i := 0; i < points; i++ {
			t := float64(i)/float64(points-1)*2 - 1
			out[i] = frame.Point{
				X: frame.Denormalize(t * halfLength),
				Y: 0,
				R: 255, G: 255, B: 255,
			}
		}
		return out
	}
}

func dot() Generator {
	return func(elapsedMs int64) frame.Frame {
		return frame.Frame{{X: 0, Y: 0, R: 255, G: 0, B: 0}}
	}
}

func lissajous(points int, amplitude float64, freqX, freqY int) Generator {
	return func(elapsedMs int64) frame.Frame {
		out := make(frame.Frame, points)
		phase := float64(elapsedMs) / 1000.0
		for i := 0; i < points; i++ {
			t := 2 * math.Pi * float64(i) / float64(points)
			out[i] = frame.Point{
				X: frame.Denormalize(amplitude * math.Sin(float64(freqX)*t+phase)),
				Y: frame.Denormalize(amplitude * math.Sin(float64(freqY)*t)),
				R: 0, G: 128, B: 255,
			}
		}
		return out
	}
}
