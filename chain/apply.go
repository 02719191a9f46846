package chain

import (
	"github.com/kungfusheep/laserctl/frame"
	"github.com/kungfusheep/laserctl/fx"
	"github.com/kungfusheep/laserctl/modulate"
)

// Apply runs a Chain over a starting frame in order (spec.md §4.E
// apply_chain): each enabled leaf's transformer sees the previous item's
// output; disabled items and disabled groups (and their contents) are
// skipped entirely. Given identical inputs the result is byte-identical —
// no clocks are read internally; timeMs/bpm/triggerTimeMs/timing are all
// supplied by the caller.
func Apply(reg *fx.Registry, f frame.Frame, c Chain, timeMs int64, bpm float64, triggerTimeMs int64, timing modulate.EvalContext) frame.Frame {
	ctx := fx.EvalContext{
		TimeMs:        timeMs,
		BPM:           bpm,
		TriggerTimeMs: triggerTimeMs,
		Timing:        timing,
	}
	current := f
	Walk(c, func(inst Instance) {
		current = reg.Apply(inst.EffectID, current, inst.Params, ctx)
	})
	return current
}
