package fx

import (
	"log"
	"sync"

	"github.com/kungfusheep/laserctl/frame"
	"github.com/kungfusheep/laserctl/modulate"
)

// EvalContext is the full per-invocation context a transformer may need:
// wall-clock-derived timing plus the beat/phase state modulators evaluate
// against.
type EvalContext struct {
	TimeMs        int64
	BPM           float64
	TriggerTimeMs int64
	Timing        modulate.EvalContext
}

// Transformer is a pure per-frame effect function: (frame, params, ctx) ->
// frame. Implementations must not mutate the input frame in place.
type Transformer func(f frame.Frame, p Params, ctx EvalContext) frame.Frame

// Registry looks up transformers by stable effect_id. An unknown ID is a
// no-op (identity), logged once — matching effects.IsValid's closed-set
// validation in the teacher repo, generalized to a pluggable map.
type Registry struct {
	mu           sync.Mutex
	transformers map[string]Transformer
	warned       map[string]bool
}

// NewRegistry returns a Registry pre-populated with every built-in effect
// (spec.md §4.D plus the hue-shift supplement).
func NewRegistry() *Registry {
	r := &Registry{
		transformers: make(map[string]Transformer),
		warned:       make(map[string]bool),
	}
	r.Register(IDRGBCurves, RGBCurves)
	r.Register(IDCornerPin, CornerPin)
	r.Register(IDScale, Scale)
	r.Register(IDOffset, Offset)
	r.Register(IDRotate, Rotate)
	r.Register(IDBlockedRegions, BlockedRegions)
	r.Register(IDViewport, Viewport)
	r.Register(IDHueShift, HueShift)
	r.Register(IDZoneReroute, ZoneReroute)
	r.Register(IDZoneBroadcast, ZoneBroadcast)
	r.Register(IDZoneMirror, ZoneMirror)
	return r
}

// Register adds or replaces the transformer for effectID.
func (r *Registry) Register(effectID string, t Transformer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transformers[effectID] = t
}

// Apply looks up effectID and invokes its transformer, or returns f
// unchanged (identity) if effectID is unknown, logging the first occurrence
// of each unknown ID exactly once (spec.md §4.E: "Unknown effect_id is a
// no-op (identity) and is logged once").
func (r *Registry) Apply(effectID string, f frame.Frame, p Params, ctx EvalContext) frame.Frame {
	r.mu.Lock()
	t, ok := r.transformers[effectID]
	if !ok {
		if !r.warned[effectID] {
			r.warned[effectID] = true
			r.mu.Unlock()
			log.Printf("fx: unknown effect_id %q treated as identity", effectID)
			return f
		}
		r.mu.Unlock()
		return f
	}
	r.mu.Unlock()
	return t(f, p, ctx)
}

// Built-in effect identifiers.
const (
	IDRGBCurves      = "rgb-curves"
	IDCornerPin      = "corner-pin"
	IDScale          = "scale"
	IDOffset         = "offset"
	IDRotate         = "rotate"
	IDBlockedRegions = "blocked-regions"
	IDViewport       = "viewport"
	IDHueShift       = "hue-shift"
	IDZoneReroute    = "zone-reroute"
	IDZoneBroadcast  = "zone-broadcast"
	IDZoneMirror     = "zone-mirror"
)
