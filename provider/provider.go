// Package provider implements the per-projector Frame Provider (spec.md
// §4.H): a side-effect-free function of (snapshot, now) that reads the
// shared read-only snapshot, selects the active cue chain, renders the base
// frame, applies cue/chain effects, then projector calibration effects.
// Grounded on mcp/entertainment.go's runRainbowEffect, which on every tick
// computes colors fresh from elapsed time and a light list — generalized
// here from a hardcoded rainbow generator into the full cue/effect/routing
// pipeline, and turned into a pure function (no ticker, no goroutine: the
// Streaming Engine owns pacing, per spec.md §5).
package provider

import (
	"github.com/kungfusheep/laserctl/chain"
	"github.com/kungfusheep/laserctl/frame"
	"github.com/kungfusheep/laserctl/fx"
	"github.com/kungfusheep/laserctl/modulate"
	"github.com/kungfusheep/laserctl/routing"
	"github.com/kungfusheep/laserctl/world"
)

// PresetResolver turns a preset_id into a (elapsed_ms) -> Frame function,
// supplied by the GUI/editor external collaborator (spec.md §6). ok=false
// means the preset_id does not currently resolve to anything renderable.
type PresetResolver interface {
	Animate(presetID string, elapsedMs int64) (frame.Frame, bool)
}

// Provider is a bound, reusable per-projector frame source. Frame never
// blocks. It allocates on every call: routing builds a fresh target set and
// each effect stage returns a newly cloned point buffer; no buffer is
// reused across frames.
type Provider struct {
	store       *world.Store
	presets     PresetResolver
	registry    *fx.Registry
	projectorID string
	nowMs       func() int64
}

// New builds a Provider bound to one projector-id.
func New(store *world.Store, presets PresetResolver, registry *fx.Registry, projectorID string, nowMs func() int64) *Provider {
	return &Provider{
		store:       store,
		presets:     presets,
		registry:    registry,
		projectorID: projectorID,
		nowMs:       nowMs,
	}
}

// Frame implements spec.md §4.H's pseudocode exactly: it returns (frame,
// true) when there is something to render this tick, or (zero-value,
// false) — Go's idiomatic stand-in for the source's Option<Frame>/
// ProviderOutcome sum type — when playback is stopped, no cell is active,
// the active cue is empty, or this projector is not in the cue's routing
// target.
func (p *Provider) Frame() (frame.Frame, bool) {
	snap := p.store.Load()

	if !snap.Playback.Playing {
		return nil, false
	}
	if snap.Playback.ActiveCell == nil {
		return nil, false
	}
	cue, ok := snap.CueChains[*snap.Playback.ActiveCell]
	if !ok || len(cue.Items) == 0 {
		return nil, false
	}

	target := routing.Resolve(cue, snap.Projectors, snap.VirtualProjectors)
	if _, routed := target[p.projectorID]; !routed {
		return nil, false
	}

	now := p.nowMs()
	trigger := snap.Playback.TriggerTimeMs
	elapsed := now - trigger
	bpm := snap.Timing.BPM
	timing := modulate.EvalContext{
		AccumulatedBeats: snap.Playback.AccumulatedBeats,
		PhaseOffset:      snap.Playback.PhaseOffset,
	}

	base := p.renderCueChain(cue, elapsed, bpm, trigger, timing)

	if cellChain, ok := snap.EffectChains[*snap.Playback.ActiveCell]; ok {
		base = chain.Apply(p.registry, base, cellChain, elapsed, bpm, trigger, timing)
	}

	if projEffects, ok := snap.ProjectorEffects[p.projectorID]; ok {
		base = chain.Apply(p.registry, base, projEffects, elapsed, bpm, trigger, timing)
	}

	return base, true
}

// renderCueChain iterates the cue's items (each a preset reference plus its
// own effects), concatenating their rendered, per-item-effected frames
// (Open Question #1 resolved: concatenate, don't overwrite — see
// SPEC_FULL.md).
func (p *Provider) renderCueChain(cue world.CueChain, elapsedMs int64, bpm float64, triggerMs int64, timing modulate.EvalContext) frame.Frame {
	var parts []frame.Frame
	for _, item := range cue.Items {
		if !item.Enabled {
			continue
		}
		base, ok := p.presets.Animate(item.PresetID, elapsedMs)
		if !ok {
			continue
		}
		out := chain.Apply(p.registry, base, item.Effects, elapsedMs, bpm, triggerMs, timing)
		parts = append(parts, out)
	}
	return frame.Concat(parts...)
}
