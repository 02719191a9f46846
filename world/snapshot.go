package world

import "github.com/kungfusheep/laserctl/chain"

// Snapshot is a consistent, read-only view of everything the core needs to
// render one tick: projectors, zone groups, cue/cell/projector effect
// chains, and playback/timing state. It corresponds to spec.md §3's
// WorldSnapshot. Snapshots are built once by the external event dispatcher
// and published atomically via Store.Publish; nothing inside the core ever
// mutates a Snapshot's fields after construction.
type Snapshot struct {
	Projectors        map[string]Projector
	VirtualProjectors map[string]VirtualProjector
	ZoneGroups        map[string]ZoneGroup

	// EffectChains is the optional cell-level chain applied before routing,
	// keyed by grid cell.
	EffectChains map[CellAddr]chain.Chain

	// CueChains is the sequence of presets (with per-item effects) bound to
	// a grid cell — the "cue".
	CueChains map[CellAddr]CueChain

	// ProjectorEffects is the per-projector calibration chain.
	ProjectorEffects map[string]chain.Chain

	Playback PlaybackState
	Timing   TimingState
}

// Empty returns a Snapshot with all maps initialized but no content —
// useful as a base for tests and for the very first snapshot a Store holds
// before any mutation has been published.
func Empty() *Snapshot {
	return &Snapshot{
		Projectors:        make(map[string]Projector),
		VirtualProjectors: make(map[string]VirtualProjector),
		ZoneGroups:        make(map[string]ZoneGroup),
		EffectChains:      make(map[CellAddr]chain.Chain),
		CueChains:         make(map[CellAddr]CueChain),
		ProjectorEffects:  make(map[string]chain.Chain),
	}
}

// Clone returns a shallow copy of s with fresh top-level maps, so a writer
// can apply one mutation to the copy and publish it without racing readers
// holding the previous Snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Projectors:        make(map[string]Projector, len(s.Projectors)),
		VirtualProjectors: make(map[string]VirtualProjector, len(s.VirtualProjectors)),
		ZoneGroups:        make(map[string]ZoneGroup, len(s.ZoneGroups)),
		EffectChains:      make(map[CellAddr]chain.Chain, len(s.EffectChains)),
		CueChains:         make(map[CellAddr]CueChain, len(s.CueChains)),
		ProjectorEffects:  make(map[string]chain.Chain, len(s.ProjectorEffects)),
		Playback:          s.Playback,
		Timing:            s.Timing,
	}
	for k, v := range s.Projectors {
		out.Projectors[k] = v
	}
	for k, v := range s.VirtualProjectors {
		out.VirtualProjectors[k] = v
	}
	for k, v := range s.ZoneGroups {
		out.ZoneGroups[k] = v
	}
	for k, v := range s.EffectChains {
		out.EffectChains[k] = v
	}
	for k, v := range s.CueChains {
		out.CueChains[k] = v
	}
	for k, v := range s.ProjectorEffects {
		out.ProjectorEffects[k] = v
	}
	if s.Playback.ActiveCell != nil {
		cell := *s.Playback.ActiveCell
		out.Playback.ActiveCell = &cell
	}
	return out
}
