package provider

import (
	"testing"

	"github.com/kungfusheep/laserctl/chain"
	"github.com/kungfusheep/laserctl/frame"
	"github.com/kungfusheep/laserctl/fx"
	"github.com/kungfusheep/laserctl/world"
)

type fakePresets struct {
	frames map[string]frame.Frame
}

func (f fakePresets) Animate(presetID string, _ int64) (frame.Frame, bool) {
	fr, ok := f.frames[presetID]
	return fr, ok
}

func baseSnapshot() *world.Snapshot {
	snap := world.Empty()
	snap.Projectors["p1"] = world.Projector{ID: "p1", Enabled: true, ZoneGroups: []string{"left"}}
	snap.Projectors["p2"] = world.Projector{ID: "p2", Enabled: true, ZoneGroups: []string{"right"}}
	cell := world.CellAddr{Col: 0, Row: 0}
	snap.CueChains[cell] = world.CueChain{
		DestinationZone: "left",
		Items: []world.CueItem{
			{PresetID: "circle", Enabled: true},
		},
	}
	snap.Playback = world.PlaybackState{
		Playing:       true,
		ActiveCell:    &cell,
		TriggerTimeMs: 0,
	}
	snap.Timing = world.TimingState{BPM: 120}
	return snap
}

func newStoreWithSnapshot(snap *world.Snapshot) *world.Store {
	s := world.NewStore()
	s.Publish(snap)
	return s
}

func TestProviderReturnsFrameForRoutedProjector(t *testing.T) {
	snap := baseSnapshot()
	store := newStoreWithSnapshot(snap)
	presets := fakePresets{frames: map[string]frame.Frame{"circle": {{X: 1, Y: 1}}}}
	reg := fx.NewRegistry()

	p := New(store, presets, reg, "p1", func() int64 { return 0 })
	f, ok := p.Frame()
	if !ok {
		t.Fatalf("expected frame for routed projector")
	}
	if len(f) != 1 {
		t.Errorf("expected 1 point, got %d", len(f))
	}
}

func TestProviderReturnsNoneForUnroutedProjector(t *testing.T) {
	snap := baseSnapshot()
	store := newStoreWithSnapshot(snap)
	presets := fakePresets{frames: map[string]frame.Frame{"circle": {{X: 1, Y: 1}}}}
	reg := fx.NewRegistry()

	p := New(store, presets, reg, "p2", func() int64 { return 0 })
	_, ok := p.Frame()
	if ok {
		t.Errorf("p2 is not in the 'left' zone and should get no frame")
	}
}

func TestProviderReturnsNoneWhenNotPlaying(t *testing.T) {
	snap := baseSnapshot()
	snap.Playback.Playing = false
	store := newStoreWithSnapshot(snap)
	presets := fakePresets{frames: map[string]frame.Frame{"circle": {{X: 1, Y: 1}}}}
	reg := fx.NewRegistry()

	p := New(store, presets, reg, "p1", func() int64 { return 0 })
	_, ok := p.Frame()
	if ok {
		t.Errorf("expected no frame when not playing")
	}
}

func TestProviderReturnsNoneForEmptyCue(t *testing.T) {
	snap := baseSnapshot()
	cell := *snap.Playback.ActiveCell
	snap.CueChains[cell] = world.CueChain{DestinationZone: "left"} // no items
	store := newStoreWithSnapshot(snap)
	presets := fakePresets{}
	reg := fx.NewRegistry()

	p := New(store, presets, reg, "p1", func() int64 { return 0 })
	_, ok := p.Frame()
	if ok {
		t.Errorf("expected no frame for empty cue chain")
	}
}

func TestProviderAppliesProjectorCalibrationAfterCue(t *testing.T) {
	snap := baseSnapshot()
	snap.ProjectorEffects["p1"] = chain.Chain{
		chain.Leaf{Instance: chain.Instance{
			EffectID: fx.IDOffset,
			Enabled:  true,
			Params:   fx.Params{OffsetX: fx.ParamValue{Scalar: 0.5}},
		}},
	}
	store := newStoreWithSnapshot(snap)
	presets := fakePresets{frames: map[string]frame.Frame{"circle": {{X: 0, Y: 0}}}}
	reg := fx.NewRegistry()

	p := New(store, presets, reg, "p1", func() int64 { return 0 })
	f, ok := p.Frame()
	if !ok {
		t.Fatalf("expected frame")
	}
	if frame.Normalize(f[0].X) < 0.4 {
		t.Errorf("expected projector calibration offset applied, got x=%v", frame.Normalize(f[0].X))
	}
}

func TestProviderConcatenatesMultiplePresets(t *testing.T) {
	snap := baseSnapshot()
	cell := *snap.Playback.ActiveCell
	snap.CueChains[cell] = world.CueChain{
		DestinationZone: "left",
		Items: []world.CueItem{
			{PresetID: "a", Enabled: true},
			{PresetID: "b", Enabled: true},
		},
	}
	store := newStoreWithSnapshot(snap)
	presets := fakePresets{frames: map[string]frame.Frame{
		"a": {{X: 1}, {X: 2}},
		"b": {{X: 3}},
	}}
	reg := fx.NewRegistry()

	p := New(store, presets, reg, "p1", func() int64 { return 0 })
	f, ok := p.Frame()
	if !ok {
		t.Fatalf("expected frame")
	}
	if len(f) != 3 {
		t.Errorf("expected concatenated 3 points, got %d", len(f))
	}
}
