// Package world holds the read-only domain model shared by every engine:
// projectors, zone groups, cue chains, playback/timing state, and the
// atomically-published Snapshot that ties them together. Structs here mirror
// the teacher's flat, JSON-tagged resource structs (hue.Light, hue.Group,
// hue.Scene in hue/types.go) but are addressed by Go field access rather than
// map lookups, per the design-notes "hash-map-typed domain objects → tagged
// structs" guidance.
package world

import "github.com/kungfusheep/laserctl/chain"

// CellAddr identifies a grid cell by column/row.
type CellAddr struct {
	Col, Row int
}

// Projector is a physical laser output.
type Projector struct {
	ID         string
	Name       string
	Host       string
	Port       int // default 7255
	FPS        int // target Streaming Engine frame rate; 0 means DefaultFPS
	ServiceID  int
	ChannelID  int
	Enabled    bool
	Output     OutputConfigRef
	ZoneGroups []string // group IDs this projector belongs to
}

// OutputConfigRef carries the same two integers outputcfg.New validates;
// the supervisor constructs the real outputcfg.Config from this at
// engine-creation time.
type OutputConfigRef struct {
	ColorBits int
	XYBits    int
}

// VirtualProjector is a logical child output of the projector named by
// ParentID. routing.Resolve matches it by ZoneGroups; the supervisor starts
// no engine for it, and neither its parent's projector effects nor its
// GeoEffects chain are applied anywhere in this module.
type VirtualProjector struct {
	ID          string
	Name        string
	ParentID    string
	Enabled     bool
	ZoneGroups  []string
	GeoEffects  chain.Chain // geometric-only calibration chain
}

// ZoneGroup is a named set of outputs used as the unit of cue routing.
type ZoneGroup struct {
	ID    string
	Name  string
	Color string
}

// CueChain is the sequence of presets (with their own per-item effects)
// bound to a grid cell, plus its destination zone group.
type CueChain struct {
	Items            []CueItem
	DestinationZone  string // defaults to "all" (routing.AllZones)
}

// CueItem is one preset reference inside a CueChain, with its own effect
// chain applied after the preset renders its base frame.
type CueItem struct {
	PresetID string
	Enabled  bool
	Effects  chain.Chain
}

// PlaybackState tracks what is currently playing and the beat/phase clock
// driving modulators.
type PlaybackState struct {
	Playing            bool
	ActiveCell         *CellAddr
	TriggerTimeMs      int64
	AccumulatedBeats   float64
	PhaseOffset        float64
	PhaseOffsetTarget  float64
	LastFrameTimeMs    int64
}

// TimingState carries BPM and tap-tempo history.
type TimingState struct {
	BPM      float64
	TapTimes []int64
}
