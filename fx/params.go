// Package fx is the effect library: per-effect pure transformer functions
// plus the registry that looks them up by stable effect_id. Grounded on the
// teacher's effects/effects.go (a small registry of named identifiers with
// validity/description lookups) generalized from a closed set of Hue-bridge
// effect names to a pluggable map[string]Transformer, and on
// scheduler/effects.go's hsvToRGB / progress-driven generative effects,
// adapted here into pure per-point transforms.
package fx

import "github.com/kungfusheep/laserctl/modulate"

// ParamValue is a scalar parameter that may instead be driven by a
// modulator. A nil Modulator means "use Scalar".
type ParamValue struct {
	Scalar    float64
	Modulator *modulate.Config
}

// Resolve returns the effective value of v for this frame, evaluating the
// modulator if one is active (spec.md §4.D: "when modulator-config?(value)
// and value.active").
func (v ParamValue) Resolve(ctx modulate.EvalContext) float64 {
	if v.Modulator == nil || !v.Modulator.Active {
		return v.Scalar
	}
	return v.Modulator.Evaluate(ctx)
}

// CurvePoint is one control point of a monotone color LUT.
type CurvePoint struct {
	X, Y float64 // X in [0,255], Y in [0,255]
}

// Curve is a monotone-in-x list of control points used by rgb-curves.
// Invariant (spec.md §3): non-empty, sorted by X, first X=0, last X=255.
type Curve []CurvePoint

// Point2D is a normalized-space 2D point ([-1,1] per axis nominally).
type Point2D struct {
	X, Y float64
}

// Region is a blocked-region shape in normalized space.
type Region struct {
	Shape  RegionShape
	Center Point2D
	// Rect uses HalfW/HalfH; Circle uses Radius.
	HalfW, HalfH, Radius float64
}

// RegionShape distinguishes the two blocked-region primitives.
type RegionShape int

const (
	RegionRect RegionShape = iota
	RegionCircle
)

// ZoneMode selects how zone-reroute combines with the current routing
// target set (spec.md §4.G).
type ZoneMode int

const (
	ZoneReplace ZoneMode = iota
	ZoneAdd
	ZoneFilter
)

// Params is the fixed-field, tagged-struct parameter set carrying every
// field any built-in effect might need. Each transformer reads only the
// fields relevant to its own effect_id — the Go analogue of the source's
// per-effect dynamic param map (design-notes: "hash-map-typed domain
// objects → tagged records/structs with fixed fields").
type Params struct {
	// rgb-curves
	RedCurve, GreenCurve, BlueCurve Curve

	// corner-pin (normalized destination corners)
	TL, TR, BL, BR Point2D

	// scale / offset / rotate
	ScaleX, ScaleY     ParamValue
	OffsetX, OffsetY   ParamValue
	RotationRadians    ParamValue

	// blocked-regions
	Regions []Region

	// viewport (normalized sub-rectangle clipped+remapped to [-1,1])
	ViewMin, ViewMax Point2D

	// hue-shift
	HueDegrees ParamValue

	// zone-reroute / zone-broadcast / zone-mirror
	ZoneMode        ZoneMode
	TargetZones     []string
	SourceZone      string
	IncludeOriginal bool
	MirrorPairs     map[string]string // zone id -> left/right mirror zone id
}
