package fx

import "github.com/kungfusheep/laserctl/frame"

// ZoneReroute, ZoneBroadcast and ZoneMirror are routing effects (spec.md
// §4.G): they never touch point data themselves — chain.Apply still calls
// through the registry like any other effect_id so that enabled/disabled
// and group-nesting rules apply uniformly, but the actual routing decision
// is made by routing.Resolve walking the same chain a second time and
// reading these effects' Params fields (ZoneMode/TargetZones/SourceZone/
// IncludeOriginal). As far as the frame pipeline is concerned they are
// identity.
func ZoneReroute(f frame.Frame, _ Params, _ EvalContext) frame.Frame   { return f }
func ZoneBroadcast(f frame.Frame, _ Params, _ EvalContext) frame.Frame { return f }
func ZoneMirror(f frame.Frame, _ Params, _ EvalContext) frame.Frame    { return f }
