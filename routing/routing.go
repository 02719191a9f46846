// Package routing computes, per frame, which projector/virtual-projector
// outputs receive a cue's frame (spec.md §4.G). Grounded on the
// group/membership shape of hue/types.go's Group resource, generalized from
// "a grouped_light resource the bridge understands" into a pure,
// in-process set computation over zone_groups membership.
package routing

import (
	"github.com/kungfusheep/laserctl/chain"
	"github.com/kungfusheep/laserctl/fx"
	"github.com/kungfusheep/laserctl/world"
)

// AllZones is the implicit universal zone group.
const AllZones = "all"

// ZoneSet is a set of zone-group IDs.
type ZoneSet map[string]struct{}

func newZoneSet(ids ...string) ZoneSet {
	s := make(ZoneSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (z ZoneSet) clone() ZoneSet {
	out := make(ZoneSet, len(z))
	for k := range z {
		out[k] = struct{}{}
	}
	return out
}

func (z ZoneSet) has(id string) bool {
	_, ok := z[id]
	return ok
}

// Resolve computes the set of output IDs (projector or virtual-projector)
// that should receive cue's frame, given the projector and virtual
// projector tables.
func Resolve(cue world.CueChain, projectors map[string]world.Projector, virtuals map[string]world.VirtualProjector) map[string]struct{} {
	dest := cue.DestinationZone
	if dest == "" {
		dest = AllZones
	}
	target := newZoneSet(dest)

	for _, item := range cue.Items {
		if !item.Enabled {
			continue
		}
		chain.Walk(item.Effects, func(inst chain.Instance) {
			applyZoneEffect(&target, inst)
		})
	}

	out := make(map[string]struct{})
	for id, p := range projectors {
		if outputMatchesTarget(p.ZoneGroups, target) {
			out[id] = struct{}{}
		}
	}
	for id, vp := range virtuals {
		if outputMatchesTarget(vp.ZoneGroups, target) {
			out[id] = struct{}{}
		}
	}
	return out
}

func outputMatchesTarget(zoneGroups []string, target ZoneSet) bool {
	if target.has(AllZones) {
		return true
	}
	for _, g := range zoneGroups {
		if target.has(g) {
			return true
		}
	}
	return false
}

func applyZoneEffect(target *ZoneSet, inst chain.Instance) {
	switch inst.EffectID {
	case fx.IDZoneReroute:
		applyReroute(target, inst.Params)
	case fx.IDZoneBroadcast:
		*target = newZoneSet(AllZones)
	case fx.IDZoneMirror:
		applyMirror(target, inst.Params)
	}
}

func applyReroute(target *ZoneSet, p fx.Params) {
	switch p.ZoneMode {
	case fx.ZoneReplace:
		*target = newZoneSet(p.TargetZones...)
	case fx.ZoneAdd:
		next := (*target).clone()
		for _, z := range p.TargetZones {
			next[z] = struct{}{}
		}
		*target = next
	case fx.ZoneFilter:
		allowed := newZoneSet(p.TargetZones...)
		next := make(ZoneSet)
		for z := range *target {
			if allowed.has(z) {
				next[z] = struct{}{}
			}
		}
		*target = next
	}
}

func applyMirror(target *ZoneSet, p fx.Params) {
	if !(*target).has(p.SourceZone) {
		return
	}
	next := (*target).clone()
	if mirror, ok := p.MirrorPairs[p.SourceZone]; ok {
		next[mirror] = struct{}{}
	}
	if !p.IncludeOriginal {
		delete(next, p.SourceZone)
	}
	*target = next
}
