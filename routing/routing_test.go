package routing

import (
	"testing"

	"github.com/kungfusheep/laserctl/chain"
	"github.com/kungfusheep/laserctl/fx"
	"github.com/kungfusheep/laserctl/world"
)

func projectors() map[string]world.Projector {
	return map[string]world.Projector{
		"p1": {ID: "p1", ZoneGroups: []string{"left"}},
		"p2": {ID: "p2", ZoneGroups: []string{"right"}},
	}
}

func TestResolveDefaultsToAll(t *testing.T) {
	cue := world.CueChain{}
	out := Resolve(cue, projectors(), nil)
	if len(out) != 2 {
		t.Errorf("default destination should match all projectors, got %d", len(out))
	}
}

func TestResolveByZoneGroup(t *testing.T) {
	cue := world.CueChain{DestinationZone: "left"}
	out := Resolve(cue, projectors(), nil)
	if _, ok := out["p1"]; !ok {
		t.Errorf("p1 (zone left) should be in routing target")
	}
	if _, ok := out["p2"]; ok {
		t.Errorf("p2 (zone right) should not be in routing target")
	}
}

func TestResolveNonexistentZoneRoutesToNobody(t *testing.T) {
	cue := world.CueChain{DestinationZone: "nonexistent"}
	out := Resolve(cue, projectors(), nil)
	if len(out) != 0 {
		t.Errorf("nonexistent zone should route to nobody, got %d", len(out))
	}
}

func TestZoneBroadcastOverridesDestination(t *testing.T) {
	cue := world.CueChain{
		DestinationZone: "left",
		Items: []world.CueItem{
			{
				Enabled: true,
				Effects: chain.Chain{
					chain.Leaf{Instance: chain.Instance{EffectID: fx.IDZoneBroadcast, Enabled: true}},
				},
			},
		},
	}
	out := Resolve(cue, projectors(), nil)
	if len(out) != 2 {
		t.Errorf("zone-broadcast should route to all projectors, got %d", len(out))
	}
}

func TestZoneRerouteReplaceAddFilter(t *testing.T) {
	base := func(mode fx.ZoneMode, zones []string) world.CueChain {
		return world.CueChain{
			DestinationZone: "left",
			Items: []world.CueItem{{
				Enabled: true,
				Effects: chain.Chain{
					chain.Leaf{Instance: chain.Instance{
						EffectID: fx.IDZoneReroute,
						Enabled:  true,
						Params:   fx.Params{ZoneMode: mode, TargetZones: zones},
					}},
				},
			}},
		}
	}

	replaced := Resolve(base(fx.ZoneReplace, []string{"right"}), projectors(), nil)
	if _, ok := replaced["p2"]; !ok || len(replaced) != 1 {
		t.Errorf("replace should route only to right zone, got %v", replaced)
	}

	added := Resolve(base(fx.ZoneAdd, []string{"right"}), projectors(), nil)
	if len(added) != 2 {
		t.Errorf("add should route to both zones, got %v", added)
	}

	filtered := Resolve(base(fx.ZoneFilter, []string{"right"}), projectors(), nil)
	if len(filtered) != 0 {
		t.Errorf("filter with disjoint target should route to nobody, got %v", filtered)
	}
}

func TestZoneMirror(t *testing.T) {
	cue := world.CueChain{
		DestinationZone: "left",
		Items: []world.CueItem{{
			Enabled: true,
			Effects: chain.Chain{
				chain.Leaf{Instance: chain.Instance{
					EffectID: fx.IDZoneMirror,
					Enabled:  true,
					Params: fx.Params{
						SourceZone:      "left",
						IncludeOriginal: false,
						MirrorPairs:     map[string]string{"left": "right"},
					},
				}},
			},
		}},
	}
	out := Resolve(cue, projectors(), nil)
	if _, ok := out["p2"]; !ok {
		t.Errorf("mirror should add the right zone")
	}
	if _, ok := out["p1"]; ok {
		t.Errorf("mirror without include-original should drop the left zone")
	}
}

func TestDisabledZoneEffectIsIgnored(t *testing.T) {
	cue := world.CueChain{
		DestinationZone: "left",
		Items: []world.CueItem{{
			Enabled: true,
			Effects: chain.Chain{
				chain.Leaf{Instance: chain.Instance{EffectID: fx.IDZoneBroadcast, Enabled: false}},
			},
		}},
	}
	out := Resolve(cue, projectors(), nil)
	if len(out) != 1 {
		t.Errorf("disabled zone-broadcast should not expand routing, got %v", out)
	}
}
