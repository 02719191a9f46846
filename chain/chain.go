// Package chain implements the ordered, possibly-nested effect chain engine
// (spec.md §4.E) and the EffectInstance/Group data types it walks. Grounded
// on scheduler/scheduler.go's runSequence, which walks an ordered list of
// commands honoring a stop/skip condition per item — generalized here from
// a linear command list into a recursive tree walk, since groups may
// nest, and turned into a pure function (no goroutine, no channel) since
// the chain engine must never block (spec.md §5).
package chain

import "github.com/kungfusheep/laserctl/fx"

// MaxDepth bounds group nesting so a malformed (or, despite the snapshot
// invariant, accidentally cyclic) chain cannot blow the stack — the Go
// analogue of design-notes "recursion bounded by configured max-depth".
const MaxDepth = 32

// Item is the tagged variant `ChainItem = Leaf(EffectInstance) |
// Group({items, ...})` the design notes call for. It is a closed interface:
// only Leaf and GroupItem implement it.
type Item interface {
	isItem()
}

// Instance is an EffectInstance: a single effect application.
type Instance struct {
	ID       string
	EffectID string
	Enabled  bool
	Params   fx.Params
}

// Leaf wraps an Instance as a chain Item.
type Leaf struct {
	Instance Instance
}

func (Leaf) isItem() {}

// Group is a named, collapsible, possibly-disabled container of items.
// Disabled groups (and everything nested inside them) are skipped entirely
// during both chain application and routing resolution.
type Group struct {
	ID        string
	Name      string
	Collapsed bool
	Enabled   bool
	Items     []Item
}

// GroupItem wraps a Group as a chain Item.
type GroupItem struct {
	Group Group
}

func (GroupItem) isItem() {}

// Chain is an ordered list of items — a flat EffectChain or a CueItem's/
// projector's effect chain.
type Chain []Item

// Walk calls visit for every enabled Instance reachable in c, recursing
// into enabled groups only, bounded by MaxDepth. It is shared by the chain
// engine (apply transformers) and the routing resolver (inspect zone
// effects) so both honor identical enabled/group-nesting semantics.
func Walk(c Chain, visit func(Instance)) {
	walk(c, visit, 0)
}

func walk(c Chain, visit func(Instance), depth int) {
	if depth >= MaxDepth {
		return
	}
	for _, item := range c {
		switch v := item.(type) {
		case Leaf:
			if v.Instance.Enabled {
				visit(v.Instance)
			}
		case GroupItem:
			if v.Group.Enabled {
				walk(v.Group.Items, visit, depth+1)
			}
		}
	}
}
