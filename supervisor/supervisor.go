// Package supervisor implements the Multi-Engine Supervisor (spec.md
// §4.J): one Streaming Engine per enabled projector, reconciled against
// the world snapshot's projector registry as it changes. Grounded on
// mcp/entertainment.go's activeStreamers map[string]*hue.EntertainmentStreamer
// guarded by a package-level sync.RWMutex, generalized into an instance
// field so multiple supervisors (e.g. in tests) don't share global state.
package supervisor

import (
	"fmt"
	"log"
	"sync"

	"github.com/kungfusheep/laserctl/clock"
	"github.com/kungfusheep/laserctl/fx"
	"github.com/kungfusheep/laserctl/idn"
	"github.com/kungfusheep/laserctl/outputcfg"
	"github.com/kungfusheep/laserctl/provider"
	"github.com/kungfusheep/laserctl/stream"
	"github.com/kungfusheep/laserctl/world"
)

// engineEntry pairs a running Engine with the Projector config it was built
// from, so Reconcile can detect a config change (spec.md §4.J: "on
// projector config change, stop old engine and create new with fresh
// settings").
type engineEntry struct {
	engine *stream.Engine
	cfg    world.Projector
}

// Supervisor owns one stream.Engine per enabled projector.
type Supervisor struct {
	mu      sync.RWMutex
	engines map[string]*engineEntry

	store    *world.Store
	presets  provider.PresetResolver
	registry *fx.Registry
	clk      clock.Clock
	nowMs    func() int64

	startMs int64
}

// New builds a Supervisor bound to store, a shared preset resolver, and an
// effect registry. clk is the clock used by every Engine it creates.
func New(store *world.Store, presets provider.PresetResolver, registry *fx.Registry, clk clock.Clock, nowMs func() int64) *Supervisor {
	return &Supervisor{
		engines:  make(map[string]*engineEntry),
		store:    store,
		presets:  presets,
		registry: registry,
		clk:      clk,
		nowMs:    nowMs,
	}
}

// StartAll creates and starts one Engine for every enabled projector in the
// current snapshot (spec.md §4.J "start_all").
func (s *Supervisor) StartAll() {
	snap := s.store.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.startMs = s.nowMs()
	for id, p := range snap.Projectors {
		if !p.Enabled {
			continue
		}
		if err := s.addLocked(id, p); err != nil {
			log.Printf("supervisor: failed to start projector %s: %v", id, err)
		}
	}
}

// StopAll stops every engine and clears supervisor state (spec.md §4.J
// "stop_all").
func (s *Supervisor) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopAllLocked()
}

func (s *Supervisor) stopAllLocked() {
	for id, entry := range s.engines {
		if err := entry.engine.Stop(); err != nil {
			log.Printf("supervisor: error stopping engine %s: %v", id, err)
		}
		delete(s.engines, id)
	}
}

// Reconcile compares the current snapshot's projector registry against the
// running engines and applies the minimal set of start/stop/restart
// actions (spec.md §4.J "Dynamic reconciliation"): added/enabled
// projectors are created and started; removed/disabled projectors are
// stopped and dropped; projectors whose config changed are stopped and
// recreated (the socket lifetime is tied to the Engine, not the
// Projector).
func (s *Supervisor) Reconcile() {
	snap := s.store.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.engines {
		p, ok := snap.Projectors[id]
		if !ok || !p.Enabled {
			if err := entry.engine.Stop(); err != nil {
				log.Printf("supervisor: error stopping removed/disabled engine %s: %v", id, err)
			}
			delete(s.engines, id)
			continue
		}
		if !configEqual(entry.cfg, p) {
			if err := entry.engine.Stop(); err != nil {
				log.Printf("supervisor: error stopping engine %s for config change: %v", id, err)
			}
			delete(s.engines, id)
			if err := s.addLocked(id, p); err != nil {
				log.Printf("supervisor: failed to restart projector %s: %v", id, err)
			}
		}
	}

	for id, p := range snap.Projectors {
		if !p.Enabled {
			continue
		}
		if _, exists := s.engines[id]; exists {
			continue
		}
		if err := s.addLocked(id, p); err != nil {
			log.Printf("supervisor: failed to start new projector %s: %v", id, err)
		}
	}
}

func (s *Supervisor) addLocked(id string, p world.Projector) error {
	outCfg, err := outputcfg.New(p.Output.ColorBits, p.Output.XYBits)
	if err != nil {
		return fmt.Errorf("supervisor: %s: %w", id, err)
	}

	fps := p.FPS
	if fps <= 0 {
		fps = stream.DefaultFPS
	}
	port := p.Port
	if port <= 0 {
		port = idn.DefaultPort
	}

	chanCfg := idn.ChannelConfig{
		ServiceID: uint8(p.ServiceID),
		ChannelID: uint8(p.ChannelID),
		Output:    outCfg,
	}

	prov := provider.New(s.store, s.presets, s.registry, id, s.nowMs)
	engine, err := stream.New(p.Host, port, fps, chanCfg, prov, s.clk)
	if err != nil {
		return fmt.Errorf("supervisor: %s: %w", id, err)
	}
	if err := engine.Start(); err != nil {
		return fmt.Errorf("supervisor: %s: %w", id, err)
	}

	s.engines[id] = &engineEntry{engine: engine, cfg: p}
	return nil
}

func configEqual(a, b world.Projector) bool {
	if a.Host != b.Host || a.Port != b.Port || a.FPS != b.FPS {
		return false
	}
	if a.ServiceID != b.ServiceID || a.ChannelID != b.ChannelID {
		return false
	}
	if a.Output != b.Output {
		return false
	}
	return true
}

// Stats returns a snapshot of every running engine's stats, keyed by
// projector ID.
func (s *Supervisor) Stats() map[string]stream.EngineStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]stream.EngineStats, len(s.engines))
	for id, entry := range s.engines {
		out[id] = entry.engine.Stats()
	}
	return out
}

// EngineCount reports how many engines are currently running.
func (s *Supervisor) EngineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.engines)
}
