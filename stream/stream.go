// Package stream implements the per-projector Streaming Engine (spec.md
// §4.I): owns a UDP socket, a pacing goroutine, and a sequence counter,
// emitting IDN packets at a fixed frame rate with periodic config
// republishing and a clean, bounded close. Grounded directly on
// hue/entertainment.go's EntertainmentStreamer (conn + mu + stopChan +
// sequence + streamingLoop goroutine), generalized from a 20fps
// keep-alive-only ticker into the full provider-driven pacing loop.
package stream

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/kungfusheep/laserctl/clock"
	"github.com/kungfusheep/laserctl/frame"
	"github.com/kungfusheep/laserctl/idn"
	"github.com/kungfusheep/laserctl/lerr"
)

// FrameProvider is the per-tick frame source an Engine pulls from. It must
// never block (spec.md §5).
type FrameProvider interface {
	Frame() (frame.Frame, bool)
}

// State is the Engine's lifecycle state (spec.md §4.I: Stopped -> Running
// -> Draining -> Stopped).
type State int

const (
	StateStopped State = iota
	StateRunning
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	default:
		return "stopped"
	}
}

// EngineStats is the read side of an Engine's progress, safe to read
// concurrently from the owning goroutine's writes (spec.md §5: "readers
// accept a slightly stale view").
type EngineStats struct {
	FramesSent      uint64
	LastFrameTimeMs int64
	ActualFPS       float64
	LastError       string
	Degraded        bool
}

// DefaultFPS is used when a projector does not specify its own frame rate.
const DefaultFPS = 30

// joinTimeout bounds how long Stop waits for the pacing goroutine to exit
// before force-closing the socket (spec.md §4.I: "bounded wait, e.g. 1s").
const joinTimeout = 1 * time.Second

// waitStep pauses until targetNs (per clk) or until stop fires, reporting
// whether it returned because of stop. New installs realWait, which uses a
// real timer.
type waitStep func(clk clock.Clock, targetNs int64, stop <-chan struct{}) (stopped bool)

func realWait(clk clock.Clock, targetNs int64, stop <-chan struct{}) bool {
	d := time.Duration(targetNs - clk.NowNs())
	if d <= 0 {
		select {
		case <-stop:
			return true
		default:
			return false
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return false
	case <-stop:
		return true
	}
}

// Engine streams one projector's frames over UDP at a fixed fps.
type Engine struct {
	host string
	port int
	fps  int
	cfg  idn.ChannelConfig

	provider FrameProvider
	clk      clock.Clock
	wait     waitStep

	mu       sync.Mutex
	state    State
	conn     *net.UDPConn
	stopChan chan struct{}
	doneChan chan struct{}

	sequence      uint16
	lastConfigUs  uint32
	configPending bool

	statsMu sync.Mutex
	stats   EngineStats
}

// New constructs a stopped Engine. fps must be positive.
func New(host string, port int, fps int, cfg idn.ChannelConfig, provider FrameProvider, clk clock.Clock) (*Engine, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("stream: invalid fps %d: %w", fps, lerr.ErrInvalidConfig)
	}
	return &Engine{
		host:     host,
		port:     port,
		fps:      fps,
		cfg:      cfg,
		provider: provider,
		clk:      clk,
		wait:     realWait,
		state:    StateStopped,
	}, nil
}

// Start dials the UDP socket and begins the pacing loop. Sequence numbers
// reset to 0 on every Start (spec.md §4.C).
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.state != StateStopped {
		e.mu.Unlock()
		return fmt.Errorf("stream: engine already running: %w", lerr.ErrInvalidConfig)
	}

	addr := net.JoinHostPort(e.host, fmt.Sprintf("%d", e.port))
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("stream: resolve %s: %w", addr, lerr.ErrSocketFatal)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("stream: dial %s: %w", addr, lerr.ErrSocketFatal)
	}

	e.conn = conn
	e.sequence = 0
	e.lastConfigUs = 0
	e.configPending = true
	e.stopChan = make(chan struct{})
	e.doneChan = make(chan struct{})
	e.state = StateRunning
	e.mu.Unlock()

	go e.run()
	return nil
}

// Stop signals the pacing loop, waits up to joinTimeout for it to exit,
// emits one close packet, and closes the socket (spec.md §4.I). Stop from
// Stopped is an idempotent no-op.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if e.state == StateStopped {
		e.mu.Unlock()
		return nil
	}
	e.state = StateDraining
	stopChan := e.stopChan
	doneChan := e.doneChan
	conn := e.conn
	e.mu.Unlock()

	close(stopChan)

	var timedOut bool
	select {
	case <-doneChan:
	case <-time.After(joinTimeout):
		timedOut = true
	}

	e.mu.Lock()
	closePkt := idn.EncodeChannelClose(e.nextSeqLocked(), e.cfg)
	e.mu.Unlock()

	if _, err := conn.Write(closePkt); err != nil {
		e.recordSendError(err)
	}
	conn.Close()

	if timedOut {
		e.recordFatal(lerr.ErrShutdownTimeout)
	}

	e.mu.Lock()
	e.state = StateStopped
	e.mu.Unlock()
	return nil
}

// Stats returns a snapshot of the engine's current counters.
func (e *Engine) Stats() EngineStats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.stats
}

func (e *Engine) nextSeqLocked() uint16 {
	s := e.sequence
	e.sequence++
	return s
}

func (e *Engine) run() {
	defer close(e.doneChan)

	periodNs := int64(time.Second) / int64(e.fps)
	startNs := e.clk.NowNs()
	lastFrameNs := startNs

	for n := 0; ; n++ {
		select {
		case <-e.stopChan:
			return
		default:
		}

		f, ok := e.provider.Frame()
		if !ok {
			f = frame.Empty()
		}

		nowNs := e.clk.NowNs()
		nowUs := uint32((nowNs - startNs) / 1000)

		e.mu.Lock()
		seq := e.nextSeqLocked()
		var pkt []byte
		if e.configPending || idn.ConfigDue(e.lastConfigUs, nowUs) {
			pkt = idn.EncodeChannelDataWithConfig(seq, nowUs, e.cfg, f)
			e.lastConfigUs = nowUs
			e.configPending = false
		} else {
			pkt = idn.EncodeChannelData(seq, nowUs, e.cfg, f)
		}
		conn := e.conn
		e.mu.Unlock()

		if _, err := conn.Write(pkt); err != nil {
			e.recordSendError(err)
		} else {
			deltaMs := float64(nowNs-lastFrameNs) / float64(time.Millisecond)
			e.recordFrameSent(nowNs/int64(time.Millisecond), deltaMs)
		}
		lastFrameNs = nowNs

		target := startNs + int64(n+1)*periodNs
		if e.wait(e.clk, target, e.stopChan) {
			return
		}
	}
}

func (e *Engine) recordFrameSent(nowMs int64, deltaMs float64) {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	e.stats.FramesSent++
	e.stats.LastFrameTimeMs = nowMs
	if deltaMs > 0 {
		e.stats.ActualFPS = 1000.0 / deltaMs
	}
}

func (e *Engine) recordSendError(err error) {
	log.Printf("stream: send to %s:%d failed: %v", e.host, e.port, err)
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	e.stats.LastError = fmt.Errorf("stream: send: %w", lerr.ErrSendFailure).Error() + ": " + err.Error()
}

func (e *Engine) recordFatal(err error) {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	e.stats.Degraded = true
	e.stats.LastError = err.Error()
}
