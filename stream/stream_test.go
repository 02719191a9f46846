package stream

import (
	"net"
	"testing"
	"time"

	"github.com/kungfusheep/laserctl/clock"
	"github.com/kungfusheep/laserctl/frame"
	"github.com/kungfusheep/laserctl/idn"
	"github.com/kungfusheep/laserctl/outputcfg"
)

type constProvider struct {
	f  frame.Frame
	ok bool
}

func (c constProvider) Frame() (frame.Frame, bool) { return c.f, c.ok }

func listenLoopback(t *testing.T) (*net.UDPConn, int) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return conn, conn.LocalAddr().(*net.UDPAddr).Port
}

func testEngine(t *testing.T, fps int, provider FrameProvider) (*Engine, int) {
	t.Helper()
	listener, port := listenLoopback(t)
	t.Cleanup(func() { listener.Close() })
	cfg := idn.ChannelConfig{ServiceID: 0, ChannelID: 0, Output: outputcfg.Default()}
	e, err := New("127.0.0.1", port, fps, cfg, provider, clock.System{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, port
}

func TestNewRejectsNonPositiveFPS(t *testing.T) {
	cfg := idn.ChannelConfig{Output: outputcfg.Default()}
	if _, err := New("127.0.0.1", 7255, 0, cfg, constProvider{}, clock.System{}); err == nil {
		t.Errorf("expected error for fps=0")
	}
}

func TestEngineLifecycleStoppedRunningStopped(t *testing.T) {
	e, _ := testEngine(t, 200, constProvider{f: frame.Frame{{X: 1, Y: 1}}, ok: true})

	if e.state != StateStopped {
		t.Fatalf("expected initial state Stopped")
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	stats := e.Stats()
	if stats.FramesSent == 0 {
		t.Errorf("expected some frames sent after 30ms at 200fps")
	}

	if err := e.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if state != StateStopped {
		t.Errorf("expected Stopped after Stop, got %v", state)
	}
}

func TestStopIsIdempotentFromStopped(t *testing.T) {
	e, _ := testEngine(t, 100, constProvider{})
	if err := e.Stop(); err != nil {
		t.Errorf("Stop from Stopped should be a no-op, got error: %v", err)
	}
}

func TestDoubleStartErrors(t *testing.T) {
	e, _ := testEngine(t, 100, constProvider{f: frame.Frame{}, ok: true})
	if err := e.Start(); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	defer e.Stop()

	if err := e.Start(); err == nil {
		t.Errorf("expected error starting an already-running engine")
	}
}

func TestSequenceNumbersResetOnEachStart(t *testing.T) {
	e, _ := testEngine(t, 200, constProvider{f: frame.Frame{}, ok: true})

	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	e.Stop()

	if err := e.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	e.mu.Lock()
	seq := e.sequence
	e.mu.Unlock()
	e.Stop()

	if seq > 10 {
		t.Errorf("expected sequence to have reset near 0 on restart, got %d", seq)
	}
}

func TestMissingFrameSubstitutesEmptyKeepAlive(t *testing.T) {
	e, _ := testEngine(t, 200, constProvider{ok: false})
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(15 * time.Millisecond)
	stats := e.Stats()
	e.Stop()

	if stats.FramesSent == 0 {
		t.Errorf("expected keep-alive packets even when provider returns no frame")
	}
}
