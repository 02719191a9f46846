// Package clock provides the monotonic time source the core reads from
// (spec.md §6: now_ms()/now_ns()), with a fake implementation for
// deterministic tests — the same injected-dependency shape the teacher uses
// for client.NewClient's *http.Client parameter.
package clock

import "time"

// Clock is the external collaborator contract for wall-clock time.
type Clock interface {
	NowMs() int64
	NowNs() int64
}

// System wraps time.Now for production use.
type System struct{}

func (System) NowMs() int64 { return time.Now().UnixMilli() }
func (System) NowNs() int64 { return time.Now().UnixNano() }

// Fake is a manually-advanced clock for deterministic tests.
type Fake struct {
	ns int64
}

// NewFake returns a Fake starting at the given nanosecond instant.
func NewFake(startNs int64) *Fake {
	return &Fake{ns: startNs}
}

func (f *Fake) NowMs() int64 { return f.ns / int64(time.Millisecond) }
func (f *Fake) NowNs() int64 { return f.ns }

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.ns += int64(d)
}
