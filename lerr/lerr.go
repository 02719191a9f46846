// Package lerr holds the sentinel error values shared across the core's
// error taxonomy (spec.md §7), so callers can errors.Is against a stable
// value regardless of which package raised it — the same role client.Error
// plays for Hue API errors in the teacher repo, just centralized instead of
// per-response.
package lerr

import "errors"

var (
	// ErrInvalidConfig covers bad bit depths (outputcfg.New), FPS <= 0
	// (stream.New) and starting an already-running engine. Raised before an
	// engine runs; prevents start. Curves are not validated: a malformed
	// curve never raises this error.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrSendFailure wraps a single UDP send error. Logged and non-fatal.
	ErrSendFailure = errors.New("send failure")

	// ErrSocketFatal covers bind/create/close failure. The owning engine
	// enters a degraded state; the supervisor may restart it.
	ErrSocketFatal = errors.New("socket fatal")

	// ErrSnapshotInconsistency covers a world snapshot referencing
	// nonexistent cues/cells. The frame provider returns no frame for this
	// tick rather than crashing.
	ErrSnapshotInconsistency = errors.New("snapshot inconsistency")

	// ErrShutdownTimeout covers a streaming thread failing to join within
	// the bounded stop window; the socket is force-closed.
	ErrShutdownTimeout = errors.New("shutdown timeout")
)
