package concolic

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidConfigError reports a bad option value at session or explorer
// start. It is fatal to the session (spec.md §7).
type InvalidConfigError struct {
	Detail string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", e.Detail)
}

// SortMismatchError reports an expression construction that received
// incompatible sorts. It is fatal only to the current call; the Recorder
// degrades to a no-op when it encounters one (spec.md §7).
type SortMismatchError struct {
	Detail string
}

func (e *SortMismatchError) Error() string {
	return fmt.Sprintf("sort mismatch: %s", e.Detail)
}

// RecorderReentrancyError reports that the per-thread reentrancy bound was
// exceeded. It is recoverable: the Recorder returns the concrete result and
// continues (spec.md §7).
type RecorderReentrancyError struct {
	Depth int
	Bound int
}

func (e *RecorderReentrancyError) Error() string {
	return fmt.Sprintf("recorder reentrancy bound exceeded: depth %d > bound %d", e.Depth, e.Bound)
}

// HostFailureError wraps an error returned by the host's execute callback.
// It is surfaced to the caller of Explore along with the partial list of
// path records collected so far (spec.md §7). A panic inside execute is not
// recovered by Explore and propagates to its caller unchanged.
type HostFailureError struct {
	Cause error
}

func (e *HostFailureError) Error() string {
	return fmt.Sprintf("host execution failed: %v", e.Cause)
}

func (e *HostFailureError) Unwrap() error {
	return e.Cause
}

// wrapHostFailure wraps err as a HostFailureError, preserving the original
// cause for errors.Cause/errors.Unwrap callers.
func wrapHostFailure(err error) error {
	return errors.WithStack(&HostFailureError{Cause: err})
}
