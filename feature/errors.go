package feature

import (
	"github.com/cockroachdb/errors"
)

// Sentinel error kinds. Callers classify errors with errors.Is against
// these rather than comparing strings.
var (
	// ErrInvalidArg is returned for empty feature/aggregate names, nil
	// models, and nil subscriber callbacks.
	ErrInvalidArg = errors.New("feature: invalid argument")

	// ErrOutOfMemory is retained for API parity with callers that classify
	// allocation failures explicitly. No code path in this package can
	// produce it: Go's allocator has no recoverable realloc-failure
	// contract, so make()/append() either succeed or the runtime panics
	// (unrecoverable by design).
	ErrOutOfMemory = errors.New("feature: out of memory")

	// ErrAlreadyWritten is returned when a cell has already been written.
	ErrAlreadyWritten = errors.New("feature: cell already written")

	// ErrConflict is returned when an aggregate is re-appended with a
	// different value than its existing one, or a model is mounted twice.
	ErrConflict = errors.New("feature: conflicting value")

	// ErrNotFound is returned for unknown features, unwritten cells, unknown
	// aggregate names, and unknown models at unmount.
	ErrNotFound = errors.New("feature: not found")

	// ErrNotReady is returned by metadata propagation when a feature is
	// still missing its score for the requested frame.
	ErrNotReady = errors.New("feature: not ready")
)

func errAlreadyWritten(name string, index uint32) error {
	return errors.Wrapf(ErrAlreadyWritten, "feature %q at index %d", name, index)
}

func errNotFoundIndex(name string, index uint32) error {
	return errors.Wrapf(ErrNotFound, "feature %q has no score at index %d", name, index)
}

func errNotFoundName(name string) error {
	return errors.Wrapf(ErrNotFound, "aggregate %q", name)
}

func errConflictAggregate(name string, existing, attempted float64) error {
	return errors.Wrapf(ErrConflict, "aggregate %q already set to %v, attempted %v", name, existing, attempted)
}
