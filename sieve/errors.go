package sieve

import "errors"

var (
	// ErrConfig indicates invalid construction parameters: a reversed
	// range, an unsupported tuplet size, or sieving bounds that violate
	// the store packing preconditions. Raised before any sieving work
	// begins, never mid-sieve.
	ErrConfig = errors.New("sieve: invalid configuration")

	// ErrState indicates an operation on an engine that already finished
	// its range. Engines are single-shot; build a new one for a new range.
	ErrState = errors.New("sieve: engine already finished")
)

// errStopped signals that a consumer requested early termination. It is
// converted into a normal partial result at the boundary of the chunk it
// originated in and never escapes the public API.
var errStopped = errors.New("sieve: stopped by consumer")
