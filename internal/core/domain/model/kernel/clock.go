package kernel

import "time"

// Clock abstracts the source of current time so that domain objects which
// timestamp records (e.g. stock movements) stay deterministic in tests.
//
// Production code uses SystemClock; tests supply a fixed implementation.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// NewSystemClock creates a Clock that reads the wall clock.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current wall-clock time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock is a Clock that always returns the same instant.
// Intended for tests that assert on recorded timestamps.
type FixedClock struct {
	instant time.Time
}

// NewFixedClock creates a Clock pinned to the given instant.
func NewFixedClock(instant time.Time) FixedClock {
	return FixedClock{instant: instant}
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time {
	return c.instant
}
