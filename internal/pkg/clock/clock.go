// Package clock abstracts the wall clock so proposal expiry, token lifetimes
// and roll timestamps can be pinned in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type system struct{}

func (system) Now() time.Time { return time.Now() }

// New returns the system clock
func New() Clock {
	return system{}
}

// Fixed reports T until advanced. It is not safe for concurrent Advance.
type Fixed struct {
	T time.Time
}

func (c *Fixed) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by d
func (c *Fixed) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}
