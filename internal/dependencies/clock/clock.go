package clock

import "time"

// Clock is the time source for booster windows and session timestamps
type Clock interface {
	Now() time.Time
	// Until returns the duration until t, negative once t has passed
	Until(t time.Time) time.Duration
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Until returns time.Until(t)
func (c *RealClock) Until(t time.Time) time.Duration {
	return time.Until(t)
}
