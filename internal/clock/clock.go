package clock

import "time"

// Clock abstracts the current time so generated headers are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same time.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
