package ports

import "time"

// TimeProvider supplies the current time; tests substitute a fixed clock
type TimeProvider interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// NewSystemClock returns the wall clock as a TimeProvider
func NewSystemClock() TimeProvider {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}
