package scheduler

import "time"

// Clock supplies the current time. Abstracted so dispatch matching can be
// tested at exact wall-clock minutes.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
