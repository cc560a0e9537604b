package scheduler

import "time"

// Clock is the time source and one-shot timer facility the scheduler
// runs on. f must be invoked on its own goroutine once d has elapsed.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func())
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
