package workspace

import "time"

// Clock abstracts wall time so merge stamping and autosave floors can be
// driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler schedules a single deferred callback. The debounce logic owns at
// most one outstanding timer at a time.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func NewClock() Clock {
	return systemClock{}
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func NewScheduler() Scheduler {
	return systemScheduler{}
}
