package query

import "time"

// Timer is a cancellable single-shot timer. Stop reports whether the timer
// was stopped before firing, matching *time.Timer.Stop.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred work. The machine takes a Clock instead of calling
// time.AfterFunc directly so debounce behavior is testable without real
// wall-clock waits; see testutil.FakeClock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the production Clock backed by time.AfterFunc.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
