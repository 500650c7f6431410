// ABOUTME: Clock abstraction for timers and animation-frame scheduling
// ABOUTME: Real implementation on time.AfterFunc; tests drive a manual clock

package engine

import "time"

// FrameInterval is the cadence of the real frame scheduler, roughly one
// 60Hz display frame.
const FrameInterval = 16 * time.Millisecond

// Clock abstracts now, delayed callbacks and frame scheduling so the
// throttle, debounce, scroll stepper and settle windows are deterministic
// under test.
type Clock interface {
	Now() time.Time

	// AfterFunc schedules fn after d on its own goroutine. The returned
	// cancel is idempotent; cancelling after the callback ran is a no-op.
	AfterFunc(d time.Duration, fn func()) (cancel func())

	// RequestFrame schedules fn for the next frame tick.
	RequestFrame(fn func(now time.Time)) (cancel func())
}

type realClock struct{}

// NewClock returns the wall clock.
func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)

	return func() { t.Stop() }
}

func (realClock) RequestFrame(fn func(now time.Time)) func() {
	t := time.AfterFunc(FrameInterval, func() { fn(time.Now()) })

	return func() { t.Stop() }
}
