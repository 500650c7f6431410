// ABOUTME: Rate limiting and subscription lifecycle for engine re-evaluation
// ABOUTME: Leading+trailing throttle for scroll, trailing debounce for resize

package engine

import (
	"sync"
	"time"
)

// throttle coalesces a burst of triggers to at most one fire per interval,
// firing on the leading edge and once more on the trailing edge when
// triggers arrived mid-window.
type throttle struct {
	clock    Clock
	interval time.Duration
	fn       func()

	mu       sync.Mutex
	lastFire time.Time
	pending  bool
	cancel   func()
}

func newThrottle(clock Clock, interval time.Duration, fn func()) *throttle {
	return &throttle{clock: clock, interval: interval, fn: fn}
}

// Trigger fires immediately when the window is open, otherwise arms one
// trailing fire at the end of the current window.
func (t *throttle) Trigger() {
	t.mu.Lock()

	now := t.clock.Now()
	elapsed := now.Sub(t.lastFire)

	if elapsed >= t.interval && !t.pending {
		t.lastFire = now
		t.mu.Unlock()
		t.fn()

		return
	}

	if !t.pending {
		t.pending = true

		wait := t.interval - elapsed
		if wait < 0 {
			wait = 0
		}

		t.cancel = t.clock.AfterFunc(wait, t.trailingFire)
	}

	t.mu.Unlock()
}

func (t *throttle) trailingFire() {
	t.mu.Lock()
	if !t.pending {
		// Stopped between timer fire and lock acquisition.
		t.mu.Unlock()

		return
	}

	t.pending = false
	t.cancel = nil
	t.lastFire = t.clock.Now()
	t.mu.Unlock()

	t.fn()
}

// Stop cancels any armed trailing fire.
func (t *throttle) Stop() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}

	t.pending = false
	t.mu.Unlock()
}

// debounce trails the last trigger by the full delay; there is no leading
// fire. Intermediate triggers simply re-arm the timer.
type debounce struct {
	clock Clock
	delay time.Duration
	fn    func()

	mu     sync.Mutex
	armed  bool
	cancel func()
}

func newDebounce(clock Clock, delay time.Duration, fn func()) *debounce {
	return &debounce{clock: clock, delay: delay, fn: fn}
}

// Trigger re-arms the trailing timer.
func (d *debounce) Trigger() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}

	d.armed = true
	d.cancel = d.clock.AfterFunc(d.delay, d.fire)
	d.mu.Unlock()
}

func (d *debounce) fire() {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()

		return
	}

	d.armed = false
	d.cancel = nil
	d.mu.Unlock()

	d.fn()
}

// Stop cancels any armed fire.
func (d *debounce) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	d.armed = false
	d.mu.Unlock()
}

// Scheduler owns the scroll/resize subscription lifecycle and turns raw
// signals into evaluation passes at a bounded cadence. Scroll signals are
// throttled and then deferred into the next frame so sampling batches with
// rendering; resize and content-change signals share the slower debounce
// because neither is time-critical.
type Scheduler struct {
	clock Clock
	pass  func()

	scroll *throttle
	resize *debounce

	mu          sync.Mutex
	enabled     bool
	frameCancel func()
}

// NewScheduler creates a detached scheduler; Enable attaches it.
func NewScheduler(clock Clock, throttleEvery, debounceBy time.Duration, pass func()) *Scheduler {
	s := &Scheduler{clock: clock, pass: pass}
	s.scroll = newThrottle(clock, throttleEvery, s.queueFrame)
	s.resize = newDebounce(clock, debounceBy, s.queueFrame)

	return s
}

// queueFrame defers one evaluation pass into the next frame. At most one
// frame is outstanding; later requests coalesce into it.
func (s *Scheduler) queueFrame() {
	s.mu.Lock()
	if !s.enabled || s.frameCancel != nil {
		s.mu.Unlock()

		return
	}

	s.frameCancel = s.clock.RequestFrame(func(time.Time) {
		s.mu.Lock()
		s.frameCancel = nil
		enabled := s.enabled
		s.mu.Unlock()

		if enabled {
			s.pass()
		}
	})
	s.mu.Unlock()
}

// OnScroll rate-limits scroll-driven re-evaluation.
func (s *Scheduler) OnScroll() {
	s.mu.Lock()
	enabled := s.enabled
	s.mu.Unlock()

	if enabled {
		s.scroll.Trigger()
	}
}

// OnResize coalesces resize-driven re-evaluation.
func (s *Scheduler) OnResize() {
	s.mu.Lock()
	enabled := s.enabled
	s.mu.Unlock()

	if enabled {
		s.resize.Trigger()
	}
}

// OnContentChange handles content growth not caused by a window resize
// (dynamic loads, live file edits). It rides the resize path.
func (s *Scheduler) OnContentChange() {
	s.OnResize()
}

// Enable attaches the scheduler.
func (s *Scheduler) Enable() {
	s.mu.Lock()
	s.enabled = true
	s.mu.Unlock()
}

// Disable detaches the scheduler and cancels every in-flight timer and
// frame. It runs on every cleanup path and is safe to call repeatedly.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	s.enabled = false

	if s.frameCancel != nil {
		s.frameCancel()
		s.frameCancel = nil
	}
	s.mu.Unlock()

	s.scroll.Stop()
	s.resize.Stop()
}

// Enabled reports whether the scheduler is attached.
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enabled
}
