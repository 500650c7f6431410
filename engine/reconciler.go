// ABOUTME: Navigation reconciler for explicit section navigation
// ABOUTME: Optimistic active set, marker-gated eased scroll, bounded settle window

package engine

import (
	"sync"
	"time"
)

// easeOutQuint is the fixed easing of the programmatic scroll. t is clamped
// to [0, 1].
func easeOutQuint(t float64) float64 {
	if t <= 0 {
		return 0
	}

	if t >= 1 {
		return 1
	}

	u := 1 - t

	return 1 - u*u*u*u*u
}

// Reconciler accepts explicit navigation requests and serializes them
// against visibility-driven election: while a programmatic scroll is in
// flight (animation plus settle delay) the tracker discards its callbacks
// and the reconciler owns the active-section state.
type Reconciler struct {
	doc     Document
	clock   Clock
	tracker *Tracker
	debugf  func(string, ...interface{})

	duration time.Duration
	settle   time.Duration

	scrollOffset func() float64
	onNavigate   func()

	mu           sync.Mutex
	inFlight     bool
	cancelFrame  func()
	cancelSettle func()
}

// NewReconciler creates a reconciler. scrollOffset supplies the shared
// offset used by the scroll-target math; onNavigate (optional) runs on
// every accepted navigation, before the scroll starts.
func NewReconciler(doc Document, clock Clock, tracker *Tracker, duration, settle time.Duration, scrollOffset func() float64, onNavigate func(), debugf func(string, ...interface{})) *Reconciler {
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	return &Reconciler{
		doc:          doc,
		clock:        clock,
		tracker:      tracker,
		debugf:       debugf,
		duration:     duration,
		settle:       settle,
		scrollOffset: scrollOffset,
		onNavigate:   onNavigate,
	}
}

// InFlight reports whether a programmatic scroll (including its settle
// window) is in progress. The tracker probes this on every evaluation.
func (r *Reconciler) InFlight() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.inFlight
}

// GoTo navigates to a section: the active state flips synchronously before
// any animation frame runs, then a fixed-duration eased scroll brings the
// anchor to the offset line. A missing anchor is reported and skipped, the
// active state having already been set optimistically.
func (r *Reconciler) GoTo(id string) {
	r.tracker.ForceActive(id)

	if r.onNavigate != nil {
		r.onNavigate()
	}

	box, ok := r.doc.SectionBox(id)
	if !ok {
		r.debugf("[NAV] goTo %q: no mounted anchor, skipping scroll", id)

		return
	}

	r.mu.Lock()
	r.stopLocked()
	r.inFlight = true
	r.mu.Unlock()

	from := r.doc.ScrollTop()

	target := from + box.Top - r.scrollOffset()
	if target < 0 {
		target = 0
	}

	if r.duration <= 0 {
		r.doc.SetScrollTop(target)
		r.beginSettle()

		return
	}

	r.scheduleStep(r.clock.Now(), from, target)
}

// scheduleStep arms the next animation frame of the scroll stepper.
func (r *Reconciler) scheduleStep(start time.Time, from, target float64) {
	r.mu.Lock()
	if !r.inFlight {
		r.mu.Unlock()

		return
	}

	r.cancelFrame = r.clock.RequestFrame(func(now time.Time) {
		t := float64(now.Sub(start)) / float64(r.duration)
		if t >= 1 {
			r.doc.SetScrollTop(target)
			r.beginSettle()

			return
		}

		r.doc.SetScrollTop(from + (target-from)*easeOutQuint(t))
		r.scheduleStep(start, from, target)
	})
	r.mu.Unlock()
}

// beginSettle keeps the marker up for one settle window after the last
// scroll write so late visibility callbacks cannot re-elect a transient
// section.
func (r *Reconciler) beginSettle() {
	r.mu.Lock()
	if !r.inFlight {
		r.mu.Unlock()

		return
	}

	r.cancelFrame = nil
	r.cancelSettle = r.clock.AfterFunc(r.settle, func() {
		r.mu.Lock()
		r.inFlight = false
		r.cancelSettle = nil
		r.mu.Unlock()
	})
	r.mu.Unlock()
}

// Stop cancels any in-flight scroll and clears the marker. Runs on every
// cleanup path.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	r.stopLocked()
	r.mu.Unlock()
}

func (r *Reconciler) stopLocked() {
	if r.cancelFrame != nil {
		r.cancelFrame()
		r.cancelFrame = nil
	}

	if r.cancelSettle != nil {
		r.cancelSettle()
		r.cancelSettle = nil
	}

	r.inFlight = false
}
