// ABOUTME: Engine instance tying sampler, decider, applier, scheduler, tracker, reconciler
// ABOUTME: Owns all mutable state per instance; construction wires, Stop tears down

package engine

import (
	"sync"
	"time"
)

// Default timings and band geometry. Throttling at ~8ms tracks fast
// scrolling at roughly double frame rate without saturating the frame
// budget; the resize debounce trails the last signal because resizing only
// needs eventual consistency; the settle delay must cover at least one
// visibility-callback cycle (one frame).
const (
	DefaultThrottleEvery  = 8 * time.Millisecond
	DefaultResizeDebounce = 100 * time.Millisecond
	DefaultScrollDuration = 350 * time.Millisecond
	DefaultSettleDelay    = 80 * time.Millisecond
	DefaultBandExclusion  = 0.8
)

// Config tunes one engine instance.
type Config struct {
	// TopOffset is externally reserved space above the container (a page
	// level fixed header). The measured sticky height of the document is
	// added on top; the sum feeds the decider threshold, the tracker band
	// and the scroll-target math identically.
	TopOffset float64

	// BandExclusion is the fraction of the viewport excluded at the bottom
	// of the tracker's active band. Zero means DefaultBandExclusion.
	BandExclusion float64

	ThrottleEvery  time.Duration
	ResizeDebounce time.Duration
	ScrollDuration time.Duration
	SettleDelay    time.Duration

	// OnActiveChange fires with the new active section id, at most once
	// per actual change. Optional.
	OnActiveChange func(id string)

	// OnMobileNavigate runs when a navigation is accepted while the layout
	// is in mobile mode (closing an overlay menu, typically). Optional.
	OnMobileNavigate func()

	// Debugf receives non-fatal diagnostics. Optional.
	Debugf func(string, ...interface{})
}

func (c Config) withDefaults() Config {
	if c.ThrottleEvery <= 0 {
		c.ThrottleEvery = DefaultThrottleEvery
	}

	if c.ResizeDebounce <= 0 {
		c.ResizeDebounce = DefaultResizeDebounce
	}

	if c.ScrollDuration <= 0 {
		c.ScrollDuration = DefaultScrollDuration
	}

	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}

	if c.BandExclusion <= 0 || c.BandExclusion >= 1 {
		c.BandExclusion = DefaultBandExclusion
	}

	if c.Debugf == nil {
		c.Debugf = func(string, ...interface{}) {}
	}

	return c
}

// Engine is one scroll-synchronized sidebar instance. It keeps the sidebar
// attached to its container through the flowing/pinned/released phases and
// independently elects the active content section, reconciling explicit
// navigation against scroll-driven election.
type Engine struct {
	cfg   Config
	doc   Document
	clock Clock

	applier *Applier
	sched   *Scheduler
	tracker *Tracker
	recon   *Reconciler

	// wmu serializes placement writes: evaluate runs on timer goroutines
	// while Stop/SetMobile arrive from the embedding layer.
	wmu sync.Mutex

	mu         sync.Mutex
	started    bool
	mobile     bool
	phase      Phase
	phaseKnown bool
}

// New wires an engine over doc and styler. Nothing is attached until
// Start; clock may be nil for the wall clock.
func New(cfg Config, doc Document, styler SidebarStyler, clock Clock) *Engine {
	cfg = cfg.withDefaults()

	if clock == nil {
		clock = NewClock()
	}

	e := &Engine{
		cfg:     cfg,
		doc:     doc,
		clock:   clock,
		applier: NewApplier(styler),
	}

	e.tracker = NewTracker(doc, cfg.Debugf, cfg.OnActiveChange, func() bool { return e.recon.InFlight() })
	e.recon = NewReconciler(doc, clock, e.tracker, cfg.ScrollDuration, cfg.SettleDelay, e.scrollOffset, e.mobileNavigate, cfg.Debugf)
	e.sched = NewScheduler(clock, cfg.ThrottleEvery, cfg.ResizeDebounce, e.evaluate)

	return e
}

// scrollOffset is the one shared offset: the configured external constant
// plus the measured sticky chrome height, never negative. Decider, tracker
// and reconciler all read it through here; a private copy anywhere would
// let phase, active section and scroll target disagree.
func (e *Engine) scrollOffset() float64 {
	off := e.cfg.TopOffset + e.doc.StickyHeight()
	if off < 0 {
		off = 0
	}

	return off
}

func (e *Engine) mobileNavigate() {
	e.mu.Lock()
	mobile := e.mobile
	e.mu.Unlock()

	if mobile && e.cfg.OnMobileNavigate != nil {
		e.cfg.OnMobileNavigate()
	}
}

// evaluate is the single pass: sample, decide, apply, then track. Reads
// strictly precede the placement write; the tracker runs off the same
// sample's offset so the two subsystems never see different thresholds.
func (e *Engine) evaluate() {
	e.mu.Lock()
	if !e.started || e.mobile {
		e.mu.Unlock()

		return
	}
	e.mu.Unlock()

	g, ok := e.doc.Sample()
	if !ok {
		// Unready geometry: skip silently, the next signal retries.
		return
	}

	off := e.scrollOffset()
	ph := Decide(g, off)

	e.wmu.Lock()
	e.applier.Apply(ph, g, off)
	e.wmu.Unlock()

	e.mu.Lock()
	e.phase = ph
	e.phaseKnown = true
	e.mu.Unlock()

	e.tracker.Evaluate(g.ViewportHeight, off, e.cfg.BandExclusion)
}

// Start attaches the engine. In mobile mode the scheduler stays detached
// (pinning semantics apply to the two-column layout only) but navigation
// and section state still work.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()

		return
	}

	e.started = true
	mobile := e.mobile
	e.mu.Unlock()

	if !mobile {
		e.sched.Enable()
		e.evaluate()
	}
}

// Stop detaches everything: in-flight frames, timers, observers and the
// renderer hint. Unconditional; safe on every cleanup path and repeatable.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.started = false
	e.phaseKnown = false
	e.mu.Unlock()

	e.recon.Stop()
	e.sched.Disable()

	e.wmu.Lock()
	e.applier.Teardown()
	e.wmu.Unlock()
}

// SetMobile feeds the engine the external single-column signal. Switching
// to mobile detaches listeners and clears the placement; switching back
// re-attaches and re-evaluates immediately.
func (e *Engine) SetMobile(mobile bool) {
	e.mu.Lock()
	if e.mobile == mobile {
		e.mu.Unlock()

		return
	}

	e.mobile = mobile
	started := e.started
	e.mu.Unlock()

	if !started {
		return
	}

	if mobile {
		e.sched.Disable()

		e.wmu.Lock()
		e.applier.Teardown()
		e.wmu.Unlock()

		e.mu.Lock()
		e.phaseKnown = false
		e.mu.Unlock()

		return
	}

	e.sched.Enable()
	e.evaluate()
}

// SetSections re-subscribes the tracker to a changed section list and
// forces a re-evaluation so the election reflects the new anchors.
func (e *Engine) SetSections(sections []SectionDescriptor) {
	e.tracker.SetSections(sections)
	e.sched.OnContentChange()
}

// OnScroll is the raw scroll signal from the embedding layer.
func (e *Engine) OnScroll() {
	e.sched.OnScroll()
}

// OnResize is the raw resize signal from the embedding layer.
func (e *Engine) OnResize() {
	e.sched.OnResize()
}

// OnContentChange reports content growth the engine could not observe via
// resize (dynamic loads, live edits).
func (e *Engine) OnContentChange() {
	e.sched.OnContentChange()
}

// Reset forces an immediate synchronous re-evaluation after an external
// layout change the engine could not observe.
func (e *Engine) Reset() {
	e.evaluate()
}

// GoTo navigates to a section id; see Reconciler.GoTo.
func (e *Engine) GoTo(id string) {
	e.recon.GoTo(id)
}

// Phase returns the last applied sidebar phase. known is false before the
// first evaluation and while detached (mobile, stopped).
func (e *Engine) Phase() (phase Phase, known bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.phase, e.phaseKnown
}

// ActiveSection returns the current active section id, "" when none.
func (e *Engine) ActiveSection() string {
	return e.tracker.Active()
}

// Navigating reports whether a programmatic scroll is in flight.
func (e *Engine) Navigating() bool {
	return e.recon.InFlight()
}
