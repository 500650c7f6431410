// ABOUTME: Shared test fakes for the engine package
// ABOUTME: Manual clock, stub documents and a recording styler

package engine

import (
	"sync"
	"time"
)

// manualTimer is one scheduled callback on the manual clock.
type manualTimer struct {
	due       time.Time
	fn        func()
	fired     bool
	cancelled bool
}

// manualClock drives timers and frames by explicit Advance calls so
// throttle windows, scroll animations and settle delays are deterministic.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1000, 0)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, fn func()) func() {
	c.mu.Lock()
	t := &manualTimer{due: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		t.cancelled = true
		c.mu.Unlock()
	}
}

func (c *manualClock) RequestFrame(fn func(now time.Time)) func() {
	return c.AfterFunc(FrameInterval, func() { fn(c.Now()) })
}

// Advance moves time forward, firing due timers in order. Callbacks may
// schedule further timers; those fire too when they fall inside the window.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	deadline := c.now.Add(d)

	for {
		var next *manualTimer

		for _, t := range c.timers {
			if t.fired || t.cancelled || t.due.After(deadline) {
				continue
			}

			if next == nil || t.due.Before(next.due) {
				next = t
			}
		}

		if next == nil {
			break
		}

		if next.due.After(c.now) {
			c.now = next.due
		}

		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}

	c.now = deadline
	c.mu.Unlock()
}

// stubDoc serves fixed viewport-coordinate boxes. Used by tracker and
// reconciler tests where geometry does not need to react to scrolling.
type stubDoc struct {
	mu           sync.Mutex
	geometry     Geometry
	mounted      bool
	sticky       float64
	scrollTop    float64
	boxes        map[string]Box
	scrollWrites int
}

func newStubDoc() *stubDoc {
	return &stubDoc{mounted: true, boxes: map[string]Box{}}
}

func (d *stubDoc) Sample() (Geometry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.mounted {
		return Geometry{}, false
	}

	return d.geometry, true
}

func (d *stubDoc) SectionBox(id string) (Box, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.boxes[id]

	return b, ok
}

func (d *stubDoc) StickyHeight() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.sticky
}

func (d *stubDoc) ScrollTop() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.scrollTop
}

func (d *stubDoc) SetScrollTop(px float64) {
	d.mu.Lock()
	d.scrollTop = px
	d.scrollWrites++
	d.mu.Unlock()
}

// pageDoc models a virtual page: a container at contentTop holding sections
// laid out contiguously, scrolled by scrollTop. Geometry and section boxes
// derive from the scroll position the way a real layout would.
type pageDoc struct {
	mu             sync.Mutex
	mounted        bool
	contentTop     float64
	contentHeight  float64
	viewportHeight float64
	wrapperLeft    float64
	wrapperWidth   float64
	sidebarHeight  float64
	sticky         float64
	scrollTop      float64
	sections       map[string][2]float64 // id -> {offset from container top, height}
	scrollWrites   int
}

func newPageDoc() *pageDoc {
	return &pageDoc{
		mounted:        true,
		contentTop:     200,
		contentHeight:  3000,
		viewportHeight: 900,
		wrapperLeft:    62,
		wrapperWidth:   28,
		sidebarHeight:  800,
		sections: map[string][2]float64{
			"origins": {0, 1000},
			"traits":  {1000, 1000},
			"habitat": {2000, 1000},
		},
	}
}

func (d *pageDoc) Sample() (Geometry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.mounted {
		return Geometry{}, false
	}

	top := d.contentTop - d.scrollTop

	return Geometry{
		ContainerTop:    top,
		ContainerBottom: top + d.contentHeight,
		ContainerHeight: d.contentHeight,
		WrapperLeft:     d.wrapperLeft,
		WrapperWidth:    d.wrapperWidth,
		SidebarHeight:   d.sidebarHeight,
		ViewportHeight:  d.viewportHeight,
	}, true
}

func (d *pageDoc) SectionBox(id string) (Box, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sec, ok := d.sections[id]
	if !ok {
		return Box{}, false
	}

	top := d.contentTop + sec[0] - d.scrollTop

	return Box{Top: top, Bottom: top + sec[1]}, true
}

func (d *pageDoc) StickyHeight() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.sticky
}

func (d *pageDoc) ScrollTop() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.scrollTop
}

func (d *pageDoc) SetScrollTop(px float64) {
	d.mu.Lock()
	if px < 0 {
		px = 0
	}

	d.scrollTop = px
	d.scrollWrites++
	d.mu.Unlock()
}

func (d *pageDoc) descriptors() []SectionDescriptor {
	return []SectionDescriptor{
		{ID: "origins", OrderIndex: 0},
		{ID: "traits", OrderIndex: 1},
		{ID: "habitat", OrderIndex: 2},
	}
}

// recordStyler records every placement write and hint toggle.
type recordStyler struct {
	mu         sync.Mutex
	placements []Placement
	hints      []bool
}

func (s *recordStyler) ApplyPlacement(p Placement) {
	s.mu.Lock()
	s.placements = append(s.placements, p)
	s.mu.Unlock()
}

func (s *recordStyler) SetWillChange(on bool) {
	s.mu.Lock()
	s.hints = append(s.hints, on)
	s.mu.Unlock()
}

func (s *recordStyler) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.placements)
}

func (s *recordStyler) lastPlacement() (Placement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.placements) == 0 {
		return Placement{}, false
	}

	return s.placements[len(s.placements)-1], true
}
