// ABOUTME: Bridges the terminal layout to the scroll engine's document model
// ABOUTME: Rows map to pixels one to one; engine goroutines read through a mutex

package tui

import (
	"sync"

	"archive-browser/engine"
)

// engineEvent kinds delivered from engine callbacks to the update loop
type engineEvent int

const (
	eventRepaint engineEvent = iota
	eventCloseOverlay
)

// lineRange is a section's rendered extent within the article container
type lineRange struct {
	start  float64
	height float64
}

// docState implements engine.Document and engine.SidebarStyler over the
// terminal layout. The update loop writes layout and content; engine timer
// goroutines sample geometry and step the scroll position concurrently.
type docState struct {
	mu sync.Mutex

	ready bool

	scrollTop  float64
	viewportH  float64 // full terminal height
	bodyRows   float64 // rows available to the scrolled document
	headerRows float64 // sticky chrome overlaying the top of the screen
	leadRows   float64 // article banner rows ahead of the section container
	totalLines float64 // rendered container height

	wrapperLeft  float64
	wrapperWidth float64
	sidebarH     float64

	boxes map[string]lineRange

	placement  engine.Placement
	placed     bool
	willChange bool

	events chan engineEvent
}

func newDocState(events chan engineEvent) *docState {
	return &docState{
		boxes:  make(map[string]lineRange),
		events: events,
	}
}

// notify wakes the update loop without ever blocking a timer goroutine
func (d *docState) notify(ev engineEvent) {
	select {
	case d.events <- ev:
	default:
	}
}

// setLayout records the screen geometry after a resize
func (d *docState) setLayout(viewportH, bodyRows, headerRows, leadRows, wrapperLeft, wrapperWidth, sidebarH float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.viewportH = viewportH
	d.bodyRows = bodyRows
	d.headerRows = headerRows
	d.leadRows = leadRows
	d.wrapperLeft = wrapperLeft
	d.wrapperWidth = wrapperWidth
	d.sidebarH = sidebarH
	d.ready = viewportH > 0 && bodyRows > 0

	d.clampScrollLocked()
}

// setContent swaps in a newly rendered article
func (d *docState) setContent(totalLines float64, boxes map[string]lineRange) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.totalLines = totalLines
	d.boxes = boxes

	d.clampScrollLocked()
}

func (d *docState) maxScrollLocked() float64 {
	m := d.leadRows + d.totalLines - d.bodyRows
	if m < 0 {
		m = 0
	}

	return m
}

func (d *docState) clampScrollLocked() {
	if d.scrollTop < 0 {
		d.scrollTop = 0
	}

	if m := d.maxScrollLocked(); d.scrollTop > m {
		d.scrollTop = m
	}
}

// Sample implements engine.Document
func (d *docState) Sample() (engine.Geometry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready || d.totalLines == 0 {
		return engine.Geometry{}, false
	}

	top := d.headerRows + d.leadRows - d.scrollTop

	return engine.Geometry{
		ContainerTop:    top,
		ContainerBottom: top + d.totalLines,
		ContainerHeight: d.totalLines,
		WrapperLeft:     d.wrapperLeft,
		WrapperWidth:    d.wrapperWidth,
		SidebarHeight:   d.sidebarH,
		ViewportHeight:  d.viewportH,
	}, true
}

// SectionBox implements engine.Document
func (d *docState) SectionBox(id string) (engine.Box, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r, ok := d.boxes[id]
	if !ok {
		return engine.Box{}, false
	}

	top := d.headerRows + d.leadRows + r.start - d.scrollTop

	return engine.Box{Top: top, Bottom: top + r.height}, true
}

// StickyHeight implements engine.Document
func (d *docState) StickyHeight() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.headerRows
}

// ScrollTop implements engine.Document
func (d *docState) ScrollTop() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.scrollTop
}

// SetScrollTop implements engine.Document. Animation frames land here, so
// every write wakes the update loop for a repaint
func (d *docState) SetScrollTop(px float64) {
	d.mu.Lock()
	d.scrollTop = px
	d.clampScrollLocked()
	d.mu.Unlock()

	d.notify(eventRepaint)
}

// ApplyPlacement implements engine.SidebarStyler
func (d *docState) ApplyPlacement(p engine.Placement) {
	d.mu.Lock()
	d.placement = p
	d.placed = true
	d.mu.Unlock()

	d.notify(eventRepaint)
}

// SetWillChange implements engine.SidebarStyler
func (d *docState) SetWillChange(on bool) {
	d.mu.Lock()
	d.willChange = on

	if !on {
		d.placed = false
	}

	d.mu.Unlock()

	d.notify(eventRepaint)
}

// viewSnapshot is everything the renderer needs in one consistent read
type viewSnapshot struct {
	scrollTop  float64
	placement  engine.Placement
	placed     bool
	headerRows float64
	leadRows   float64
	totalLines float64
	sidebarH   float64
}

func (d *docState) snapshot() viewSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	return viewSnapshot{
		scrollTop:  d.scrollTop,
		placement:  d.placement,
		placed:     d.placed,
		headerRows: d.headerRows,
		leadRows:   d.leadRows,
		totalLines: d.totalLines,
		sidebarH:   d.sidebarH,
	}
}
