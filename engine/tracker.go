// ABOUTME: Section visibility tracker electing the single active section
// ABOUTME: Ratio-sorted election over the active band, gated by the scroll marker

package engine

import (
	"math"
	"sort"
	"sync"
)

// SectionDescriptor identifies one navigable content section. The anchor
// itself is owned by the rendering layer and referenced weakly by id.
type SectionDescriptor struct {
	ID         string
	OrderIndex int
}

type observeState int

const (
	notObserved observeState = iota
	observed
)

// Tracker infers the active section from viewport geometry, independent of
// the pinning logic. Election happens against the "active band": the strip
// from the scroll-offset line down to a configured fraction of the
// viewport, so only sections crossing near the top qualify.
type Tracker struct {
	doc    Document
	debugf func(string, ...interface{})

	mu         sync.Mutex
	sections   []SectionDescriptor
	state      map[string]observeState
	active     string
	warned     map[string]bool
	onChange   func(id string)
	suppressed func() bool
}

// NewTracker creates a tracker reading anchors from doc. onChange fires at
// most once per actual active-section change; suppressed is probed on every
// evaluation and discards the whole pass when true.
func NewTracker(doc Document, debugf func(string, ...interface{}), onChange func(id string), suppressed func() bool) *Tracker {
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	return &Tracker{
		doc:        doc,
		debugf:     debugf,
		state:      map[string]observeState{},
		warned:     map[string]bool{},
		onChange:   onChange,
		suppressed: suppressed,
	}
}

// SetSections re-subscribes the tracker to a new section list. The current
// active id survives when it still exists in the new list, otherwise it is
// cleared without firing the change callback (there is no section to
// report).
func (t *Tracker) SetSections(sections []SectionDescriptor) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sections = append([]SectionDescriptor(nil), sections...)
	t.state = make(map[string]observeState, len(sections))
	t.warned = map[string]bool{}

	if t.active == "" {
		return
	}

	for _, sec := range t.sections {
		if sec.ID == t.active {
			return
		}
	}

	t.active = ""
}

// Active returns the currently elected section id, or "" when none has
// been elected yet.
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.active
}

// ForceActive sets the active section directly, bypassing election. The
// reconciler owns the active state through this during its programmatic
// window. Fires the change callback only on an actual change.
func (t *Tracker) ForceActive(id string) {
	t.mu.Lock()
	if id == t.active {
		t.mu.Unlock()

		return
	}

	t.active = id
	cb := t.onChange
	t.mu.Unlock()

	if cb != nil {
		cb(id)
	}
}

type candidate struct {
	id      string
	order   int
	ratio   float64
	topDist float64
}

// Evaluate runs one visibility pass. scrollOffset is the shared offset line
// (identical to the decider's start-fix threshold); bandExclusion is the
// fraction of the viewport excluded at the bottom of the active band.
//
// Election: intersecting entries sorted by intersection ratio descending,
// ties broken by smaller distance of the entry's top edge to the offset
// line, then by order index so the result is deterministic. Zero
// intersecting entries leave the previous active section in place.
func (t *Tracker) Evaluate(viewportHeight, scrollOffset, bandExclusion float64) {
	t.mu.Lock()

	if t.suppressed != nil && t.suppressed() {
		t.mu.Unlock()

		return
	}

	bandTop := scrollOffset
	bandBottom := viewportHeight * (1 - bandExclusion)
	if bandBottom < bandTop {
		// Degenerate viewport; collapse the band to the offset line so a
		// section spanning it can still win.
		bandBottom = bandTop
	}

	var cands []candidate

	for _, sec := range t.sections {
		box, ok := t.doc.SectionBox(sec.ID)
		if !ok {
			t.state[sec.ID] = notObserved

			if !t.warned[sec.ID] {
				t.warned[sec.ID] = true
				t.debugf("[TRACKER] section %q has no mounted anchor, skipping", sec.ID)
			}

			continue
		}

		t.state[sec.ID] = observed

		height := box.Height()
		if height <= 0 {
			continue
		}

		visTop := math.Max(box.Top, bandTop)
		visBottom := math.Min(box.Bottom, bandBottom)

		if visBottom < visTop {
			continue
		}

		ratio := (visBottom - visTop) / height
		if bandBottom == bandTop {
			// Collapsed band: membership counts, ratio carries no signal.
			ratio = 0
		}

		cands = append(cands, candidate{
			id:      sec.ID,
			order:   sec.OrderIndex,
			ratio:   ratio,
			topDist: math.Abs(box.Top - bandTop),
		})
	}

	if len(cands) == 0 {
		t.mu.Unlock()

		return
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].ratio != cands[j].ratio {
			return cands[i].ratio > cands[j].ratio
		}

		if cands[i].topDist != cands[j].topDist {
			return cands[i].topDist < cands[j].topDist
		}

		return cands[i].order < cands[j].order
	})

	winner := cands[0].id
	if winner == t.active {
		t.mu.Unlock()

		return
	}

	t.active = winner
	cb := t.onChange
	t.mu.Unlock()

	if cb != nil {
		cb(winner)
	}
}
