// ABOUTME: Position applier realizing a phase as minimal placement writes
// ABOUTME: Short-circuits on unchanged phase so styles are never rewritten per frame

package engine

// Length is a CSS-like length that is either auto or a pixel value.
type Length struct {
	Auto bool
	Px   float64
}

// Auto returns the auto length.
func Auto() Length {
	return Length{Auto: true}
}

// Px returns a pixel length.
func Px(v float64) Length {
	return Length{Px: v}
}

// PositionMode mirrors the positioning scheme the placement needs.
type PositionMode int

// Positioning schemes used by the three phases.
const (
	PositionRelative PositionMode = iota
	PositionFixed
	PositionAbsolute
)

// Placement is the full set of positioning properties for one phase.
type Placement struct {
	Position PositionMode
	Top      Length
	Left     Length
	Width    Length
	Bottom   Length
}

// Applier writes placements through a SidebarStyler. It remembers the last
// applied phase purely to skip redundant writes; no other history is kept.
type Applier struct {
	styler  SidebarStyler
	last    Phase
	applied bool
	hinted  bool
}

// NewApplier creates an applier writing through styler.
func NewApplier(styler SidebarStyler) *Applier {
	return &Applier{styler: styler}
}

// Apply realizes phase, writing styles only when it differs from the last
// applied phase. Returns true when a write happened.
func (a *Applier) Apply(phase Phase, g Geometry, topOffset float64) bool {
	if a.applied && phase == a.last {
		return false
	}

	var p Placement

	switch phase {
	case Flowing:
		p = Placement{Position: PositionRelative, Top: Px(0), Left: Px(0), Width: Auto(), Bottom: Auto()}
	case Pinned:
		p = Placement{Position: PositionFixed, Top: Px(topOffset), Left: Px(g.WrapperLeft), Width: Px(g.WrapperWidth), Bottom: Auto()}
	case Released:
		p = Placement{Position: PositionAbsolute, Top: Auto(), Left: Px(0), Width: Auto(), Bottom: Px(0)}
	}

	// The renderer hint goes up on first entry into the responsive regime
	// and stays up until teardown.
	if !a.hinted {
		a.styler.SetWillChange(true)
		a.hinted = true
	}

	a.styler.ApplyPlacement(p)
	a.last = phase
	a.applied = true

	return true
}

// Last returns the last applied phase. ok is false before the first apply.
func (a *Applier) Last() (phase Phase, ok bool) {
	return a.last, a.applied
}

// Teardown clears the renderer hint and forgets the applied phase so a
// remount starts fresh. Safe to call repeatedly.
func (a *Applier) Teardown() {
	if a.hinted {
		a.styler.SetWillChange(false)
		a.hinted = false
	}

	a.applied = false
}
