// ABOUTME: Geometry snapshot types for the scroll-sync engine
// ABOUTME: Pure read-side values; sampling never mutates layout

// Package engine implements a reusable scroll-synchronized sidebar:
// three-phase sidebar placement (flowing, pinned, released), rate-limited
// re-evaluation, section visibility election and click-to-scroll
// reconciliation. One Engine instance drives one sidebar; all state is
// owned by the instance so several sidebars can coexist on a page.
package engine

// Geometry is one read pass over the scroll container, the sidebar wrapper
// and the sidebar itself. Vertical values are relative to the viewport top.
// Units are abstract pixels; the embedding layer decides what a pixel is
// (browser px, terminal rows).
type Geometry struct {
	ContainerTop    float64 // container top edge
	ContainerBottom float64 // container bottom edge
	ContainerHeight float64 // full container height
	WrapperLeft     float64 // sidebar wrapper left edge
	WrapperWidth    float64 // sidebar wrapper width
	SidebarHeight   float64 // rendered sidebar height
	ViewportHeight  float64 // visible viewport height
}

// Box is a section anchor rectangle in viewport coordinates.
type Box struct {
	Top    float64
	Bottom float64
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Bottom - b.Top
}
