// ABOUTME: Interfaces defining the document the engine drives
// ABOUTME: Allows clean separation and easy testing with fakes

package engine

// Document gives the engine read access to the layout it drives and the
// single scroll handle it may write. Implementations must not trigger
// layout writes from the read methods; the engine relies on a strict
// read-then-write ordering within each evaluation pass.
type Document interface {
	// Sample reads container, wrapper and sidebar geometry in one pass.
	// ok is false while any element is unmounted; the caller treats that
	// as "no-op, try again on the next signal".
	Sample() (g Geometry, ok bool)

	// SectionBox returns the anchor box for a section id in viewport
	// coordinates. ok is false when the anchor is not mounted.
	SectionBox(id string) (b Box, ok bool)

	// StickyHeight is the measured height of sticky chrome above the
	// content (a mobile nav bar, an element banner). Zero when absent.
	StickyHeight() float64

	// ScrollTop returns the current scroll position.
	ScrollTop() float64

	// SetScrollTop moves the scroll position. Only the reconciler's
	// animation stepper calls this.
	SetScrollTop(px float64)
}

// SidebarStyler receives placement writes from the applier. The applier is
// the only component that writes layout-affecting properties, and it only
// does so after the phase-change check, so implementations never see
// redundant writes.
type SidebarStyler interface {
	ApplyPlacement(p Placement)
	SetWillChange(on bool)
}
