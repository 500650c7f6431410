// ABOUTME: Pure phase decision for the three-phase sidebar lifecycle
// ABOUTME: Maps sampled geometry plus the top offset to flowing/pinned/released

package engine

// Phase is the discrete positioning state of the sidebar.
type Phase int

// Sidebar phases: flowing (scrolls with the page), pinned (fixed at the top
// offset while content scrolls beneath), released (returned to flow,
// anchored to the container bottom).
const (
	Flowing Phase = iota
	Pinned
	Released
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Flowing:
		return "flowing"
	case Pinned:
		return "pinned"
	case Released:
		return "released"
	}

	return "unknown"
}

// Decide maps one geometry sample and the effective top offset to a phase.
// It is a pure function of its inputs; no history is consulted.
//
// The endFix test is deliberately compound. The first disjunct is the plain
// bottom-distance check. The second catches containers shorter than the
// sidebar: once the container bottom is within one viewport of sight and
// the sidebar no longer fits the remaining height, the sidebar must release
// even though the simple check has not triggered yet. For containers
// shorter than the sidebar this makes Released reachable immediately after
// Pinned with no stable pinned period; that behavior is intentional and
// covered by tests, do not "fix" it here.
func Decide(g Geometry, topOffset float64) Phase {
	startFix := g.ContainerTop <= topOffset
	if !startFix {
		return Flowing
	}

	endFix := g.ContainerBottom <= g.SidebarHeight+topOffset ||
		(g.ContainerBottom-topOffset <= g.ViewportHeight && g.ContainerHeight-g.SidebarHeight <= g.ContainerTop)
	if endFix {
		return Released
	}

	return Pinned
}
