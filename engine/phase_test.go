// ABOUTME: Tests for the pure phase decider
// ABOUTME: Pins the startFix/endFix formula including the short-container release

package engine

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		g         Geometry
		topOffset float64
		want      Phase
	}{
		{
			name: "container below offset line stays flowing",
			g: Geometry{
				ContainerTop:    200,
				ContainerBottom: 3200,
				ContainerHeight: 3000,
				SidebarHeight:   800,
				ViewportHeight:  900,
			},
			topOffset: 100,
			want:      Flowing,
		},
		{
			name: "container top just past offset pins",
			g: Geometry{
				ContainerTop:    50,
				ContainerBottom: 3050,
				ContainerHeight: 3000,
				SidebarHeight:   800,
				ViewportHeight:  900,
			},
			topOffset: 100,
			want:      Pinned,
		},
		{
			name: "container top exactly at offset pins",
			g: Geometry{
				ContainerTop:    100,
				ContainerBottom: 3100,
				ContainerHeight: 3000,
				SidebarHeight:   800,
				ViewportHeight:  900,
			},
			topOffset: 100,
			want:      Pinned,
		},
		{
			name: "bottom within sidebar reach releases",
			g: Geometry{
				ContainerTop:    -2150,
				ContainerBottom: 850,
				ContainerHeight: 3000,
				SidebarHeight:   800,
				ViewportHeight:  900,
			},
			topOffset: 100,
			want:      Released,
		},
		{
			// Second disjunct only: bottom is further than the sidebar
			// reach but within one viewport, and the sidebar no longer
			// fits the remaining height.
			name: "bottom within one viewport and sidebar no longer fits releases",
			g: Geometry{
				ContainerTop:    60,
				ContainerBottom: 1160,
				ContainerHeight: 1100,
				SidebarHeight:   1050,
				ViewportHeight:  1200,
			},
			topOffset: 100,
			want:      Released,
		},
		{
			name: "bottom within one viewport but sidebar still fits stays pinned",
			g: Geometry{
				ContainerTop:    -2100,
				ContainerBottom: 900,
				ContainerHeight: 3000,
				SidebarHeight:   800,
				ViewportHeight:  900,
			},
			topOffset: 100,
			want:      Pinned,
		},
		{
			name: "zero offset flows until top crosses zero",
			g: Geometry{
				ContainerTop:    1,
				ContainerBottom: 3001,
				ContainerHeight: 3000,
				SidebarHeight:   800,
				ViewportHeight:  900,
			},
			topOffset: 0,
			want:      Flowing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.g, tt.topOffset)
			if got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Containers shorter than the sidebar release as soon as they pin; there is
// no stable pinned period. That is the documented behavior, not a bug.
func TestDecideShortContainerReleasesImmediately(t *testing.T) {
	g := Geometry{
		ContainerTop:    100,
		ContainerBottom: 500,
		ContainerHeight: 400,
		SidebarHeight:   800,
		ViewportHeight:  900,
	}

	if got := Decide(g, 100); got != Released {
		t.Errorf("short container at offset line: Decide() = %v, want %v", got, Released)
	}

	// One pixel earlier it is still flowing, so the pinned phase is skipped
	// entirely on the way down.
	g.ContainerTop = 101
	g.ContainerBottom = 501

	if got := Decide(g, 100); got != Flowing {
		t.Errorf("short container above offset line: Decide() = %v, want %v", got, Flowing)
	}
}

func TestDecideIsPure(t *testing.T) {
	g := Geometry{
		ContainerTop:    50,
		ContainerBottom: 3050,
		ContainerHeight: 3000,
		SidebarHeight:   800,
		ViewportHeight:  900,
	}

	first := Decide(g, 100)

	for range 10 {
		if got := Decide(g, 100); got != first {
			t.Fatalf("Decide() not pure: got %v after %v", got, first)
		}
	}
}
