// ABOUTME: Tests for the position applier
// ABOUTME: Verifies the placement table, write short-circuit and hint lifecycle

package engine

import "testing"

func sampleGeometry() Geometry {
	return Geometry{
		ContainerTop:    50,
		ContainerBottom: 3050,
		ContainerHeight: 3000,
		WrapperLeft:     62,
		WrapperWidth:    28,
		SidebarHeight:   800,
		ViewportHeight:  900,
	}
}

func TestApplierPlacementTable(t *testing.T) {
	g := sampleGeometry()

	tests := []struct {
		name  string
		phase Phase
		want  Placement
	}{
		{
			name:  "flowing",
			phase: Flowing,
			want:  Placement{Position: PositionRelative, Top: Px(0), Left: Px(0), Width: Auto(), Bottom: Auto()},
		},
		{
			name:  "pinned",
			phase: Pinned,
			want:  Placement{Position: PositionFixed, Top: Px(100), Left: Px(62), Width: Px(28), Bottom: Auto()},
		},
		{
			name:  "released",
			phase: Released,
			want:  Placement{Position: PositionAbsolute, Top: Auto(), Left: Px(0), Width: Auto(), Bottom: Px(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			styler := &recordStyler{}
			a := NewApplier(styler)

			if !a.Apply(tt.phase, g, 100) {
				t.Fatal("first Apply() returned false, want a write")
			}

			got, ok := styler.lastPlacement()
			if !ok {
				t.Fatal("no placement written")
			}

			if got != tt.want {
				t.Errorf("placement = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApplierSkipsRedundantWrites(t *testing.T) {
	styler := &recordStyler{}
	a := NewApplier(styler)
	g := sampleGeometry()

	a.Apply(Pinned, g, 100)

	for range 5 {
		if a.Apply(Pinned, g, 100) {
			t.Fatal("Apply() wrote styles for an unchanged phase")
		}
	}

	if styler.writeCount() != 1 {
		t.Errorf("write count = %d, want 1", styler.writeCount())
	}

	if !a.Apply(Released, g, 100) {
		t.Error("Apply() skipped a genuine phase change")
	}
}

func TestApplierReappliesAfterTeardown(t *testing.T) {
	styler := &recordStyler{}
	a := NewApplier(styler)
	g := sampleGeometry()

	a.Apply(Pinned, g, 100)
	a.Teardown()

	if !a.Apply(Pinned, g, 100) {
		t.Error("Apply() after Teardown() skipped the write; remounts must start fresh")
	}
}

func TestApplierWillChangeLifecycle(t *testing.T) {
	styler := &recordStyler{}
	a := NewApplier(styler)
	g := sampleGeometry()

	a.Apply(Flowing, g, 100)
	a.Apply(Pinned, g, 100)
	a.Teardown()
	a.Teardown() // repeat must not re-toggle

	want := []bool{true, false}
	if len(styler.hints) != len(want) {
		t.Fatalf("hint toggles = %v, want %v", styler.hints, want)
	}

	for i, h := range want {
		if styler.hints[i] != h {
			t.Fatalf("hint toggles = %v, want %v", styler.hints, want)
		}
	}

	if _, ok := a.Last(); ok {
		t.Error("Last() reports an applied phase after Teardown()")
	}
}
