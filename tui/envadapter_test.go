// ABOUTME: Tests for the terminal document adapter
// ABOUTME: Geometry sampling, scroll clamping and non-blocking event delivery

package tui

import (
	"testing"

	"archive-browser/engine"
)

func adapterFixture() *docState {
	d := newDocState(make(chan engineEvent, 16))

	// 40-row terminal: 2 header, 36 body, 2 footer
	d.setLayout(40, 36, 2, 3, 62, 28, 10)
	d.setContent(100, map[string]lineRange{
		"origins": {start: 0, height: 30},
		"traits":  {start: 30, height: 70},
	})

	return d
}

func TestDocStateSampleGeometry(t *testing.T) {
	d := adapterFixture()

	g, ok := d.Sample()
	if !ok {
		t.Fatal("Sample() not ok with layout and content set")
	}

	want := engine.Geometry{
		ContainerTop:    5, // header 2 + lead 3
		ContainerBottom: 105,
		ContainerHeight: 100,
		WrapperLeft:     62,
		WrapperWidth:    28,
		SidebarHeight:   10,
		ViewportHeight:  40,
	}

	if g != want {
		t.Errorf("Sample() = %+v, want %+v", g, want)
	}

	d.SetScrollTop(10)

	g, _ = d.Sample()
	if g.ContainerTop != -5 || g.ContainerBottom != 95 {
		t.Errorf("container = [%v, %v] at scroll 10, want [-5, 95]", g.ContainerTop, g.ContainerBottom)
	}
}

func TestDocStateSampleNotReady(t *testing.T) {
	d := newDocState(make(chan engineEvent, 1))

	if _, ok := d.Sample(); ok {
		t.Error("Sample() ok before any layout")
	}

	d.setLayout(40, 36, 2, 3, 62, 28, 10)

	if _, ok := d.Sample(); ok {
		t.Error("Sample() ok with no content")
	}
}

func TestDocStateSectionBox(t *testing.T) {
	d := adapterFixture()

	b, ok := d.SectionBox("traits")
	if !ok {
		t.Fatal("SectionBox(traits) not ok")
	}

	// header 2 + lead 3 + start 30
	if b.Top != 35 || b.Bottom != 105 {
		t.Errorf("box = [%v, %v], want [35, 105]", b.Top, b.Bottom)
	}

	d.SetScrollTop(20)

	if b, _ := d.SectionBox("traits"); b.Top != 15 {
		t.Errorf("box top = %v at scroll 20, want 15", b.Top)
	}

	if _, ok := d.SectionBox("ghost"); ok {
		t.Error("SectionBox ok for an unknown id")
	}
}

func TestDocStateScrollClamping(t *testing.T) {
	d := adapterFixture()

	d.SetScrollTop(-5)

	if got := d.ScrollTop(); got != 0 {
		t.Errorf("ScrollTop() = %v after negative write, want 0", got)
	}

	// max = lead 3 + content 100 - body 36
	d.SetScrollTop(9999)

	if got := d.ScrollTop(); got != 67 {
		t.Errorf("ScrollTop() = %v after overscroll, want 67", got)
	}
}

func TestDocStateStickyHeight(t *testing.T) {
	d := adapterFixture()

	if got := d.StickyHeight(); got != 2 {
		t.Errorf("StickyHeight() = %v, want 2", got)
	}
}

func TestDocStatePlacementSnapshot(t *testing.T) {
	d := adapterFixture()

	if snap := d.snapshot(); snap.placed {
		t.Error("snapshot placed before any placement write")
	}

	p := engine.Placement{Position: engine.PositionFixed, Top: engine.Px(4)}

	d.SetWillChange(true)
	d.ApplyPlacement(p)

	snap := d.snapshot()
	if !snap.placed || snap.placement != p {
		t.Errorf("snapshot = %+v, want applied placement", snap)
	}

	// Teardown path clears the placement along with the hint
	d.SetWillChange(false)

	if snap := d.snapshot(); snap.placed {
		t.Error("snapshot still placed after the hint was cleared")
	}
}

func TestDocStateNotifyNeverBlocks(t *testing.T) {
	d := newDocState(make(chan engineEvent, 1))
	d.setLayout(40, 36, 2, 3, 62, 28, 10)
	d.setContent(100, nil)

	// Nobody draining the channel; writes must still return
	for range 50 {
		d.SetScrollTop(d.ScrollTop() + 1)
	}

	if got := d.ScrollTop(); got != 50 {
		t.Errorf("ScrollTop() = %v after 50 writes, want 50", got)
	}
}
