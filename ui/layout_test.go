package ui

import (
	"math"
	"testing"

	"github.com/emberui/ember/geom"
)

func fixedChild(w, h float32) *layoutNode {
	return &layoutNode{pref: geom.V(w, h)}
}

func TestMeasureSumsChildren(t *testing.T) {
	root := &layoutNode{axis: Vertical, gap: 10}
	root.add(fixedChild(50, 30))
	root.add(fixedChild(80, 30))

	got := measure(root)
	if got != geom.V(80, 70) {
		t.Fatalf("pref = %+v", got)
	}
}

func TestMeasurePadding(t *testing.T) {
	root := &layoutNode{axis: Vertical, padding: UniformInsets(8)}
	root.add(fixedChild(50, 30))
	if got := measure(root); got != geom.V(66, 46) {
		t.Fatalf("pref = %+v", got)
	}
}

func TestMeasureSanitizesDegenerateInput(t *testing.T) {
	nan := float32(math.NaN())
	root := &layoutNode{axis: Vertical}
	root.add(&layoutNode{pref: geom.V(nan, -20)})
	root.add(fixedChild(40, 10))

	got := measure(root)
	if got != geom.V(40, 10) {
		t.Fatalf("pref = %+v", got)
	}
	solve(root, geom.R(0, 0, 100, 100))
	for _, c := range root.children {
		if c.rect.W < 0 || c.rect.H < 0 ||
			c.rect.W != c.rect.W || c.rect.H != c.rect.H {
			t.Fatalf("degenerate rect: %+v", c.rect)
		}
	}
}

func TestArrangeFlexGrowByWeight(t *testing.T) {
	root := &layoutNode{axis: Vertical}
	fixed := fixedChild(0, 20)
	one := &layoutNode{flex: 1}
	three := &layoutNode{flex: 3}
	root.add(fixed)
	root.add(one)
	root.add(three)

	solve(root, geom.R(0, 0, 100, 100))
	if fixed.rect.H != 20 {
		t.Fatalf("fixed = %+v", fixed.rect)
	}
	if one.rect.H != 20 || three.rect.H != 60 {
		t.Fatalf("flex heights = %g, %g", one.rect.H, three.rect.H)
	}
}

func TestArrangeProportionalShrinkFloorsAtMin(t *testing.T) {
	root := &layoutNode{axis: Vertical}
	for i := 0; i < 3; i++ {
		root.add(&layoutNode{pref: geom.V(40, 30), min: geom.V(0, 20)})
	}

	solve(root, geom.R(0, 0, 40, 60))
	for i, c := range root.children {
		if c.rect.H != 20 {
			t.Fatalf("child %d height = %g, want 20", i, c.rect.H)
		}
	}
	// children tile the container exactly
	if bottom := root.children[2].rect.Max().Y; bottom != 60 {
		t.Fatalf("bottom edge = %g", bottom)
	}
}

func TestArrangeShrinkIsProportionalToRoom(t *testing.T) {
	root := &layoutNode{axis: Vertical}
	rigid := &layoutNode{pref: geom.V(40, 30), min: geom.V(0, 30)} // no room
	soft := &layoutNode{pref: geom.V(40, 30), min: geom.V(0, 10)}  // 20 of room
	root.add(rigid)
	root.add(soft)

	solve(root, geom.R(0, 0, 40, 50))
	if rigid.rect.H != 30 {
		t.Fatalf("rigid shrank: %g", rigid.rect.H)
	}
	if soft.rect.H != 20 {
		t.Fatalf("soft = %g, want 20", soft.rect.H)
	}
}

func TestScrollableSkipsShrink(t *testing.T) {
	root := &layoutNode{axis: Vertical, scrollable: true}
	for i := 0; i < 3; i++ {
		root.add(&layoutNode{pref: geom.V(40, 30), min: geom.V(0, 10)})
	}

	solve(root, geom.R(0, 0, 40, 50))
	for i, c := range root.children {
		if c.rect.H != 30 {
			t.Fatalf("child %d shrank inside scrollable: %g", i, c.rect.H)
		}
	}
	if main := root.content.Y; main != 90 {
		t.Fatalf("content extent = %g, want 90", main)
	}
}

func TestScrollOffsetShiftsChildren(t *testing.T) {
	root := &layoutNode{axis: Vertical, scrollable: true, scroll: geom.V(0, 25)}
	a := fixedChild(40, 30)
	root.add(a)

	solve(root, geom.R(0, 0, 40, 50))
	if a.rect.Y != -25 {
		t.Fatalf("scrolled child y = %g", a.rect.Y)
	}
}

func TestStretchFillsCrossAxis(t *testing.T) {
	root := &layoutNode{axis: Vertical}
	bar := &layoutNode{pref: geom.V(0, 4), stretch: true}
	root.add(bar)

	solve(root, geom.R(0, 0, 120, 60))
	if bar.rect.W != 120 || bar.rect.H != 4 {
		t.Fatalf("stretched = %+v", bar.rect)
	}
}

func TestHorizontalAxis(t *testing.T) {
	root := &layoutNode{axis: Horizontal, gap: 5}
	a := fixedChild(30, 20)
	b := fixedChild(30, 20)
	root.add(a)
	root.add(b)

	solve(root, geom.R(0, 0, 100, 20))
	if a.rect.X != 0 || b.rect.X != 35 {
		t.Fatalf("row positions: %g, %g", a.rect.X, b.rect.X)
	}
}

func TestMaxCapsFlexGrowth(t *testing.T) {
	root := &layoutNode{axis: Vertical}
	capped := &layoutNode{flex: 1, max: geom.V(0, 25)}
	root.add(capped)

	solve(root, geom.R(0, 0, 40, 100))
	if capped.rect.H != 25 {
		t.Fatalf("max ignored: %g", capped.rect.H)
	}
}
