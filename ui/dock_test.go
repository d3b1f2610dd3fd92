package ui

import (
	"testing"

	"github.com/emberui/ember/dock"
	"github.com/emberui/ember/geom"
)

func dockedPair(t *testing.T) *Ctx {
	t.Helper()
	c := New(Config{}, DefaultStyle(), nil)
	if err := c.Dock().Dock("Left", dock.None, dock.EdgeCenter); err != nil {
		t.Fatal(err)
	}
	node, _ := c.Dock().Find("Left")
	if err := c.Dock().Dock("Right", node, dock.EdgeRight); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDockedPanelsFillTheViewport(t *testing.T) {
	c := dockedPair(t)

	c.NewFrame(snap(1000, 600))
	c.Begin("Left")
	c.End()
	c.Begin("Right")
	c.End()
	if _, err := c.EndFrame(); err != nil {
		t.Fatal(err)
	}

	left, _ := c.cache.peek(globalID("Left"))
	right, _ := c.cache.peek(globalID("Right"))
	if left.Rect != geom.R(0, 0, 500, 600) {
		t.Fatalf("left = %+v", left.Rect)
	}
	if right.Rect != geom.R(500, 0, 500, 600) {
		t.Fatalf("right = %+v", right.Rect)
	}
}

func TestInactiveTabIsHidden(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.Dock().Dock("A", dock.None, dock.EdgeCenter)
	node, _ := c.Dock().Find("A")
	c.Dock().Dock("B", node, dock.EdgeCenter) // B becomes the active tab

	c.NewFrame(snap(800, 600))
	if c.Begin("A") {
		t.Fatal("inactive tab reported visible")
	}
	c.End()
	if !c.Begin("B") {
		t.Fatal("active tab reported hidden")
	}
	c.End()
	if _, err := c.EndFrame(); err != nil {
		t.Fatal(err)
	}
}

func TestActivateTabSwitchesVisibility(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.Dock().Dock("A", dock.None, dock.EdgeCenter)
	node, _ := c.Dock().Find("A")
	c.Dock().Dock("B", node, dock.EdgeCenter)

	if err := c.Dock().ActivateTab(node, "A"); err != nil {
		t.Fatal(err)
	}

	c.NewFrame(snap(800, 600))
	if !c.Begin("A") {
		t.Fatal("activated tab hidden")
	}
	c.End()
	if c.Begin("B") {
		t.Fatal("deactivated tab still visible")
	}
	c.End()
	if _, err := c.EndFrame(); err != nil {
		t.Fatal(err)
	}
}

func TestUndockedPanelFloatsAgain(t *testing.T) {
	c := dockedPair(t)

	// one docked frame resolves the rects
	c.NewFrame(snap(1000, 600))
	c.Begin("Left")
	c.End()
	c.Begin("Right")
	c.End()
	c.EndFrame()

	if err := c.Dock().Undock("Right"); err != nil {
		t.Fatal(err)
	}

	c.NewFrame(snap(1000, 600))
	c.Begin("Left")
	c.End()
	c.Begin("Right")
	c.End()
	if _, err := c.EndFrame(); err != nil {
		t.Fatal(err)
	}

	// Left reclaims the whole dockspace, Right keeps its own rect
	left, _ := c.cache.peek(globalID("Left"))
	if left.Rect != geom.R(0, 0, 1000, 600) {
		t.Fatalf("left = %+v", left.Rect)
	}
	if _, docked := c.Dock().Find("Right"); docked {
		t.Fatal("Right still in tree")
	}
}

func TestSplitDragResizes(t *testing.T) {
	c := dockedPair(t)
	node := c.Dock().Root()

	// resolve once so placements exist
	c.NewFrame(snap(1000, 600))
	c.Begin("Left")
	c.End()
	c.Begin("Right")
	c.End()
	c.EndFrame()

	if err := c.Dock().ResizeSplit(node, 0.25); err != nil {
		t.Fatal(err)
	}

	c.NewFrame(snap(1000, 600))
	c.Begin("Left")
	c.End()
	c.Begin("Right")
	c.End()
	c.EndFrame()

	left, _ := c.cache.peek(globalID("Left"))
	if left.Rect.W != 250 {
		t.Fatalf("left width = %g after resize", left.Rect.W)
	}
}

func TestDropZoneClassification(t *testing.T) {
	r := geom.R(0, 0, 300, 300)
	tests := []struct {
		name string
		p    geom.Vec2
		want dock.Edge
	}{
		{"near left", geom.V(10, 150), dock.EdgeLeft},
		{"near right", geom.V(290, 150), dock.EdgeRight},
		{"near top", geom.V(150, 10), dock.EdgeTop},
		{"near bottom", geom.V(150, 290), dock.EdgeBottom},
		{"middle", geom.V(150, 150), dock.EdgeCenter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			edge, preview := dropZone(r, tc.p, 32)
			if edge != tc.want {
				t.Fatalf("edge = %v, want %v", edge, tc.want)
			}
			if preview.IsEmpty() {
				t.Fatal("empty preview")
			}
			if tc.want == dock.EdgeCenter && preview != r {
				t.Fatalf("center preview should cover the target: %+v", preview)
			}
		})
	}
}
