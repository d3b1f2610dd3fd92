package dock

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/emberui/ember/geom"
)

func buildTree(t *testing.T) *Tree {
	t.Helper()
	tr := NewTree(Config{})
	if err := tr.Dock("scene", None, EdgeCenter); err != nil {
		t.Fatal(err)
	}
	scene, _ := tr.Find("scene")
	if err := tr.Dock("inspector", scene, EdgeRight); err != nil {
		t.Fatal(err)
	}
	insp, _ := tr.Find("inspector")
	if err := tr.Dock("console", insp, EdgeBottom); err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestDockFirstPanelRootsStack(t *testing.T) {
	tr := NewTree(Config{})
	if err := tr.Dock("scene", None, EdgeCenter); err != nil {
		t.Fatal(err)
	}
	n, err := tr.Node(tr.Root())
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != KindStack || len(n.Panels) != 1 || n.Panels[0] != "scene" {
		t.Fatalf("root = %+v", n)
	}
}

func TestDockEdgeCreatesSplit(t *testing.T) {
	tr := buildTree(t)

	root, err := tr.Node(tr.Root())
	if err != nil {
		t.Fatal(err)
	}
	if root.Kind != KindSplit || root.Axis != AxisHorizontal {
		t.Fatalf("root = %+v", root)
	}

	got := tr.Panels()
	want := map[string]bool{"scene": true, "inspector": true, "console": true}
	if len(got) != len(want) {
		t.Fatalf("panels = %v", got)
	}
	for _, p := range got {
		if !want[p] {
			t.Fatalf("unexpected panel %q", p)
		}
	}
}

func TestDockCenterJoinsAsTab(t *testing.T) {
	tr := buildTree(t)
	scene, _ := tr.Find("scene")
	if err := tr.Dock("assets", scene, EdgeCenter); err != nil {
		t.Fatal(err)
	}
	n, _ := tr.Node(scene)
	if len(n.Panels) != 2 || n.Panels[1] != "assets" {
		t.Fatalf("stack = %+v", n)
	}
	if active, _ := tr.ActivePanel(scene); active != "assets" {
		t.Fatalf("newly docked tab should be active, got %q", active)
	}
}

func TestUndockCollapsesSplit(t *testing.T) {
	tr := buildTree(t)
	area := geom.R(0, 0, 1000, 800)

	before := tr.PanelRects(area)
	if err := tr.Undock("console"); err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.Find("console"); ok {
		t.Fatal("console still in tree")
	}

	// the inspector takes back the console's share of the area
	after := tr.PanelRects(area)
	if after["inspector"].H <= before["inspector"].H {
		t.Fatalf("inspector did not reclaim space: %+v -> %+v",
			before["inspector"], after["inspector"])
	}
	if after["scene"] != before["scene"] {
		t.Fatalf("scene moved: %+v -> %+v", before["scene"], after["scene"])
	}
}

func TestUndockLastPanelEmptiesTree(t *testing.T) {
	tr := NewTree(Config{})
	tr.Dock("only", None, EdgeCenter)
	if err := tr.Undock("only"); err != nil {
		t.Fatal(err)
	}
	if !tr.IsEmpty() {
		t.Fatal("tree should be empty")
	}
}

func TestUndockUnknownPanel(t *testing.T) {
	tr := buildTree(t)
	if err := tr.Undock("nope"); !errors.Is(err, ErrUnknownPanel) {
		t.Fatalf("err = %v", err)
	}
}

func TestRedockMovesPanel(t *testing.T) {
	tr := buildTree(t)
	scene, _ := tr.Find("scene")
	if err := tr.Dock("console", scene, EdgeCenter); err != nil {
		t.Fatal(err)
	}
	home, ok := tr.Find("console")
	if !ok || home != scene {
		t.Fatalf("console not moved: %v %v", home, ok)
	}
	// exactly one copy survives
	count := 0
	for _, p := range tr.Panels() {
		if p == "console" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("console appears %d times", count)
	}
}

func TestSelfDockRejected(t *testing.T) {
	tr := NewTree(Config{})
	tr.Dock("only", None, EdgeCenter)
	id, _ := tr.Find("only")
	if err := tr.Dock("only", id, EdgeCenter); !errors.Is(err, ErrSelfDock) {
		t.Fatalf("err = %v", err)
	}
}

func TestResizeSplitClamps(t *testing.T) {
	tr := buildTree(t)
	root := tr.Root()

	tests := []struct {
		in   float32
		want float32
	}{
		{0.5, 0.5},
		{1.5, 0.95},
		{-3, 0.05},
		{0.01, 0.05},
	}
	for _, tc := range tests {
		if err := tr.ResizeSplit(root, tc.in); err != nil {
			t.Fatal(err)
		}
		n, _ := tr.Node(root)
		if n.Ratio != tc.want {
			t.Fatalf("ratio(%g) = %g, want %g", tc.in, n.Ratio, tc.want)
		}
	}
}

func TestResizeSplitOnStackFails(t *testing.T) {
	tr := buildTree(t)
	scene, _ := tr.Find("scene")
	n, _ := tr.Node(tr.Root())
	before := n.Ratio
	if err := tr.ResizeSplit(scene, 0.3); !errors.Is(err, ErrNotSplit) {
		t.Fatalf("err = %v", err)
	}
	n, _ = tr.Node(tr.Root())
	if n.Ratio != before {
		t.Fatal("failed resize mutated the tree")
	}
}

func TestActivateTab(t *testing.T) {
	tr := NewTree(Config{})
	tr.Dock("a", None, EdgeCenter)
	id, _ := tr.Find("a")
	tr.Dock("b", id, EdgeCenter)
	tr.Dock("c", id, EdgeCenter)

	if err := tr.ActivateTab(id, "a"); err != nil {
		t.Fatal(err)
	}
	if p, _ := tr.ActivePanel(id); p != "a" {
		t.Fatalf("active = %q", p)
	}
	if err := tr.ActivateTab(id, "zzz"); !errors.Is(err, ErrUnknownPanel) {
		t.Fatalf("err = %v", err)
	}
}

func TestResolveSplitsArea(t *testing.T) {
	tr := buildTree(t)
	root := tr.Root()
	tr.ResizeSplit(root, 0.5)

	rects := tr.PanelRects(geom.R(0, 0, 1000, 800))
	scene := rects["scene"]
	if scene.W != 500 || scene.H != 800 {
		t.Fatalf("scene = %+v", scene)
	}
	insp := rects["inspector"]
	cons := rects["console"]
	if insp.X != 500 || cons.X != 500 {
		t.Fatalf("right column misplaced: %+v %+v", insp, cons)
	}
	if insp.H+cons.H != 800 {
		t.Fatalf("right column heights: %g + %g", insp.H, cons.H)
	}
}

func TestSplitAtFindsDivider(t *testing.T) {
	tr := buildTree(t)
	area := geom.R(0, 0, 1000, 800)
	tr.ResizeSplit(tr.Root(), 0.5)

	insp, _ := tr.Find("inspector")
	inner, err := tr.Node(insp)
	if err != nil {
		t.Fatal(err)
	}

	id, ok := tr.SplitAt(area, geom.V(500, 200), 6)
	if !ok || id != tr.Root() {
		t.Fatalf("SplitAt = %v %v", id, ok)
	}
	// (500,400) is the T-junction of both dividers; the outer one wins so
	// the main divider is grabbable along its whole length
	id, ok = tr.SplitAt(area, geom.V(500, 400), 6)
	if !ok || id != tr.Root() {
		t.Fatalf("SplitAt at junction = %v %v", id, ok)
	}
	id, ok = tr.SplitAt(area, geom.V(700, 400), 6)
	if !ok || id != inner.Parent {
		t.Fatalf("SplitAt on inner divider = %v %v, want %v", id, ok, inner.Parent)
	}
	if _, ok := tr.SplitAt(area, geom.V(200, 400), 6); ok {
		t.Fatal("hit far from any divider")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tr := buildTree(t)
	scene, _ := tr.Find("scene")
	tr.Dock("assets", scene, EdgeCenter)
	tr.ResizeSplit(tr.Root(), 0.3)

	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := tr.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path, Config{})
	if err != nil {
		t.Fatal(err)
	}

	area := geom.R(0, 0, 1000, 800)
	want := tr.PanelRects(area)
	have := got.PanelRects(area)
	if len(want) != len(have) {
		t.Fatalf("panel count: %d vs %d", len(want), len(have))
	}
	for name, r := range want {
		if have[name] != r {
			t.Fatalf("%s: %+v vs %+v", name, r, have[name])
		}
	}
	if p, _ := got.ActivePanel(mustFind(t, got, "assets")); p != "assets" {
		t.Fatalf("active tab lost: %q", p)
	}
}

func mustFind(t *testing.T, tr *Tree, panel string) NodeID {
	t.Helper()
	id, ok := tr.Find(panel)
	if !ok {
		t.Fatalf("%q not in tree", panel)
	}
	return id
}

func TestLoadMissingFileYieldsEmptyTree(t *testing.T) {
	tr, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if !tr.IsEmpty() {
		t.Fatal("missing file should produce an empty tree")
	}
}

func TestLoadClampsCorruptRatio(t *testing.T) {
	tr := buildTree(t)
	tr.ResizeSplit(tr.Root(), 0.95)
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := tr.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path, Config{MinRatio: 0.2, MaxRatio: 0.8})
	if err != nil {
		t.Fatal(err)
	}
	n, _ := got.Node(got.Root())
	if n.Ratio != 0.8 {
		t.Fatalf("ratio not clamped on load: %g", n.Ratio)
	}
}
