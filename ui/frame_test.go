package ui

import (
	"errors"
	"testing"

	"github.com/emberui/ember/geom"
	"github.com/emberui/ember/input"
)

func snap(w, h int) input.Snapshot {
	return input.Snapshot{SurfaceW: w, SurfaceH: h, DeltaTime: 1.0 / 60}
}

func snapAt(w, h int, pos geom.Vec2) input.Snapshot {
	s := snap(w, h)
	s.Pos = pos
	return s
}

func TestEmptyFrame(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	list, err := c.EndFrame()
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list.Commands) != 0 {
		t.Fatalf("empty frame produced commands: %v", list)
	}
}

func TestEndFrameWithoutNewFrame(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	if _, err := c.EndFrame(); !errors.Is(err, ErrFrameNotStarted) {
		t.Fatalf("err = %v", err)
	}
}

func TestPanelProducesDrawData(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	if !c.Begin("Tools") {
		t.Fatal("fresh panel should be open")
	}
	c.Label("hello")
	c.End()

	list, err := c.EndFrame()
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Commands) == 0 || len(list.Vertices) == 0 {
		t.Fatal("panel drew nothing")
	}
	if list.ClipDepth() != 0 {
		t.Fatalf("unbalanced clips: %d", list.ClipDepth())
	}
}

func TestUnmatchedBeginIsFatal(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	c.Begin("Leaky")

	list, err := c.EndFrame()
	if !errors.Is(err, ErrUnbalancedPanel) {
		t.Fatalf("err = %v", err)
	}
	if list != nil {
		t.Fatal("fatal frame must withhold the draw list")
	}

	// next frame recovers
	c.NewFrame(snap(800, 600))
	c.Begin("Leaky")
	c.End()
	if _, err := c.EndFrame(); err != nil {
		t.Fatalf("frame after fatal error: %v", err)
	}
}

func TestUnbalancedIDStackIsFatal(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	c.Begin("P")
	c.PushID("scope")
	c.End()

	list, err := c.EndFrame()
	if !errors.Is(err, ErrUnbalancedIDStack) {
		t.Fatalf("err = %v", err)
	}
	if list != nil {
		t.Fatal("fatal frame must withhold the draw list")
	}
}

func TestEndWithoutBeginRecorded(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	c.End()
	if _, err := c.EndFrame(); !errors.Is(err, ErrUnbalancedPanel) {
		t.Fatalf("err = %v", err)
	}
}

func TestWidgetOutsidePanelRecorded(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	c.Label("floating in space")
	if _, err := c.EndFrame(); !errors.Is(err, ErrNoPanel) {
		t.Fatalf("err = %v", err)
	}
}

func TestDuplicatePanelNameReported(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	c.Begin("Same")
	c.End()
	c.Begin("Same")
	c.End()

	if _, err := c.EndFrame(); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v", err)
	}
}

func TestDuplicateWidgetLabelReported(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	c.Begin("P")
	c.Button("OK")
	c.Button("OK")
	c.End()

	if _, err := c.EndFrame(); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v", err)
	}
}

func TestDeterministicOutput(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	build := func() ([]uint32, int, int) {
		c.NewFrame(snap(800, 600))
		c.Begin("A")
		c.Label("one")
		c.Button("two")
		c.End()
		c.Begin("B")
		mix := float32(0.5)
		c.SliderFloat("Mix", &mix, 0, 1)
		c.End()
		list, err := c.EndFrame()
		if err != nil {
			t.Fatal(err)
		}
		idx := append([]uint32(nil), list.Indices...)
		return idx, len(list.Vertices), len(list.Commands)
	}

	// first frame creates state; the steady state must repeat exactly
	build()
	i1, v1, c1 := build()
	i2, v2, c2 := build()

	if v1 != v2 || c1 != c2 || len(i1) != len(i2) {
		t.Fatalf("frame shape diverged: %d/%d/%d vs %d/%d/%d",
			v1, c1, len(i1), v2, c2, len(i2))
	}
	for k := range i1 {
		if i1[k] != i2[k] {
			t.Fatalf("index stream diverged at %d", k)
		}
	}
}

func TestClosedPanelDrawsNothing(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	c.Begin("Tools")
	c.End()
	c.EndFrame()

	c.SetPanelOpen("Tools", false)
	c.NewFrame(snap(800, 600))
	if c.Begin("Tools") {
		t.Fatal("closed panel reported open")
	}
	c.End()
	list, err := c.EndFrame()
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Commands) != 0 {
		t.Fatal("closed panel still drew")
	}
}

func TestHiddenPanelStateSurvivesReopen(t *testing.T) {
	c := New(Config{EvictFrames: 2}, DefaultStyle(), nil)

	c.NewFrame(snap(800, 600))
	c.Begin("Tools")
	c.End()
	c.EndFrame()

	id := globalID("Tools")
	st, _ := c.cache.peek(id)
	want := geom.R(100, 120, 250, 180)
	st.Rect = want

	// hidden for one frame, redeclared the next: rect must survive
	c.NewFrame(snap(800, 600))
	c.EndFrame()

	c.NewFrame(snap(800, 600))
	c.Begin("Tools")
	c.End()
	c.EndFrame()

	if got, _ := c.cache.peek(id); got.Rect != want {
		t.Fatalf("rect lost across hide/show: %+v", got.Rect)
	}
}

func TestButtonClickAgainstLastKnownRect(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)

	clicked := false
	run := func(in input.Snapshot) {
		c.NewFrame(in)
		c.Begin("P")
		if c.Button("Go") {
			clicked = true
		}
		c.End()
		if _, err := c.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}

	// frame 1: layout resolves the button's rect
	run(snap(800, 600))
	st, ok := c.cache.peek(hashString(globalID("P"), "Go"))
	if !ok || st.Rect.IsEmpty() {
		t.Fatalf("button rect not resolved: %+v", st)
	}
	center := st.Rect.Center()

	// frame 2: hover arms the hot item for the next frame
	run(snapAt(800, 600, center))

	// frame 3: press
	press := snapAt(800, 600, center)
	press.Buttons[input.ButtonLeft] = input.ButtonSnap{Down: true, Pressed: true, PressPos: center}
	run(press)

	// frame 4: release as a click
	rel := snapAt(800, 600, center)
	rel.Buttons[input.ButtonLeft] = input.ButtonSnap{Released: true, Clicked: true, PressPos: center}
	run(rel)

	if !clicked {
		t.Fatal("click sequence did not register")
	}
}

func TestCheckboxToggles(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	v := false

	run := func(in input.Snapshot) {
		c.NewFrame(in)
		c.Begin("P")
		c.Checkbox("Flag", &v)
		c.End()
		if _, err := c.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}

	run(snap(800, 600))
	st, _ := c.cache.peek(hashString(globalID("P"), "Flag"))
	center := st.Rect.Center()

	run(snapAt(800, 600, center))
	press := snapAt(800, 600, center)
	press.Buttons[input.ButtonLeft] = input.ButtonSnap{Down: true, Pressed: true, PressPos: center}
	run(press)
	rel := snapAt(800, 600, center)
	rel.Buttons[input.ButtonLeft] = input.ButtonSnap{Released: true, Clicked: true, PressPos: center}
	run(rel)

	if !v {
		t.Fatal("checkbox did not toggle")
	}
}

func TestStateCountTracksWidgets(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))
	c.Begin("P")
	c.Button("A")
	c.Button("B")
	c.End()
	c.EndFrame()

	// panel + its titlebar/close/resize chrome + two buttons
	if got := c.StateCount(); got < 3 {
		t.Fatalf("state count = %d", got)
	}
	before := c.StateCount()

	// widgets no longer declared: their states age out
	for i := 0; i < 4; i++ {
		c.NewFrame(snap(800, 600))
		c.Begin("P")
		c.End()
		c.EndFrame()
	}
	if got := c.StateCount(); got >= before {
		t.Fatalf("stale widget states not evicted: %d -> %d", before, got)
	}
}
