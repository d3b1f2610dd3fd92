package ui

import (
	"errors"
	"testing"
)

func TestIDStableAcrossFrames(t *testing.T) {
	if globalID("Inspector") != globalID("Inspector") {
		t.Fatal("same label hashed differently")
	}
	if globalID("Inspector") == globalID("Console") {
		t.Fatal("distinct labels collided")
	}
	if globalID("anything") == IDNil {
		t.Fatal("hash produced the nil ID")
	}
}

func TestIDScopedByParent(t *testing.T) {
	a := hashString(globalID("PanelA"), "OK")
	b := hashString(globalID("PanelB"), "OK")
	if a == b {
		t.Fatal("same label under different parents collided")
	}
}

func TestPushIDDisambiguates(t *testing.T) {
	c := New(Config{}, DefaultStyle(), nil)
	c.NewFrame(snap(800, 600))

	c.PushIDInt(0)
	first := c.genID("Delete")
	c.PopID()
	c.PushIDInt(1)
	second := c.genID("Delete")
	c.PopID()

	if first == second {
		t.Fatal("loop indices did not disambiguate")
	}
	if _, err := c.EndFrame(); err != nil {
		t.Fatal(err)
	}
}

func TestDuplicateIDReported(t *testing.T) {
	sc := newStateCache(2)
	sc.beginFrame(1)

	id := globalID("twice")
	if _, _, err := sc.getOrCreate(id); err != nil {
		t.Fatal(err)
	}
	st, created, err := sc.getOrCreate(id)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v", err)
	}
	if created {
		t.Fatal("duplicate flagged as created")
	}
	if st == nil {
		t.Fatal("duplicate must still return the shared record")
	}
}

func TestSameIDNextFrameIsNotDuplicate(t *testing.T) {
	sc := newStateCache(2)
	id := globalID("panel")

	sc.beginFrame(1)
	if _, _, err := sc.getOrCreate(id); err != nil {
		t.Fatal(err)
	}
	sc.endFrame()

	sc.beginFrame(2)
	if _, created, err := sc.getOrCreate(id); err != nil || created {
		t.Fatalf("err=%v created=%v", err, created)
	}
}

func TestEvictionAfterKUntouchedFrames(t *testing.T) {
	const evictAfter = 2
	sc := newStateCache(evictAfter)
	id := globalID("transient")

	sc.beginFrame(1)
	st, _, _ := sc.getOrCreate(id)
	st.Value = 42
	sc.endFrame()

	// untouched for exactly K frames: survives
	for f := uint64(2); f <= 1+evictAfter; f++ {
		sc.beginFrame(f)
		sc.endFrame()
	}
	if got, ok := sc.peek(id); !ok || got.Value != 42 {
		t.Fatal("state evicted too early")
	}

	// one more untouched frame: gone
	sc.beginFrame(2 + evictAfter)
	sc.endFrame()
	if _, ok := sc.peek(id); ok {
		t.Fatal("state not evicted")
	}
	if sc.len() != 0 {
		t.Fatalf("cache len = %d", sc.len())
	}
}

func TestRetouchResetsEvictionClock(t *testing.T) {
	sc := newStateCache(1)
	id := globalID("kept")

	for f := uint64(1); f <= 10; f++ {
		sc.beginFrame(f)
		sc.getOrCreate(id)
		sc.endFrame()
	}
	if _, ok := sc.peek(id); !ok {
		t.Fatal("touched state must never evict")
	}
}
