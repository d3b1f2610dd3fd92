package input

import (
	"time"

	"github.com/emberui/ember/geom"
)

// buttonState is the persistent per-button tracker inside the Collector.
// Press/release transitions are folded into edge flags that hold for exactly
// one snapshot.
type buttonState struct {
	down          bool
	pressed       bool // edge: went down since last snapshot
	released      bool // edge: went up since last snapshot
	clicked       bool
	doubleClicked bool

	pressPos  geom.Vec2
	pressTime time.Time
	dragging  bool

	lastClickTime time.Time
	lastClickPos  geom.Vec2
	clickCount    int
}

func (b *buttonState) setPress(pos geom.Vec2, now time.Time, down bool, cfg Config) {
	if down && !b.down {
		b.pressed = true
		b.pressPos = pos
		b.pressTime = now
	}
	if !down && b.down {
		b.released = true
		if !b.dragging {
			b.clicked = true
			if now.Sub(b.lastClickTime) <= cfg.DoubleClickTime &&
				pos.DistTo(b.lastClickPos) <= cfg.DoubleClickDist {
				b.clickCount++
			} else {
				b.clickCount = 1
			}
			if b.clickCount >= 2 {
				b.doubleClicked = true
			}
			b.lastClickTime = now
			b.lastClickPos = pos
		}
		b.dragging = false
	}
	b.down = down
}

func (b *buttonState) updatePos(pos geom.Vec2, cfg Config) {
	if b.down && !b.dragging && pos.DistTo(b.pressPos) > cfg.DragThreshold {
		b.dragging = true
	}
}

func (b *buttonState) clearEdges() {
	b.pressed = false
	b.released = false
	b.clicked = false
	b.doubleClicked = false
}

// ButtonSnap is the immutable per-button view inside a Snapshot.
type ButtonSnap struct {
	Down          bool
	Pressed       bool // went down this frame
	Released      bool // went up this frame
	Clicked       bool // released without dragging
	DoubleClicked bool
	Dragging      bool
	PressPos      geom.Vec2 // where the current/last press started
}
