package input

import (
	"time"

	"github.com/emberui/ember/geom"
)

// Config holds gesture thresholds. Zero value is usable; Collector fills in
// defaults on first use.
type Config struct {
	DragThreshold   float32       // px of travel before a press becomes a drag
	DoubleClickTime time.Duration // max gap between clicks
	DoubleClickDist float32       // max travel between clicks
}

func (c *Config) applyDefaults() {
	if c.DragThreshold <= 0 {
		c.DragThreshold = 4
	}
	if c.DoubleClickTime <= 0 {
		c.DoubleClickTime = 350 * time.Millisecond
	}
	if c.DoubleClickDist <= 0 {
		c.DoubleClickDist = 6
	}
}

// KeyEvent is one keyboard transition, kept in arrival order.
type KeyEvent struct {
	Key  Key
	Down bool
	Mods Mod
}

// Snapshot is the immutable per-frame input record everything downstream
// consumes. Built once by Collector.Snapshot, never mutated afterwards.
type Snapshot struct {
	Pos     geom.Vec2
	PrevPos geom.Vec2
	Buttons [buttonCount]ButtonSnap
	Scroll  geom.Vec2

	Keys []KeyEvent
	Text []rune

	SurfaceW, SurfaceH int
	DeltaTime          float32 // seconds since the previous snapshot
	CloseRequested     bool
}

func (s Snapshot) MouseDelta() geom.Vec2 { return s.Pos.Sub(s.PrevPos) }

func (s Snapshot) Button(b Button) ButtonSnap { return s.Buttons[b] }

// Collector folds platform events into per-frame snapshots. Feed it every
// event via Handle, then call Snapshot once per frame. Single-threaded, like
// the rest of the UI.
type Collector struct {
	cfg Config
	now func() time.Time

	pos, prevPos geom.Vec2
	buttons      [buttonCount]buttonState
	scroll       geom.Vec2
	keys         []KeyEvent
	text         []rune
	surfaceW     int
	surfaceH     int
	closeReq     bool

	lastSnap time.Time
}

func NewCollector(cfg Config) *Collector {
	cfg.applyDefaults()
	return &Collector{cfg: cfg, now: time.Now}
}

// SetClock overrides the time source. Tests drive gesture timing with it.
func (c *Collector) SetClock(now func() time.Time) { c.now = now }

func (c *Collector) SetSurfaceSize(w, h int) {
	c.surfaceW, c.surfaceH = w, h
}

func (c *Collector) Handle(ev Event) {
	switch e := ev.(type) {
	case EventMouseMove:
		c.prevPos = c.pos
		c.pos = geom.V(float32(e.X), float32(e.Y))
		for i := range c.buttons {
			c.buttons[i].updatePos(c.pos, c.cfg)
		}
	case EventMouseButton:
		if e.Button >= 0 && e.Button < buttonCount {
			c.buttons[e.Button].setPress(c.pos, c.now(), e.Down, c.cfg)
		}
	case EventScroll:
		c.scroll.X += float32(e.Xoff)
		c.scroll.Y += float32(e.Yoff)
	case EventKey:
		c.keys = append(c.keys, KeyEvent{Key: e.Key, Down: e.Down, Mods: e.Mods})
	case EventChar:
		c.text = append(c.text, e.Rune)
	case EventResize:
		c.surfaceW, c.surfaceH = e.W, e.H
	case EventCloseRequested:
		c.closeReq = true
	}
}

// Snapshot freezes the state accumulated since the previous call and resets
// the per-frame transients (edges, scroll, key/text queues).
func (c *Collector) Snapshot() Snapshot {
	now := c.now()
	var dt float32
	if !c.lastSnap.IsZero() {
		dt = float32(now.Sub(c.lastSnap).Seconds())
	}
	c.lastSnap = now

	s := Snapshot{
		Pos:            c.pos,
		PrevPos:        c.prevPos,
		Scroll:         c.scroll,
		SurfaceW:       c.surfaceW,
		SurfaceH:       c.surfaceH,
		DeltaTime:      dt,
		CloseRequested: c.closeReq,
	}
	if len(c.keys) > 0 {
		s.Keys = append([]KeyEvent(nil), c.keys...)
	}
	if len(c.text) > 0 {
		s.Text = append([]rune(nil), c.text...)
	}
	for i := range c.buttons {
		b := &c.buttons[i]
		s.Buttons[i] = ButtonSnap{
			Down:          b.down,
			Pressed:       b.pressed,
			Released:      b.released,
			Clicked:       b.clicked,
			DoubleClicked: b.doubleClicked,
			Dragging:      b.dragging,
			PressPos:      b.pressPos,
		}
		b.clearEdges()
	}

	c.prevPos = c.pos
	c.scroll = geom.Vec2{}
	c.keys = c.keys[:0]
	c.text = c.text[:0]
	c.closeReq = false
	return s
}
