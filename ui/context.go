package ui

import (
	"errors"

	"github.com/emberui/ember/dock"
	"github.com/emberui/ember/draw"
	"github.com/emberui/ember/geom"
	"github.com/emberui/ember/input"
	"github.com/emberui/ember/text"
)

// Config carries the orchestrator's tunables. Gesture thresholds live here
// rather than as constants; zero values pick the defaults.
type Config struct {
	// EvictFrames is how many frames a widget state survives untouched
	// before the identity cache drops it.
	EvictFrames int

	Dock dock.Config

	// SnapDistance is the edge-zone thickness for dock-drop targeting.
	SnapDistance float32
	// TearThreshold is the drag distance that tears a docked panel off.
	TearThreshold float32
	// ResizeGrab is the hit-zone thickness of panel edges and dividers.
	ResizeGrab float32
	// ScrollSpeed is pixels per wheel notch.
	ScrollSpeed float32
	// LayoutFile, when set, is where SaveLayout/LoadLayout persist the dock
	// tree between sessions.
	LayoutFile string
}

func (c *Config) applyDefaults() {
	if c.EvictFrames <= 0 {
		c.EvictFrames = 2
	}
	if c.SnapDistance <= 0 {
		c.SnapDistance = 32
	}
	if c.TearThreshold <= 0 {
		c.TearThreshold = 12
	}
	if c.ResizeGrab <= 0 {
		c.ResizeGrab = 6
	}
	if c.ScrollSpeed <= 0 {
		c.ScrollSpeed = 40
	}
}

// Ctx owns all cross-frame UI state: the widget identity cache, the dock
// tree and the floating z-order. Everything else is rebuilt per frame.
// Single-threaded; one Ctx per UI surface, instances are independent.
type Ctx struct {
	cfg   Config
	style Style
	font  text.Source

	cache *stateCache
	docks *dock.Tree

	frame    uint64
	inFrame  bool
	in       input.Snapshot
	viewport geom.Rect

	idStack   []ID
	frameErrs []error

	hotID     ID
	nextHotID ID
	activeID  ID

	hoverPanel  ID
	activePanel ID
	zorder      []ID // floating panels, back to front; persists across frames

	names map[ID]string // panel id -> name, for the name-keyed dock tree

	panels   []*panelFrame
	cur      *panelFrame
	arena    nodeArena
	overlay  *draw.List
	final    *draw.List
	listPool []*draw.List
	listUsed int

	placements []dock.Placement

	// titlebar-drag gesture state
	dragPanel  ID
	dragOffset geom.Vec2
	splitDrag  dock.NodeID
}

// New builds an orchestrator around a text source. A nil font falls back to
// the monospace FixedMeasurer so headless use works out of the box.
func New(cfg Config, style Style, font text.Source) *Ctx {
	cfg.applyDefaults()
	if font == nil {
		font = text.FixedMeasurer{}
	}
	return &Ctx{
		cfg:       cfg,
		style:     style,
		font:      font,
		cache:     newStateCache(cfg.EvictFrames),
		docks:     dock.NewTree(cfg.Dock),
		names:     make(map[ID]string, 8),
		overlay:   draw.NewList(geom.Rect{}),
		final:     draw.NewList(geom.Rect{}),
		splitDrag: dock.None,
	}
}

func (c *Ctx) Style() *Style          { return &c.style }
func (c *Ctx) Dock() *dock.Tree       { return c.docks }
func (c *Ctx) Input() *input.Snapshot { return &c.in }
func (c *Ctx) Frame() uint64          { return c.frame }

// StateCount reports live identity-cache entries (observability, tests).
func (c *Ctx) StateCount() int { return c.cache.len() }

// NewFrame begins a frame from one immutable input snapshot. Widget calls
// are valid until the matching EndFrame.
func (c *Ctx) NewFrame(in input.Snapshot) {
	c.frame++
	c.inFrame = true
	c.in = in
	c.viewport = geom.R(0, 0, float32(in.SurfaceW), float32(in.SurfaceH))

	c.cache.beginFrame(c.frame)
	c.frameErrs = c.frameErrs[:0]
	c.idStack = c.idStack[:0]
	c.panels = c.panels[:0]
	c.cur = nil
	c.listUsed = 0
	c.arena.reset()
	c.overlay.Reset(c.viewport)
	c.final.Reset(c.viewport)

	c.hotID = c.nextHotID
	c.nextHotID = IDNil

	c.placements = c.docks.Resolve(c.viewport)
	c.hoverPanel = c.panelUnderPointer()
	c.updateSplitDrag()
}

// panelUnderPointer picks the topmost panel at the pointer using last-known
// rects: floating panels front to back, then docked stacks.
func (c *Ctx) panelUnderPointer() ID {
	for i := len(c.zorder) - 1; i >= 0; i-- {
		id := c.zorder[i]
		st, ok := c.cache.peek(id)
		if !ok || !st.Open {
			continue
		}
		r := st.Rect
		if st.Collapsed {
			r.H = c.style.TitlebarHeight
		}
		if r.Contains(c.in.Pos) {
			return id
		}
	}
	for _, pl := range c.placements {
		if pl.Rect.Contains(c.in.Pos) && len(pl.Panels) > 0 {
			return globalID(pl.Panels[pl.Active])
		}
	}
	return IDNil
}

// updateSplitDrag drives divider resizing: grab on press near a divider,
// ratio follows the pointer, released on mouse-up.
func (c *Ctx) updateSplitDrag() {
	left := c.in.Button(input.ButtonLeft)
	if c.splitDrag == dock.None {
		if left.Pressed && !c.floatingAt(c.in.Pos) {
			if id, ok := c.docks.SplitAt(c.viewport, c.in.Pos, c.cfg.ResizeGrab); ok {
				c.splitDrag = id
			}
		}
		return
	}
	if !left.Down {
		c.splitDrag = dock.None
		return
	}
	area, err := c.docks.NodeArea(c.splitDrag, c.viewport)
	if err != nil {
		c.splitDrag = dock.None
		return
	}
	if ratio, err := c.docks.RatioForPoint(c.splitDrag, area, c.in.Pos); err == nil {
		if err := c.docks.ResizeSplit(c.splitDrag, ratio); err != nil {
			c.frameErrs = append(c.frameErrs, err)
		}
	}
}

// floatingAt reports whether an open floating panel covers p; dividers
// underneath a floating window must not grab.
func (c *Ctx) floatingAt(p geom.Vec2) bool {
	for i := len(c.zorder) - 1; i >= 0; i-- {
		if st, ok := c.cache.peek(c.zorder[i]); ok && st.Open {
			r := st.Rect
			if st.Collapsed {
				r.H = c.style.TitlebarHeight
			}
			if r.Contains(p) {
				return true
			}
		}
	}
	return false
}

// EndFrame closes the frame: validates bracketing, finishes the dock-drag
// gesture, assembles panel lists back to front and hands out the compiled
// draw list. On a fatal bracketing error the list is withheld and transient
// state reset so the next frame is unaffected.
func (c *Ctx) EndFrame() (*draw.List, error) {
	if !c.inFrame {
		return nil, ErrFrameNotStarted
	}
	c.inFrame = false

	fatal := false
	if c.cur != nil {
		c.frameErrs = append(c.frameErrs, ErrUnbalancedPanel)
		c.cur = nil
		fatal = true
	}
	if len(c.idStack) != 0 {
		c.frameErrs = append(c.frameErrs, ErrUnbalancedIDStack)
		c.idStack = c.idStack[:0]
		fatal = true
	}

	c.finishDockDrag()
	c.cache.endFrame()

	err := errors.Join(c.frameErrs...)
	if fatal {
		return nil, err
	}

	// docked panels first (tree order), then floating by z-order, then
	// overlay decorations
	for _, pl := range c.placements {
		if pf := c.builtPanel(globalID(pl.Panels[pl.Active])); pf != nil {
			c.final.Append(pf.list)
		}
	}
	for _, id := range c.zorder {
		if pf := c.builtPanel(id); pf != nil && !pf.docked {
			c.final.Append(pf.list)
		}
	}
	// panels built this frame but not yet in any order list (first frame)
	for _, pf := range c.panels {
		if !pf.ordered {
			c.final.Append(pf.list)
		}
	}
	c.final.Append(c.overlay)
	return c.final, err
}

func (c *Ctx) builtPanel(id ID) *panelFrame {
	for _, pf := range c.panels {
		if pf.id == id && pf.visible {
			pf.ordered = true
			return pf
		}
	}
	return nil
}

// Errs exposes the non-fatal errors of the last frame.
func (c *Ctx) Errs() []error { return c.frameErrs }

func (c *Ctx) bringToFront(id ID) {
	for i, p := range c.zorder {
		if p == id {
			c.zorder = append(c.zorder[:i], c.zorder[i+1:]...)
			break
		}
	}
	c.zorder = append(c.zorder, id)
	c.activePanel = id
}

func (c *Ctx) dropFromZOrder(id ID) {
	for i, p := range c.zorder {
		if p == id {
			c.zorder = append(c.zorder[:i], c.zorder[i+1:]...)
			return
		}
	}
}

// SaveLayout persists the dock tree to Config.LayoutFile.
func (c *Ctx) SaveLayout() error {
	if c.cfg.LayoutFile == "" {
		return nil
	}
	return c.docks.Save(c.cfg.LayoutFile)
}

// LoadLayout restores the dock tree from Config.LayoutFile, if present.
func (c *Ctx) LoadLayout() error {
	if c.cfg.LayoutFile == "" {
		return nil
	}
	t, err := dock.Load(c.cfg.LayoutFile, c.cfg.Dock)
	if err != nil {
		return err
	}
	c.docks = t
	return nil
}
