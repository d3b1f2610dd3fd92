package ui

import (
	"github.com/emberui/ember/dock"
	"github.com/emberui/ember/draw"
	"github.com/emberui/ember/geom"
	"github.com/emberui/ember/input"
)

// panelFrame is the per-frame build record of one panel. Rebuilt every
// frame; only WidgetState and the dock tree persist.
type panelFrame struct {
	id      ID
	name    string
	st      *WidgetState
	rect    geom.Rect
	docked  bool
	stack   dock.NodeID
	tabs    []string
	active  int
	list    *draw.List
	root    *layoutNode
	content *layoutNode
	groups  []*layoutNode
	visible bool
	ordered bool
}

// Begin opens a panel for this frame. Every Begin needs a matching End,
// whatever Begin returns; the return value says whether the panel's content
// should be declared (open, not collapsed, the visible tab of its stack).
func (c *Ctx) Begin(name string) bool {
	if !c.inFrame {
		c.frameErrs = append(c.frameErrs, ErrFrameNotStarted)
		return false
	}
	if c.cur != nil {
		// nested Begin; close the previous panel so state stays sane
		c.frameErrs = append(c.frameErrs, ErrUnbalancedPanel)
		c.End()
	}

	id := globalID(name)
	st, created, err := c.cache.getOrCreate(id)
	if err != nil {
		c.frameErrs = append(c.frameErrs, err)
	}
	if created {
		st.Open = true
		st.Rect = c.defaultFloatRect()
	}
	c.names[id] = name

	pf := c.newPanelFrame()
	pf.id = id
	pf.name = name
	pf.st = st
	c.panels = append(c.panels, pf)
	c.cur = pf
	c.idStack = append(c.idStack, id)

	if !st.Open {
		c.dropFromZOrder(id)
		return false
	}

	if node, ok := c.docks.Find(name); ok {
		c.dropFromZOrder(id)
		pf.docked = true
		pf.stack = node
		for _, pl := range c.placements {
			if pl.Node == node {
				pf.rect = pl.Rect
				pf.tabs = pl.Panels
				pf.active = pl.Active
				break
			}
		}
		st.Rect = pf.rect
		st.Collapsed = false
		if len(pf.tabs) == 0 || pf.tabs[pf.active] != name {
			return false
		}
		c.dockedInteractions(pf)
	} else {
		if !c.inZOrder(id) {
			c.zorder = append(c.zorder, id)
		}
		c.floatingInteractions(pf)
		pf.rect = st.Rect
	}

	if c.hoverPanel == id {
		if sy := c.in.Scroll.Y; sy != 0 {
			st.Scroll.Y -= sy * c.cfg.ScrollSpeed
		}
	}

	pf.visible = true
	c.buildChrome(pf)
	if st.Collapsed {
		return false
	}
	return true
}

// End closes the current panel: solves its layout, clamps scrolling against
// the measured content and paints the tree into the panel's list.
func (c *Ctx) End() {
	pf := c.cur
	if pf == nil {
		c.frameErrs = append(c.frameErrs, ErrUnbalancedPanel)
		return
	}
	c.cur = nil
	if len(pf.groups) != 0 {
		c.frameErrs = append(c.frameErrs, ErrUnbalancedPanel)
		pf.groups = pf.groups[:0]
	}
	if n := len(c.idStack); n > 0 && c.idStack[n-1] == pf.id {
		c.idStack = c.idStack[:n-1]
	} else {
		c.frameErrs = append(c.frameErrs, ErrUnbalancedIDStack)
	}
	if !pf.visible {
		return
	}

	rect := pf.rect
	if pf.st.Collapsed && !pf.docked {
		rect.H = c.style.TitlebarHeight
	}

	measure(pf.root)
	if pf.content != nil {
		inner := rect.Inset(pf.root.padding.L, pf.root.padding.T, pf.root.padding.R, pf.root.padding.B)
		maxScroll := geom.Maxf(0, pf.content.pref.Y-inner.H)
		pf.st.Scroll.Y = geom.Clamp(pf.st.Scroll.Y, 0, maxScroll)
		pf.st.Scroll.X = 0
		pf.content.scroll = pf.st.Scroll
	}
	arrange(pf.root, rect)
	c.paintTree(pf.root, pf.list)
}

func (c *Ctx) newPanelFrame() *panelFrame {
	if c.listUsed >= len(c.listPool) {
		c.listPool = append(c.listPool, draw.NewList(c.viewport))
	}
	list := c.listPool[c.listUsed]
	c.listUsed++
	list.Reset(c.viewport)
	return &panelFrame{list: list, stack: dock.None}
}

func (c *Ctx) inZOrder(id ID) bool {
	for _, p := range c.zorder {
		if p == id {
			return true
		}
	}
	return false
}

// defaultFloatRect cascades first-shown panels down-right so they do not
// pile up exactly on top of each other.
func (c *Ctx) defaultFloatRect() geom.Rect {
	step := float32(len(c.zorder)%8) * 28
	return geom.R(48+step, 48+step, 300, 220)
}

// childID scopes an internal chrome widget under the panel's id.
func childID(parent ID, label string) ID {
	return hashString(parent, label)
}

// floatingInteractions runs titlebar drag, resize grip, close and collapse
// against the panel's last-known rect.
func (c *Ctx) floatingInteractions(pf *panelFrame) {
	st := pf.st
	left := c.in.Button(input.ButtonLeft)

	if c.hoverPanel == pf.id && left.Pressed {
		c.bringToFront(pf.id)
	}

	titleRect, _ := st.Rect.CutTop(c.style.TitlebarHeight)
	closeRect := c.closeBoxRect(titleRect)

	closeID := childID(pf.id, "##close")
	closeSt, _, _ := c.cache.getOrCreate(closeID)
	closeSig := c.itemSignal(closeID, closeRect)
	closeSt.Hot = closeSig.Hovering()
	if closeSig.Clicked() {
		st.Open = false
	}

	titleID := childID(pf.id, "##titlebar")
	titleSt, _, _ := c.cache.getOrCreate(titleID)
	sig := c.itemSignal(titleID, titleRect)
	titleSt.Hot = sig.Hovering()
	if sig.DoubleClicked() {
		st.Collapsed = !st.Collapsed
	}
	if sig.Pressed() {
		c.dragOffset = c.in.Pos.Sub(st.Rect.Min())
	}
	if sig.Dragging() {
		c.dragPanel = pf.id
		min := c.in.Pos.Sub(c.dragOffset)
		st.Rect.X = min.X
		st.Rect.Y = min.Y
	}

	if !st.Collapsed {
		gripID := childID(pf.id, "##resize")
		grip := geom.R(
			st.Rect.X+st.Rect.W-c.cfg.ResizeGrab*2,
			st.Rect.Y+st.Rect.H-c.cfg.ResizeGrab*2,
			c.cfg.ResizeGrab*2, c.cfg.ResizeGrab*2,
		)
		gripSt, _, _ := c.cache.getOrCreate(gripID)
		gripSig := c.itemSignal(gripID, grip)
		gripSt.Hot = gripSig.Hovering()
		if gripSig.Held() {
			size := c.in.Pos.Sub(st.Rect.Min())
			st.Rect.W = geom.Maxf(size.X, c.style.MinPanelSize.X)
			st.Rect.H = geom.Maxf(size.Y, c.style.MinPanelSize.Y)
		}
	}
}

// dockedInteractions runs the tab bar of the stack the panel sits in:
// clicking activates a tab, dragging one past the tear threshold undocks it
// into a floating panel that stays grabbed.
func (c *Ctx) dockedInteractions(pf *panelFrame) {
	tabBar, _ := pf.rect.CutTop(c.style.TabHeight)
	x := tabBar.X
	for i, tab := range pf.tabs {
		w := c.tabWidth(tab)
		tabRect := geom.R(x, tabBar.Y, w, tabBar.H)
		x += w

		tabID := childID(globalID(tab), "##tab")
		tabSt, _, _ := c.cache.getOrCreate(tabID)
		sig := c.itemSignal(tabID, tabRect)
		tabSt.Hot = sig.Hovering()
		if sig.Pressed() && i != pf.active {
			if err := c.docks.ActivateTab(pf.stack, tab); err != nil {
				c.frameErrs = append(c.frameErrs, err)
			}
		}
		if sig.Dragging() {
			press := c.in.Button(input.ButtonLeft).PressPos
			if c.in.Pos.DistTo(press) > c.cfg.TearThreshold {
				c.tearOff(tab, tabRect)
			}
		}
	}
}

// tearOff undocks panel and floats it under the pointer, keeping the drag
// alive so it can be re-docked in the same gesture.
func (c *Ctx) tearOff(panel string, from geom.Rect) {
	if err := c.docks.Undock(panel); err != nil {
		c.frameErrs = append(c.frameErrs, err)
		return
	}
	id := globalID(panel)
	if st, ok := c.cache.peek(id); ok {
		size := st.Rect.Size()
		if size.X < c.style.MinPanelSize.X || size.Y < c.style.MinPanelSize.Y {
			size = geom.V(300, 220)
		}
		st.Rect = geom.R(c.in.Pos.X-size.X*0.5, from.Y, size.X, size.Y)
		c.dragOffset = c.in.Pos.Sub(st.Rect.Min())
	}
	if !c.inZOrder(id) {
		c.zorder = append(c.zorder, id)
	}
	c.bringToFront(id)
	c.dragPanel = id
	c.activeID = childID(id, "##titlebar") // hand the drag to the titlebar
}

func (c *Ctx) tabWidth(label string) float32 {
	w, _ := c.font.Measure(label, c.style.FontSize)
	return w + c.style.FramePadding.Horizontal()
}

func (c *Ctx) closeBoxRect(titleRect geom.Rect) geom.Rect {
	box := titleRect.H - 8
	return geom.R(titleRect.X+titleRect.W-box-4, titleRect.Y+4, box, box)
}

// buildChrome sets up the panel's layout root: a chrome paint plus the
// scrollable content container.
func (c *Ctx) buildChrome(pf *panelFrame) {
	st := pf.st
	bw := c.style.BorderWidth
	topH := c.style.TitlebarHeight
	if pf.docked {
		topH = c.style.TabHeight
	}

	root := c.arena.alloc()
	root.axis = Vertical
	root.owner = pf.id
	root.padding = Insets{
		L: bw,
		T: topH + bw,
		R: bw + c.style.ScrollbarWidth,
		B: bw,
	}
	root.paint = func(l *draw.List, r geom.Rect) { c.paintPanelChrome(pf, l, r) }
	pf.root = root

	if st.Collapsed && !pf.docked {
		return
	}

	content := c.arena.alloc()
	content.axis = Vertical
	content.padding = c.style.WindowPadding
	content.gap = c.style.ItemSpacing
	content.scrollable = true
	content.clip = true
	content.stretch = true
	root.add(content)
	pf.content = content
}

// paintPanelChrome draws background, border, titlebar or tab bar, and the
// scrollbar, all from the resolved rect.
func (c *Ctx) paintPanelChrome(pf *panelFrame, l *draw.List, r geom.Rect) {
	st := pf.st
	s := &c.style

	if st.Collapsed && !pf.docked {
		title, _ := r.CutTop(s.TitlebarHeight)
		c.paintTitlebar(pf, l, title)
		l.RectOutline(title, s.Border, s.BorderWidth)
		return
	}

	l.RectFilled(r, s.WindowBg)
	if pf.docked {
		tabBar, _ := r.CutTop(s.TabHeight)
		c.paintTabBar(pf, l, tabBar)
	} else {
		title, _ := r.CutTop(s.TitlebarHeight)
		c.paintTitlebar(pf, l, title)
	}
	c.paintScrollbar(pf, l, r)
	l.RectOutline(r, s.Border, s.BorderWidth)
}

func (c *Ctx) paintTitlebar(pf *panelFrame, l *draw.List, title geom.Rect) {
	s := &c.style
	bg := s.Titlebar
	if c.activePanel == pf.id {
		bg = s.TitlebarActive
	}
	l.RectFilled(title, bg)

	tx := title.X + s.FramePadding.L
	ty := title.Y + (title.H-c.font.LineHeight(s.FontSize))*0.5
	quads := c.font.Layout(nil, pf.name, s.FontSize, geom.V(tx, ty))
	l.PushClip(title)
	l.Quads(quads, c.font.Texture(), s.Text)
	l.PopClip()

	box := c.closeBoxRect(title)
	col := s.TextDim
	if st, ok := c.cache.peek(childID(pf.id, "##close")); ok && st.Hot {
		col = s.Text
	}
	l.Line(box.Min(), box.Max(), col, 1.5)
	l.Line(geom.V(box.X+box.W, box.Y), geom.V(box.X, box.Y+box.H), col, 1.5)
}

func (c *Ctx) paintTabBar(pf *panelFrame, l *draw.List, bar geom.Rect) {
	s := &c.style
	l.RectFilled(bar, s.Titlebar)
	x := bar.X
	for i, tab := range pf.tabs {
		w := c.tabWidth(tab)
		tabRect := geom.R(x, bar.Y, w, bar.H)
		x += w
		col := s.Tab
		if i == pf.active {
			col = s.TabActive
		}
		l.RectFilled(tabRect, col)
		tx := tabRect.X + s.FramePadding.L
		ty := tabRect.Y + (tabRect.H-c.font.LineHeight(s.FontSize))*0.5
		quads := c.font.Layout(nil, tab, s.FontSize, geom.V(tx, ty))
		l.PushClip(tabRect)
		l.Quads(quads, c.font.Texture(), s.Text)
		l.PopClip()
	}
}

func (c *Ctx) paintScrollbar(pf *panelFrame, l *draw.List, r geom.Rect) {
	s := &c.style
	if pf.content == nil {
		return
	}
	inner := r.Inset(pf.root.padding.L, pf.root.padding.T, pf.root.padding.R, pf.root.padding.B)
	contentH := pf.content.pref.Y
	if contentH <= inner.H || inner.H <= 0 {
		return
	}
	track := geom.R(r.X+r.W-s.BorderWidth-s.ScrollbarWidth, inner.Y, s.ScrollbarWidth, inner.H)
	l.RectFilled(track, s.ScrollbarBg)

	grabH := geom.Maxf(track.H*inner.H/contentH, 16)
	maxScroll := contentH - inner.H
	t := float32(0)
	if maxScroll > 0 {
		t = pf.st.Scroll.Y / maxScroll
	}
	grabY := track.Y + (track.H-grabH)*geom.Clamp(t, 0, 1)
	l.RectFilled(geom.R(track.X+1, grabY, track.W-2, grabH), s.ScrollbarGrab)
}

// finishDockDrag runs at EndFrame while a titlebar drag is live: previews
// the drop target in the overlay and applies the dock on release.
func (c *Ctx) finishDockDrag() {
	if c.dragPanel == IDNil {
		return
	}
	left := c.in.Button(input.ButtonLeft)
	name := c.names[c.dragPanel]

	preview, node, edge, ok := c.dockTarget(name)
	if left.Down {
		if ok {
			c.overlay.RectFilled(preview, c.style.DockPreview)
			c.overlay.RectOutline(preview, c.style.CheckMark, 1)
		}
		return
	}
	if ok {
		if err := c.docks.Dock(name, node, edge); err != nil {
			c.frameErrs = append(c.frameErrs, err)
		} else {
			c.dropFromZOrder(c.dragPanel)
		}
	}
	c.dragPanel = IDNil
}

// dockTarget resolves the drop candidate under the pointer: an edge or
// center zone of a docked stack, or the dockspace border when the pointer
// rides the viewport edge. Returns the preview rect to draw.
func (c *Ctx) dockTarget(dragName string) (geom.Rect, dock.NodeID, dock.Edge, bool) {
	p := c.in.Pos

	for _, pl := range c.placements {
		if !pl.Rect.Contains(p) {
			continue
		}
		if len(pl.Panels) == 1 && pl.Panels[0] == dragName {
			continue
		}
		edge, preview := dropZone(pl.Rect, p, c.cfg.SnapDistance)
		return preview, pl.Node, edge, true
	}

	// dockspace edges
	v := c.viewport
	snap := c.cfg.SnapDistance
	var edge dock.Edge
	switch {
	case p.X >= v.X && p.X <= v.X+snap:
		edge = dock.EdgeLeft
	case p.X >= v.X+v.W-snap && p.X <= v.X+v.W:
		edge = dock.EdgeRight
	case p.Y >= v.Y && p.Y <= v.Y+snap:
		edge = dock.EdgeTop
	case p.Y >= v.Y+v.H-snap && p.Y <= v.Y+v.H:
		edge = dock.EdgeBottom
	default:
		return geom.Rect{}, dock.None, 0, false
	}
	if !v.Contains(p) {
		return geom.Rect{}, dock.None, 0, false
	}
	_, preview := dropZone(v, edgeAnchor(v, edge), snap)
	return preview, c.docks.Root(), edge, true
}

// dropZone classifies p within r: near an edge docks beside the target,
// anywhere else joins it as a tab. The preview is the half (or whole) rect
// the panel would occupy.
func dropZone(r geom.Rect, p geom.Vec2, snap float32) (dock.Edge, geom.Rect) {
	zone := geom.Minf(snap, geom.Minf(r.W, r.H)*0.3)
	switch {
	case p.X-r.X <= zone:
		a, _ := r.SplitH(0.5)
		return dock.EdgeLeft, a
	case r.X+r.W-p.X <= zone:
		_, b := r.SplitH(0.5)
		return dock.EdgeRight, b
	case p.Y-r.Y <= zone:
		a, _ := r.SplitV(0.5)
		return dock.EdgeTop, a
	case r.Y+r.H-p.Y <= zone:
		_, b := r.SplitV(0.5)
		return dock.EdgeBottom, b
	default:
		return dock.EdgeCenter, r
	}
}

func edgeAnchor(r geom.Rect, e dock.Edge) geom.Vec2 {
	switch e {
	case dock.EdgeLeft:
		return geom.V(r.X, r.Y+r.H*0.5)
	case dock.EdgeRight:
		return geom.V(r.X+r.W, r.Y+r.H*0.5)
	case dock.EdgeTop:
		return geom.V(r.X+r.W*0.5, r.Y)
	default:
		return geom.V(r.X+r.W*0.5, r.Y+r.H)
	}
}

// SetPanelOpen shows or hides a panel by name, creating its state if the
// panel has never been declared.
func (c *Ctx) SetPanelOpen(name string, open bool) {
	st, created, _ := c.cache.getOrCreate(globalID(name))
	if created {
		st.Rect = c.defaultFloatRect()
	}
	st.Open = open
}

// SetPanelRect places a floating panel explicitly (startup layouts, tests).
func (c *Ctx) SetPanelRect(name string, r geom.Rect) {
	st, _, _ := c.cache.getOrCreate(globalID(name))
	st.Open = true
	st.Rect = r.Sane()
}
