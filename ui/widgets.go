package ui

import (
	"fmt"

	"github.com/emberui/ember/colors"
	"github.com/emberui/ember/draw"
	"github.com/emberui/ember/geom"
)

// item registers a leaf node in the current panel's content and returns it,
// or nil when the panel is hidden this frame.
func (c *Ctx) item(pref geom.Vec2) *layoutNode {
	pf := c.cur
	if pf == nil {
		c.frameErrs = append(c.frameErrs, ErrNoPanel)
		return nil
	}
	if !pf.visible || pf.content == nil {
		return nil
	}
	n := c.arena.alloc()
	n.pref = pref
	c.container().add(n)
	return n
}

// container returns the node new items attach to: the innermost open Row or
// Column, else the panel content.
func (c *Ctx) container() *layoutNode {
	pf := c.cur
	if len(pf.groups) > 0 {
		return pf.groups[len(pf.groups)-1]
	}
	return pf.content
}

// Label lays out a line of text.
func (c *Ctx) Label(text string) {
	s := &c.style
	w, h := c.font.Measure(text, s.FontSize)
	n := c.item(geom.V(w, h))
	if n == nil {
		return
	}
	font, col := c.font, s.Text
	size := s.FontSize
	n.paint = func(l *draw.List, r geom.Rect) {
		quads := font.Layout(nil, text, size, r.Min())
		l.Quads(quads, font.Texture(), col)
	}
}

// Labelf is Label with a format string.
func (c *Ctx) Labelf(format string, args ...any) {
	c.Label(fmt.Sprintf(format, args...))
}

// Button lays out a push button and reports whether it was clicked this
// frame. The click test runs against the button's last-known rect.
func (c *Ctx) Button(label string) bool {
	s := &c.style
	id := c.genID(label)
	st, _, err := c.cache.getOrCreate(id)
	if err != nil {
		c.frameErrs = append(c.frameErrs, err)
	}

	sig := c.itemSignal(id, st.Rect)
	fill := c.buttonFill(st, sig)

	w, h := c.font.Measure(label, s.FontSize)
	n := c.item(geom.V(w+s.FramePadding.Horizontal(), h+s.FramePadding.Vertical()))
	if n == nil {
		return false
	}
	n.owner = id
	pad := s.FramePadding
	font, size, textCol := c.font, s.FontSize, s.Text
	n.paint = func(l *draw.List, r geom.Rect) {
		l.RectFilled(r, fill)
		quads := font.Layout(nil, label, size, geom.V(r.X+pad.L, r.Y+pad.T))
		l.Quads(quads, font.Texture(), textCol)
	}
	return sig.Clicked()
}

// Checkbox toggles *v on click and reports whether it changed.
func (c *Ctx) Checkbox(label string, v *bool) bool {
	s := &c.style
	id := c.genID(label)
	st, _, err := c.cache.getOrCreate(id)
	if err != nil {
		c.frameErrs = append(c.frameErrs, err)
	}

	sig := c.itemSignal(id, st.Rect)
	changed := sig.Clicked()
	if changed {
		*v = !*v
	}
	t := c.hoverBlend(st, sig.Hovering())

	box := c.font.LineHeight(s.FontSize)
	w, h := c.font.Measure(label, s.FontSize)
	n := c.item(geom.V(box+s.ItemSpacing+w, geom.Maxf(box, h)))
	if n == nil {
		return changed
	}
	n.owner = id
	checked := *v
	font, size := c.font, s.FontSize
	frame := s.FrameBg.Lerp(s.ButtonHovered, t)
	mark, textCol, spacing := s.CheckMark, s.Text, s.ItemSpacing
	n.paint = func(l *draw.List, r geom.Rect) {
		boxRect := geom.R(r.X, r.Y, box, box)
		l.RectFilled(boxRect, frame)
		if checked {
			l.RectFilled(boxRect.Shrink(3), mark)
		}
		quads := font.Layout(nil, label, size, geom.V(r.X+box+spacing, r.Y))
		l.Quads(quads, font.Texture(), textCol)
	}
	return changed
}

// SliderFloat drags *v across [min, max] and reports whether it changed. The
// grab tracks the pointer's x within the last-known track rect.
func (c *Ctx) SliderFloat(label string, v *float32, min, max float32) bool {
	s := &c.style
	id := c.genID(label)
	st, _, err := c.cache.getOrCreate(id)
	if err != nil {
		c.frameErrs = append(c.frameErrs, err)
	}

	sig := c.itemSignal(id, st.Rect)
	changed := false
	if sig.Held() && st.Rect.W > 0 && max > min {
		t := geom.Clamp((c.in.Pos.X-st.Rect.X)/st.Rect.W, 0, 1)
		next := min + t*(max-min)
		if next != *v {
			*v = next
			changed = true
		}
	}
	*v = geom.Clamp(*v, min, max)

	h := c.font.LineHeight(s.FontSize) + s.FramePadding.Vertical()
	n := c.item(geom.V(160, h))
	if n == nil {
		return changed
	}
	n.owner = id
	n.stretch = true

	t := float32(0)
	if max > min {
		t = (*v - min) / (max - min)
	}
	hover := c.hoverBlend(st, sig.Hovering())
	frame := s.FrameBg.Lerp(s.ButtonHovered, hover*0.5)
	grabCol := s.SliderGrab
	font, size, textCol := c.font, s.FontSize, s.Text
	value := fmt.Sprintf("%s: %.3g", label, *v)
	n.paint = func(l *draw.List, r geom.Rect) {
		l.RectFilled(r, frame)
		grabW := float32(10)
		gx := r.X + t*(r.W-grabW)
		l.RectFilled(geom.R(gx, r.Y+1, grabW, r.H-2), grabCol)
		w, th := font.Measure(value, size)
		origin := geom.V(r.X+(r.W-w)*0.5, r.Y+(r.H-th)*0.5)
		l.PushClip(r)
		quads := font.Layout(nil, value, size, origin)
		l.Quads(quads, font.Texture(), textCol)
		l.PopClip()
	}
	return changed
}

// Separator draws a thin horizontal rule spanning the panel width.
func (c *Ctx) Separator() {
	n := c.item(geom.V(0, 1))
	if n == nil {
		return
	}
	n.stretch = true
	col := c.style.SeparatorColor
	n.paint = func(l *draw.List, r geom.Rect) {
		l.RectFilled(r, col)
	}
}

// Spacer consumes fixed space on the container's main axis.
func (c *Ctx) Spacer(px float32) {
	if n := c.item(geom.V(px, px)); n != nil {
		n.min = geom.V(px, px)
	}
}

// FlexSpacer consumes a weighted share of leftover space.
func (c *Ctx) FlexSpacer(weight float32) {
	if n := c.item(geom.Vec2{}); n != nil {
		n.flex = weight
	}
}

// Image lays out a textured rectangle at the given size.
func (c *Ctx) Image(tex draw.TextureID, size geom.Vec2) {
	n := c.item(size)
	if n == nil {
		return
	}
	n.paint = func(l *draw.List, r geom.Rect) {
		l.TexturedRect(r, geom.V(0, 0), geom.V(1, 1), tex, colors.White)
	}
}

// Row opens a horizontal group; widgets until EndRow lay out left to right.
func (c *Ctx) Row() {
	c.beginGroup(Horizontal)
}

func (c *Ctx) EndRow() { c.endGroup() }

// Column opens a nested vertical group inside a Row.
func (c *Ctx) Column() {
	c.beginGroup(Vertical)
}

func (c *Ctx) EndColumn() { c.endGroup() }

func (c *Ctx) beginGroup(axis Axis) {
	pf := c.cur
	if pf == nil {
		c.frameErrs = append(c.frameErrs, ErrNoPanel)
		return
	}
	if !pf.visible || pf.content == nil {
		pf.groups = append(pf.groups, nil)
		return
	}
	n := c.arena.alloc()
	n.axis = axis
	n.gap = c.style.ItemSpacing
	c.container().add(n)
	pf.groups = append(pf.groups, n)
}

func (c *Ctx) endGroup() {
	pf := c.cur
	if pf == nil {
		c.frameErrs = append(c.frameErrs, ErrNoPanel)
		return
	}
	if len(pf.groups) == 0 {
		c.frameErrs = append(c.frameErrs, ErrUnbalancedPanel)
		return
	}
	pf.groups = pf.groups[:len(pf.groups)-1]
}
