package ui

import (
	"github.com/emberui/ember/draw"
	"github.com/emberui/ember/geom"
)

// Axis is the main direction of a container node.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

// layoutNode is a transient request in the per-frame layout tree: produced
// by widget calls, consumed by solve, gone at frame end. Layout is a pure
// function of the constraints, measured content and persistent scroll state;
// resolved rects from earlier frames never feed back in.
type layoutNode struct {
	axis    Axis
	min     geom.Vec2
	max     geom.Vec2 // zero component = unbounded
	pref    geom.Vec2 // leaf content size; containers compute their own
	flex    float32   // share of leftover main-axis space; 0 = fixed
	stretch bool      // fill the cross axis
	gap     float32
	padding Insets

	scrollable bool // lay children at preferred size, overflow scrolls
	scroll     geom.Vec2
	clip       bool

	children []*layoutNode

	// resolved
	rect    geom.Rect
	content geom.Vec2 // measured child extent, pre-shrink (scroll bounds)

	paint func(*draw.List, geom.Rect)
	owner ID // widget whose state receives the resolved rect
}

func (n *layoutNode) add(child *layoutNode) {
	n.children = append(n.children, child)
}

func axisOf(v geom.Vec2, a Axis) float32 {
	if a == Horizontal {
		return v.X
	}
	return v.Y
}

func withAxis(v geom.Vec2, a Axis, val float32) geom.Vec2 {
	if a == Horizontal {
		v.X = val
	} else {
		v.Y = val
	}
	return v
}

func crossOf(v geom.Vec2, a Axis) float32 {
	if a == Horizontal {
		return v.Y
	}
	return v.X
}

// measure is the bottom-up pass: compute each node's intrinsic preferred
// size from children and content, clamped to min/max. Inputs are sanitized
// so NaN or negative sizes degrade to zero instead of spreading.
func measure(n *layoutNode) geom.Vec2 {
	n.min = geom.Vec2{X: geom.Sanitize(n.min.X), Y: geom.Sanitize(n.min.Y)}
	n.max = geom.Vec2{X: geom.Sanitize(n.max.X), Y: geom.Sanitize(n.max.Y)}
	n.pref = geom.Vec2{X: geom.Sanitize(n.pref.X), Y: geom.Sanitize(n.pref.Y)}

	if len(n.children) > 0 {
		var main, cross float32
		for i, c := range n.children {
			sz := measure(c)
			main += axisOf(sz, n.axis)
			cross = geom.Maxf(cross, crossOf(sz, n.axis))
			if i > 0 {
				main += n.gap
			}
		}
		n.content = withAxis(withAxis(geom.Vec2{}, n.axis, main), crossAxis(n.axis), cross)
		content := n.content.Add(geom.V(n.padding.Horizontal(), n.padding.Vertical()))
		if n.pref.X <= 0 {
			n.pref.X = content.X
		}
		if n.pref.Y <= 0 {
			n.pref.Y = content.Y
		}
	}

	n.pref = clampSize(n.pref, n.min, n.max)
	return n.pref
}

func crossAxis(a Axis) Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func clampSize(v, min, max geom.Vec2) geom.Vec2 {
	v = v.Max(min)
	if max.X > 0 {
		v.X = geom.Minf(v.X, max.X)
	}
	if max.Y > 0 {
		v.Y = geom.Minf(v.Y, max.Y)
	}
	return v
}

// arrange is the top-down pass: place children inside r per the container's
// rule, growing flex children proportionally to their weights when space is
// left over and shrinking shrinkable children proportionally when it runs
// short, each clamped to its min. A scrollable container skips shrinking:
// children keep their measured sizes and the scroll offset shifts them.
func arrange(n *layoutNode, r geom.Rect) {
	n.rect = r.Sane()
	if len(n.children) == 0 {
		return
	}

	inner := n.rect.Inset(n.padding.L, n.padding.T, n.padding.R, n.padding.B)
	availMain := axisOf(inner.Size(), n.axis)
	innerCross := crossOf(inner.Size(), n.axis)

	gaps := float32(0)
	if len(n.children) > 1 {
		gaps = n.gap * float32(len(n.children)-1)
	}

	var sumPref, sumFlex, shrinkable float32
	for _, c := range n.children {
		sumPref += axisOf(c.pref, n.axis)
		sumFlex += c.flex
		shrinkable += axisOf(c.pref, n.axis) - axisOf(c.min, n.axis)
	}

	sizes := make([]float32, len(n.children))
	for i, c := range n.children {
		sizes[i] = axisOf(c.pref, n.axis)
	}

	free := availMain - gaps - sumPref
	switch {
	case free > 0 && sumFlex > 0:
		for i, c := range n.children {
			if c.flex > 0 {
				grown := sizes[i] + free*c.flex/sumFlex
				if m := axisOf(c.max, n.axis); m > 0 {
					grown = geom.Minf(grown, m)
				}
				sizes[i] = grown
			}
		}
	case free < 0 && !n.scrollable && shrinkable > 0:
		// proportional shrink, floored at each child's min
		deficit := geom.Minf(-free, shrinkable)
		for i, c := range n.children {
			room := axisOf(c.pref, n.axis) - axisOf(c.min, n.axis)
			sizes[i] -= deficit * room / shrinkable
		}
	}

	// track unshrunk extent for scroll bounds
	var contentMain float32
	for _, c := range n.children {
		contentMain += axisOf(c.pref, n.axis)
	}
	n.content = withAxis(n.content, n.axis, contentMain+gaps)

	origin := inner.Min().Sub(n.scroll)
	cursor := float32(0)
	for i, c := range n.children {
		cross := crossOf(c.pref, n.axis)
		if c.stretch {
			cross = innerCross
		}
		cross = geom.Clamp(cross, 0, geom.Maxf(innerCross, 0))

		var cr geom.Rect
		if n.axis == Horizontal {
			cr = geom.R(origin.X+cursor, origin.Y, sizes[i], cross)
		} else {
			cr = geom.R(origin.X, origin.Y+cursor, cross, sizes[i])
		}
		arrange(c, cr)
		cursor += sizes[i]
		if i < len(n.children)-1 {
			cursor += n.gap
		}
	}
}

// solve runs both passes against the given rect.
func solve(root *layoutNode, r geom.Rect) {
	measure(root)
	arrange(root, r)
}

// paintTree walks resolved nodes in declaration order, emitting draw ops and
// writing resolved rects back to widget state.
func (c *Ctx) paintTree(n *layoutNode, list *draw.List) {
	if n.owner != IDNil {
		if st, ok := c.cache.peek(n.owner); ok {
			st.Rect = n.rect
		}
	}
	if n.paint != nil {
		n.paint(list, n.rect)
	}
	if n.clip {
		list.PushClip(n.rect)
	}
	for _, child := range n.children {
		c.paintTree(child, list)
	}
	if n.clip {
		list.PopClip()
	}
}
