package dock

import "github.com/emberui/ember/geom"

// Placement is one resolved stack: the rect it occupies and its tabs.
type Placement struct {
	Node   NodeID
	Rect   geom.Rect
	Panels []string
	Active int
}

// Resolve converts the tree plus the dockspace rect into a rect per stack by
// recursively splitting space along each split's axis and ratio. This is the
// binary-split specialization of layout: no flex, just ratios.
func (t *Tree) Resolve(root geom.Rect) []Placement {
	var out []Placement
	t.resolve(t.root, root.Sane(), &out)
	return out
}

func (t *Tree) resolve(id NodeID, r geom.Rect, out *[]Placement) {
	if !t.valid(id) {
		return
	}
	n := &t.nodes[id]
	switch n.Kind {
	case KindSplit:
		var a, b geom.Rect
		if n.Axis == AxisHorizontal {
			a, b = r.SplitH(n.Ratio)
		} else {
			a, b = r.SplitV(n.Ratio)
		}
		t.resolve(n.A, a, out)
		t.resolve(n.B, b, out)
	case KindStack:
		*out = append(*out, Placement{
			Node:   id,
			Rect:   r,
			Panels: append([]string(nil), n.Panels...),
			Active: n.Active,
		})
	}
}

// PanelRects maps every docked panel to its stack's rect. Tabs of one stack
// share the rect; the active tab is the visible one.
func (t *Tree) PanelRects(root geom.Rect) map[string]geom.Rect {
	out := make(map[string]geom.Rect)
	for _, pl := range t.Resolve(root) {
		for _, p := range pl.Panels {
			out[p] = pl.Rect
		}
	}
	return out
}

// SplitAt finds the outermost split whose divider line is within grab px of
// p inside root. Used for split-resize hit testing; where dividers meet at a
// junction the shallower split wins, so the main divider stays grabbable
// along its whole length.
func (t *Tree) SplitAt(root geom.Rect, p geom.Vec2, grab float32) (NodeID, bool) {
	var hit NodeID = None
	t.splitAt(t.root, root.Sane(), p, grab, &hit)
	return hit, hit != None
}

func (t *Tree) splitAt(id NodeID, r geom.Rect, p geom.Vec2, grab float32, hit *NodeID) {
	if *hit != None || !t.valid(id) || t.nodes[id].Kind != KindSplit {
		return
	}
	n := &t.nodes[id]
	var a, b, divider geom.Rect
	if n.Axis == AxisHorizontal {
		a, b = r.SplitH(n.Ratio)
		divider = geom.R(a.X+a.W-grab, a.Y, grab*2, a.H)
	} else {
		a, b = r.SplitV(n.Ratio)
		divider = geom.R(a.X, a.Y+a.H-grab, a.W, grab*2)
	}
	if divider.Contains(p) {
		*hit = id
		return
	}
	t.splitAt(n.A, a, p, grab, hit)
	t.splitAt(n.B, b, p, grab, hit)
}

// RatioForPoint computes the ratio that would place a split's divider at p,
// clamped to the configured bounds. Drag-resizing feeds pointer positions
// through this.
func (t *Tree) RatioForPoint(id NodeID, area geom.Rect, p geom.Vec2) (float32, error) {
	if !t.valid(id) {
		return 0, ErrUnknownNode
	}
	n := &t.nodes[id]
	if n.Kind != KindSplit {
		return 0, ErrNotSplit
	}
	var ratio float32
	if n.Axis == AxisHorizontal && area.W > 0 {
		ratio = (p.X - area.X) / area.W
	} else if area.H > 0 {
		ratio = (p.Y - area.Y) / area.H
	}
	return geom.Clamp(ratio, t.cfg.MinRatio, t.cfg.MaxRatio), nil
}

// NodeArea returns the rect a node occupies when the tree is resolved
// against root.
func (t *Tree) NodeArea(id NodeID, root geom.Rect) (geom.Rect, error) {
	if !t.valid(id) {
		return geom.Rect{}, ErrUnknownNode
	}
	r, ok := t.nodeArea(t.root, root.Sane(), id)
	if !ok {
		return geom.Rect{}, ErrUnknownNode
	}
	return r, nil
}

func (t *Tree) nodeArea(cur NodeID, r geom.Rect, want NodeID) (geom.Rect, bool) {
	if !t.valid(cur) {
		return geom.Rect{}, false
	}
	if cur == want {
		return r, true
	}
	n := &t.nodes[cur]
	if n.Kind != KindSplit {
		return geom.Rect{}, false
	}
	var a, b geom.Rect
	if n.Axis == AxisHorizontal {
		a, b = r.SplitH(n.Ratio)
	} else {
		a, b = r.SplitV(n.Ratio)
	}
	if got, ok := t.nodeArea(n.A, a, want); ok {
		return got, true
	}
	return t.nodeArea(n.B, b, want)
}
