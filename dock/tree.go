package dock

import (
	"errors"
	"fmt"

	"github.com/emberui/ember/geom"
)

// NodeID indexes the tree's node arena. Parent links are back-references by
// index, so the tree never forms an ownership cycle.
type NodeID int32

// None marks the absence of a node (empty tree, root's parent, free slots).
const None NodeID = -1

type Kind uint8

const (
	KindStack Kind = iota // tabbed stack of panels
	KindSplit             // binary split
)

type Axis uint8

const (
	AxisHorizontal Axis = iota // children left/right
	AxisVertical               // children top/bottom
)

// Edge selects where a docked panel lands relative to its target.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
	EdgeCenter // join the target stack as a tab
)

func (e Edge) axis() Axis {
	if e == EdgeTop || e == EdgeBottom {
		return AxisVertical
	}
	return AxisHorizontal
}

// leading reports whether the docked panel takes the first child slot.
func (e Edge) leading() bool { return e == EdgeLeft || e == EdgeTop }

var (
	ErrUnknownNode  = errors.New("dock: unknown node")
	ErrUnknownPanel = errors.New("dock: panel not in tree")
	ErrNotSplit     = errors.New("dock: node is not a split")
	ErrNotStack     = errors.New("dock: node is not a stack")
	ErrSelfDock     = errors.New("dock: panel cannot dock onto itself")
)

// Node is either a Split (Axis, Ratio, A, B) or a Stack (Panels, Active).
// Mutated only through Tree operations.
type Node struct {
	Kind   Kind
	Parent NodeID

	// split fields
	Axis  Axis
	Ratio float32
	A, B  NodeID

	// stack fields
	Panels []string
	Active int

	used bool
}

// Config bounds split ratios so no pane collapses to zero.
type Config struct {
	MinRatio float32
	MaxRatio float32
}

func (c *Config) applyDefaults() {
	if c.MinRatio <= 0 {
		c.MinRatio = 0.05
	}
	if c.MaxRatio <= 0 || c.MaxRatio >= 1 {
		c.MaxRatio = 0.95
	}
}

// Tree is the persistent dock-node tree. It survives frames unchanged
// except through the explicit operations below.
type Tree struct {
	cfg   Config
	nodes []Node
	free  []NodeID
	root  NodeID
}

func NewTree(cfg Config) *Tree {
	cfg.applyDefaults()
	return &Tree{cfg: cfg, root: None}
}

func (t *Tree) Root() NodeID  { return t.root }
func (t *Tree) IsEmpty() bool { return t.root == None }

// Node returns a copy of the node record.
func (t *Tree) Node(id NodeID) (Node, error) {
	if !t.valid(id) {
		return Node{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	n := t.nodes[id]
	n.Panels = append([]string(nil), n.Panels...)
	return n, nil
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].used
}

func (t *Tree) alloc(n Node) NodeID {
	n.used = true
	if len(t.free) > 0 {
		id := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) release(id NodeID) {
	t.nodes[id] = Node{Parent: None, A: None, B: None}
	t.free = append(t.free, id)
}

// Find returns the stack holding panel.
func (t *Tree) Find(panel string) (NodeID, bool) {
	for id := range t.nodes {
		n := &t.nodes[id]
		if !n.used || n.Kind != KindStack {
			continue
		}
		for _, p := range n.Panels {
			if p == panel {
				return NodeID(id), true
			}
		}
	}
	return None, false
}

// Panels lists every docked panel in deterministic tree order (A before B,
// tab order within a stack).
func (t *Tree) Panels() []string {
	var out []string
	t.walk(t.root, func(id NodeID) {
		if n := &t.nodes[id]; n.Kind == KindStack {
			out = append(out, n.Panels...)
		}
	})
	return out
}

// Leaves lists every stack node in tree order.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	t.walk(t.root, func(id NodeID) {
		if t.nodes[id].Kind == KindStack {
			out = append(out, id)
		}
	})
	return out
}

func (t *Tree) walk(id NodeID, fn func(NodeID)) {
	if !t.valid(id) {
		return
	}
	fn(id)
	if t.nodes[id].Kind == KindSplit {
		t.walk(t.nodes[id].A, fn)
		t.walk(t.nodes[id].B, fn)
	}
}

// Dock inserts panel at the given edge of target. An already-docked panel is
// implicitly undocked first, so a panel occupies at most one position. An
// empty tree ignores target and edge and roots a new stack.
func (t *Tree) Dock(panel string, target NodeID, edge Edge) error {
	if t.root == None {
		t.root = t.alloc(Node{Kind: KindStack, Parent: None, A: None, B: None, Panels: []string{panel}})
		return nil
	}
	if !t.valid(target) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, target)
	}
	if home, ok := t.Find(panel); ok {
		if home == target && len(t.nodes[home].Panels) == 1 {
			return fmt.Errorf("%w: %q", ErrSelfDock, panel)
		}
		if err := t.Undock(panel); err != nil {
			return err
		}
		// collapsing may have removed the target
		if !t.valid(target) {
			return fmt.Errorf("%w: %d (removed by implicit undock)", ErrUnknownNode, target)
		}
	}

	if edge == EdgeCenter {
		n := &t.nodes[target]
		if n.Kind != KindStack {
			return fmt.Errorf("%w: %d", ErrNotStack, target)
		}
		n.Panels = append(n.Panels, panel)
		n.Active = len(n.Panels) - 1
		return nil
	}

	stack := t.alloc(Node{Kind: KindStack, A: None, B: None, Panels: []string{panel}})
	split := t.alloc(Node{Kind: KindSplit, Axis: edge.axis(), Ratio: 0.5, A: None, B: None})

	parent := t.nodes[target].Parent
	t.nodes[split].Parent = parent
	if parent == None {
		t.root = split
	} else if t.nodes[parent].A == target {
		t.nodes[parent].A = split
	} else {
		t.nodes[parent].B = split
	}

	if edge.leading() {
		t.nodes[split].A = stack
		t.nodes[split].B = target
	} else {
		t.nodes[split].A = target
		t.nodes[split].B = stack
	}
	t.nodes[stack].Parent = split
	t.nodes[target].Parent = split
	return nil
}

// Undock removes panel from its stack. An emptied stack is deleted and its
// parent split collapses by promoting the sibling, so no single-child split
// survives.
func (t *Tree) Undock(panel string) error {
	home, ok := t.Find(panel)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPanel, panel)
	}
	n := &t.nodes[home]
	for i, p := range n.Panels {
		if p == panel {
			n.Panels = append(n.Panels[:i], n.Panels[i+1:]...)
			break
		}
	}
	if n.Active >= len(n.Panels) {
		n.Active = len(n.Panels) - 1
	}
	if n.Active < 0 {
		n.Active = 0
	}
	if len(n.Panels) > 0 {
		return nil
	}

	parent := n.Parent
	t.release(home)
	if parent == None {
		t.root = None
		return nil
	}

	// promote the sibling into the parent's slot
	p := &t.nodes[parent]
	sibling := p.A
	if sibling == home {
		sibling = p.B
	}
	grand := p.Parent
	t.nodes[sibling].Parent = grand
	if grand == None {
		t.root = sibling
	} else if t.nodes[grand].A == parent {
		t.nodes[grand].A = sibling
	} else {
		t.nodes[grand].B = sibling
	}
	t.release(parent)
	return nil
}

// ResizeSplit sets a split's ratio, clamped to the configured bounds. No
// mutation happens on error.
func (t *Tree) ResizeSplit(id NodeID, ratio float32) error {
	if !t.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	n := &t.nodes[id]
	if n.Kind != KindSplit {
		return fmt.Errorf("%w: %d", ErrNotSplit, id)
	}
	n.Ratio = geom.Clamp(ratio, t.cfg.MinRatio, t.cfg.MaxRatio)
	return nil
}

// ActivateTab makes panel the visible tab of its stack. Geometry is
// untouched.
func (t *Tree) ActivateTab(id NodeID, panel string) error {
	if !t.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	n := &t.nodes[id]
	if n.Kind != KindStack {
		return fmt.Errorf("%w: %d", ErrNotStack, id)
	}
	for i, p := range n.Panels {
		if p == panel {
			n.Active = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q in stack %d", ErrUnknownPanel, panel, id)
}

// ActivePanel returns the visible tab of a stack node.
func (t *Tree) ActivePanel(id NodeID) (string, error) {
	if !t.valid(id) {
		return "", fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	n := &t.nodes[id]
	if n.Kind != KindStack || len(n.Panels) == 0 {
		return "", fmt.Errorf("%w: %d", ErrNotStack, id)
	}
	return n.Panels[n.Active], nil
}
