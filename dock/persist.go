package dock

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// savedNode is the nested-record form of the tree used for session files.
// Exactly one of Split/Stack is set.
type savedNode struct {
	Split *savedSplit `yaml:"split,omitempty"`
	Stack *savedStack `yaml:"stack,omitempty"`
}

type savedSplit struct {
	Axis  string     `yaml:"axis"`
	Ratio float32    `yaml:"ratio"`
	A     *savedNode `yaml:"a"`
	B     *savedNode `yaml:"b"`
}

type savedStack struct {
	Panels []string `yaml:"panels"`
	Active int      `yaml:"active"`
}

type savedTree struct {
	Root *savedNode `yaml:"root"`
}

const (
	axisNameH = "horizontal"
	axisNameV = "vertical"
)

// MarshalYAML encodes the tree as a nested record. Round-trips exactly:
// Unmarshal of the output reproduces the same structure, ratios and tab
// order.
func (t *Tree) MarshalYAML() (any, error) {
	return savedTree{Root: t.export(t.root)}, nil
}

func (t *Tree) export(id NodeID) *savedNode {
	if !t.valid(id) {
		return nil
	}
	n := &t.nodes[id]
	if n.Kind == KindSplit {
		axis := axisNameH
		if n.Axis == AxisVertical {
			axis = axisNameV
		}
		return &savedNode{Split: &savedSplit{
			Axis:  axis,
			Ratio: n.Ratio,
			A:     t.export(n.A),
			B:     t.export(n.B),
		}}
	}
	return &savedNode{Stack: &savedStack{
		Panels: append([]string(nil), n.Panels...),
		Active: n.Active,
	}}
}

func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	var saved savedTree
	if err := value.Decode(&saved); err != nil {
		return fmt.Errorf("dock: decode layout: %w", err)
	}
	t.cfg.applyDefaults()
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.root = None
	root, err := t.restore(saved.Root, None)
	if err != nil {
		return err
	}
	t.root = root
	return nil
}

func (t *Tree) restore(s *savedNode, parent NodeID) (NodeID, error) {
	if s == nil {
		return None, nil
	}
	switch {
	case s.Split != nil && s.Stack != nil:
		return None, fmt.Errorf("dock: node is both split and stack")
	case s.Split != nil:
		axis := AxisHorizontal
		switch s.Split.Axis {
		case axisNameH:
		case axisNameV:
			axis = AxisVertical
		default:
			return None, fmt.Errorf("dock: unknown axis %q", s.Split.Axis)
		}
		if s.Split.A == nil || s.Split.B == nil {
			return None, fmt.Errorf("dock: split missing a child")
		}
		id := t.alloc(Node{
			Kind: KindSplit, Parent: parent, Axis: axis,
			Ratio: clampRatio(s.Split.Ratio, t.cfg),
			A:     None, B: None,
		})
		a, err := t.restore(s.Split.A, id)
		if err != nil {
			return None, err
		}
		b, err := t.restore(s.Split.B, id)
		if err != nil {
			return None, err
		}
		t.nodes[id].A = a
		t.nodes[id].B = b
		return id, nil
	case s.Stack != nil:
		if len(s.Stack.Panels) == 0 {
			return None, fmt.Errorf("dock: empty stack")
		}
		active := s.Stack.Active
		if active < 0 || active >= len(s.Stack.Panels) {
			active = 0
		}
		return t.alloc(Node{
			Kind: KindStack, Parent: parent, A: None, B: None,
			Panels: append([]string(nil), s.Stack.Panels...),
			Active: active,
		}), nil
	default:
		return None, fmt.Errorf("dock: node is neither split nor stack")
	}
}

func clampRatio(r float32, cfg Config) float32 {
	if r < cfg.MinRatio {
		return cfg.MinRatio
	}
	if r > cfg.MaxRatio {
		return cfg.MaxRatio
	}
	return r
}

// Save writes the tree to a session file.
func (t *Tree) Save(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("dock: marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dock: write layout: %w", err)
	}
	return nil
}

// Load reads a session file saved by Save. A missing file yields an empty
// tree, not an error.
func Load(path string, cfg Config) (*Tree, error) {
	t := NewTree(cfg)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("dock: read layout: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}
