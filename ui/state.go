package ui

import (
	"github.com/tanema/gween"

	"github.com/emberui/ember/geom"
)

// WidgetState is the persistent per-widget record. Owned exclusively by the
// identity cache; widget calls read and mutate it through getOrCreate and
// never copy it out. Evicted once untouched for longer than the configured
// frame count.
type WidgetState struct {
	// Rect is the widget's last resolved rectangle, written back after
	// layout. Hit-testing in the following frame reads it, which is what
	// makes single-pass immediate mode interactive.
	Rect geom.Rect

	// Open doubles as panel visibility and tree-node expansion.
	Open      bool
	Collapsed bool

	Scroll geom.Vec2

	Hot     bool
	Active  bool
	Focused bool

	// HoverT is the animated hover blend in [0..1], driven by the tween.
	HoverT     float32
	hoverTween *gween.Tween

	// Value holds widget-local scalar state (slider grab offset).
	Value float32

	lastTouched uint64
}

// Touched reports the frame number this state was last requested in.
func (s *WidgetState) Touched() uint64 { return s.lastTouched }
