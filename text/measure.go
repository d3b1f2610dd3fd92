package text

import (
	"strings"

	"github.com/emberui/ember/draw"
	"github.com/emberui/ember/geom"
)

// Measurer is the black-box measurement service the layout engine calls.
type Measurer interface {
	// Measure returns the pixel extent of s at the given size.
	Measure(s string, size float32) (w, h float32)
	// LineHeight returns the baseline-to-baseline distance at the given size.
	LineHeight(size float32) float32
}

// Source is a Measurer that can also resolve glyph placement into atlas
// quads for the draw compiler.
type Source interface {
	Measurer
	// Layout appends one quad per visible glyph of s, top-left anchored at
	// origin, and returns the extended slice.
	Layout(dst []draw.Quad, s string, size float32, origin geom.Vec2) []draw.Quad
	// Texture is the atlas texture the quads sample from.
	Texture() draw.TextureID
}

// FixedMeasurer is a monospace stand-in for headless runs and tests: every
// glyph advances by Advance*size and lines are LineGap*size tall. Layout
// yields untextured block quads so draw output stays deterministic without a
// font file.
type FixedMeasurer struct {
	Advance float32 // fraction of size per rune, 0 means 0.5
	Gap     float32 // fraction of size per line, 0 means 1.2
}

func (m FixedMeasurer) advance() float32 {
	if m.Advance > 0 {
		return m.Advance
	}
	return 0.5
}

func (m FixedMeasurer) LineHeight(size float32) float32 {
	if m.Gap > 0 {
		return m.Gap * size
	}
	return 1.2 * size
}

func (m FixedMeasurer) Measure(s string, size float32) (float32, float32) {
	if s == "" {
		return 0, 0
	}
	adv := m.advance() * size
	var maxLine, line float32
	lines := 1
	for _, r := range s {
		if r == '\n' {
			lines++
			maxLine = geom.Maxf(maxLine, line)
			line = 0
			continue
		}
		line += adv
	}
	maxLine = geom.Maxf(maxLine, line)
	return maxLine, float32(lines) * m.LineHeight(size)
}

func (m FixedMeasurer) Layout(dst []draw.Quad, s string, size float32, origin geom.Vec2) []draw.Quad {
	adv := m.advance() * size
	lineH := m.LineHeight(size)
	x, y := origin.X, origin.Y
	for _, r := range s {
		if r == '\n' {
			x = origin.X
			y += lineH
			continue
		}
		if !strings.ContainsRune(" \t", r) {
			dst = append(dst, draw.Quad{
				Rect: geom.R(x+adv*0.1, y+size*0.15, adv*0.8, size*0.7),
				UV0:  geom.V(0, 0), UV1: geom.V(1, 1),
			})
		}
		x += adv
	}
	return dst
}

func (FixedMeasurer) Texture() draw.TextureID { return 0 }
