package draw

import (
	"github.com/emberui/ember/colors"
	"github.com/emberui/ember/geom"
)

// TextureID is an opaque handle the rendering backend resolves to a GPU
// texture. TextureID(0) means "no texture": the backend substitutes its 1x1
// white texture so solid and textured geometry share one pipeline.
type TextureID uint32

// Vertex layout: pos2 + uv2 + color4 => 8 floats. Matches the GL backend's
// attribute bindings.
type Vertex struct {
	X, Y       float32
	U, V       float32
	R, G, B, A float32
}

func vtx(x, y, u, v float32, c colors.Color) Vertex {
	return Vertex{x, y, u, v, c[0], c[1], c[2], c[3]}
}

// Command is one batched draw range. Immutable once the frame is compiled.
type Command struct {
	Clip        geom.Rect
	Texture     TextureID
	IndexOffset uint32
	IndexCount  uint32
}

// Quad is a positioned, UV-mapped rectangle. Glyph runs arrive as quads with
// placement already resolved by the text service.
type Quad struct {
	Rect     geom.Rect
	UV0, UV1 geom.Vec2
}

// Statistics captures the counts produced while recording one list.
type Statistics struct {
	Commands int
	Quads    int
	Dropped  int // ops discarded by zero-area clip
}

// TotalVertexCount reports vertices recorded this frame.
func (s Statistics) TotalVertexCount() int { return s.Quads * 4 }

// TotalIndexCount reports indices recorded this frame.
func (s Statistics) TotalIndexCount() int { return s.Quads * 6 }
