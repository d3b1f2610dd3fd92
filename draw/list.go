package draw

import (
	"github.com/emberui/ember/colors"
	"github.com/emberui/ember/geom"
)

// List records drawing operations for one panel (or one frame, once
// compiled) as a flat vertex/index buffer plus an ordered command sequence.
//
// Batching happens at record time: an op whose {texture, clip} pair matches
// the command currently being built extends it, anything else starts a new
// command. Paint order is never changed, only adjacent compatible ops
// coalesce.
type List struct {
	Vertices []Vertex
	Indices  []uint32
	Commands []Command

	clipStack []geom.Rect
	viewport  geom.Rect
	stats     Statistics
}

func NewList(viewport geom.Rect) *List {
	l := &List{}
	l.Reset(viewport)
	return l
}

// Reset clears the list for a new frame, keeping allocations.
func (l *List) Reset(viewport geom.Rect) {
	l.Vertices = l.Vertices[:0]
	l.Indices = l.Indices[:0]
	l.Commands = l.Commands[:0]
	l.clipStack = l.clipStack[:0]
	l.viewport = viewport.Sane()
	l.stats = Statistics{}
}

func (l *List) Stats() Statistics { return l.stats }

// ClipRect is the intersection of the viewport with every pushed clip.
func (l *List) ClipRect() geom.Rect {
	if len(l.clipStack) == 0 {
		return l.viewport
	}
	return l.clipStack[len(l.clipStack)-1]
}

// PushClip narrows the active clip to the intersection of r with the current
// one. Every push must be paired with PopClip.
func (l *List) PushClip(r geom.Rect) {
	l.clipStack = append(l.clipStack, l.ClipRect().Intersect(r.Sane()))
}

// PushClipFull pushes r without intersecting the ancestors. Overlay
// decorations (dock previews, tooltips) that must escape a panel's clip use
// this.
func (l *List) PushClipFull(r geom.Rect) {
	l.clipStack = append(l.clipStack, r.Sane())
}

func (l *List) PopClip() {
	if len(l.clipStack) > 0 {
		l.clipStack = l.clipStack[:len(l.clipStack)-1]
	}
}

// command returns the command to extend for the given texture under the
// active clip, starting a new one only when texture or clip differ from the
// command currently being built.
func (l *List) command(tex TextureID) *Command {
	clip := l.ClipRect()
	if n := len(l.Commands); n > 0 {
		last := &l.Commands[n-1]
		if last.Texture == tex && last.Clip == clip {
			return last
		}
	}
	l.Commands = append(l.Commands, Command{
		Clip:        clip,
		Texture:     tex,
		IndexOffset: uint32(len(l.Indices)),
	})
	l.stats.Commands = len(l.Commands)
	return &l.Commands[len(l.Commands)-1]
}

// visible reports whether r survives the active clip. Fully scrolled-out
// geometry is dropped here, it is not an error.
func (l *List) visible(r geom.Rect) bool {
	if l.ClipRect().Intersect(r).IsEmpty() {
		l.stats.Dropped++
		return false
	}
	return true
}

func (l *List) pushQuad(cmd *Command, corners [4]Vertex) {
	base := uint32(len(l.Vertices))
	l.Vertices = append(l.Vertices, corners[0], corners[1], corners[2], corners[3])
	l.Indices = append(l.Indices,
		base+0, base+2, base+1,
		base+1, base+2, base+3,
	)
	cmd.IndexCount += 6
	l.stats.Quads++
}

// RectFilled records a solid rectangle.
func (l *List) RectFilled(r geom.Rect, col colors.Color) {
	r = r.Sane()
	if r.IsEmpty() || col[3] <= 0 || !l.visible(r) {
		return
	}
	cmd := l.command(0)
	l.pushQuad(cmd, [4]Vertex{
		vtx(r.X, r.Y, 0, 0, col),
		vtx(r.X+r.W, r.Y, 1, 0, col),
		vtx(r.X, r.Y+r.H, 0, 1, col),
		vtx(r.X+r.W, r.Y+r.H, 1, 1, col),
	})
}

// RectFilledGradientV records a rectangle shaded from top to bottom.
func (l *List) RectFilledGradientV(r geom.Rect, top, bottom colors.Color) {
	r = r.Sane()
	if r.IsEmpty() || (top[3] <= 0 && bottom[3] <= 0) || !l.visible(r) {
		return
	}
	cmd := l.command(0)
	l.pushQuad(cmd, [4]Vertex{
		vtx(r.X, r.Y, 0, 0, top),
		vtx(r.X+r.W, r.Y, 1, 0, top),
		vtx(r.X, r.Y+r.H, 0, 1, bottom),
		vtx(r.X+r.W, r.Y+r.H, 1, 1, bottom),
	})
}

// RectOutline records a one-quad-per-edge outline of the given thickness,
// drawn inside r.
func (l *List) RectOutline(r geom.Rect, col colors.Color, thickness float32) {
	r = r.Sane()
	if r.IsEmpty() || col[3] <= 0 || thickness <= 0 {
		return
	}
	t := geom.Minf(thickness, geom.Minf(r.W, r.H)*0.5)
	l.RectFilled(geom.R(r.X, r.Y, r.W, t), col)             // top
	l.RectFilled(geom.R(r.X, r.Y+r.H-t, r.W, t), col)       // bottom
	l.RectFilled(geom.R(r.X, r.Y+t, t, r.H-2*t), col)       // left
	l.RectFilled(geom.R(r.X+r.W-t, r.Y+t, t, r.H-2*t), col) // right
}

// Line records an axis-aligned or diagonal segment as a thin quad.
func (l *List) Line(a, b geom.Vec2, col colors.Color, thickness float32) {
	if col[3] <= 0 || thickness <= 0 {
		return
	}
	d := b.Sub(a)
	length := d.Len()
	if length <= 0 {
		return
	}
	// unit normal scaled by half thickness
	nx := -d.Y / length * thickness * 0.5
	ny := d.X / length * thickness * 0.5
	bound := geom.FromMinMax(a.Min(b), a.Max(b)).Expand(thickness)
	if !l.visible(bound) {
		return
	}
	cmd := l.command(0)
	l.pushQuad(cmd, [4]Vertex{
		vtx(a.X+nx, a.Y+ny, 0, 0, col),
		vtx(b.X+nx, b.Y+ny, 1, 0, col),
		vtx(a.X-nx, a.Y-ny, 0, 1, col),
		vtx(b.X-nx, b.Y-ny, 1, 1, col),
	})
}

// TexturedRect records an image quad with explicit UVs.
func (l *List) TexturedRect(r geom.Rect, uv0, uv1 geom.Vec2, tex TextureID, tint colors.Color) {
	r = r.Sane()
	if r.IsEmpty() || tint[3] <= 0 || !l.visible(r) {
		return
	}
	cmd := l.command(tex)
	l.pushQuad(cmd, [4]Vertex{
		vtx(r.X, r.Y, uv0.X, uv0.Y, tint),
		vtx(r.X+r.W, r.Y, uv1.X, uv0.Y, tint),
		vtx(r.X, r.Y+r.H, uv0.X, uv1.Y, tint),
		vtx(r.X+r.W, r.Y+r.H, uv1.X, uv1.Y, tint),
	})
}

// Quads packs pre-placed quads (glyph runs from the text service) against a
// single texture. Placement is taken as resolved; this only fills buffers.
func (l *List) Quads(quads []Quad, tex TextureID, tint colors.Color) {
	if len(quads) == 0 || tint[3] <= 0 {
		return
	}
	for _, q := range quads {
		r := q.Rect.Sane()
		if r.IsEmpty() || !l.visible(r) {
			continue
		}
		cmd := l.command(tex)
		l.pushQuad(cmd, [4]Vertex{
			vtx(r.X, r.Y, q.UV0.X, q.UV0.Y, tint),
			vtx(r.X+r.W, r.Y, q.UV1.X, q.UV0.Y, tint),
			vtx(r.X, r.Y+r.H, q.UV0.X, q.UV1.Y, tint),
			vtx(r.X+r.W, r.Y+r.H, q.UV1.X, q.UV1.Y, tint),
		})
	}
}

// Append concatenates src onto l in paint order, rebasing indices and
// merging across the seam when the adjacent commands are compatible.
func (l *List) Append(src *List) {
	if src == nil || len(src.Commands) == 0 {
		return
	}
	vertBase := uint32(len(l.Vertices))
	idxBase := uint32(len(l.Indices))
	l.Vertices = append(l.Vertices, src.Vertices...)
	for _, i := range src.Indices {
		l.Indices = append(l.Indices, i+vertBase)
	}
	for ci, c := range src.Commands {
		c.IndexOffset += idxBase
		if ci == 0 && len(l.Commands) > 0 {
			last := &l.Commands[len(l.Commands)-1]
			if last.Texture == c.Texture && last.Clip == c.Clip &&
				last.IndexOffset+last.IndexCount == c.IndexOffset {
				last.IndexCount += c.IndexCount
				continue
			}
		}
		l.Commands = append(l.Commands, c)
	}
	l.stats.Quads += src.stats.Quads
	l.stats.Dropped += src.stats.Dropped
	l.stats.Commands = len(l.Commands)
}

// ClipDepth reports the number of clips currently pushed. The orchestrator
// checks it is zero at frame end.
func (l *List) ClipDepth() int { return len(l.clipStack) }
