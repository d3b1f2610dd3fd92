package geom

// Rect is an axis-aligned screen-space rectangle. W and H are kept >= 0 by
// every constructor and mutator; use Sane() after arithmetic that may go
// negative.
type Rect struct {
	X, Y, W, H float32
}

func R(x, y, w, h float32) Rect {
	return Rect{x, y, Maxf(w, 0), Maxf(h, 0)}
}

// FromMinMax builds a rect from two corners. Inverted corners collapse to a
// zero-extent rect at min.
func FromMinMax(min, max Vec2) Rect {
	return R(min.X, min.Y, max.X-min.X, max.Y-min.Y)
}

func FromCenterSize(center, size Vec2) Rect {
	return R(center.X-size.X*0.5, center.Y-size.Y*0.5, size.X, size.Y)
}

func (r Rect) Min() Vec2     { return Vec2{r.X, r.Y} }
func (r Rect) Max() Vec2     { return Vec2{r.X + r.W, r.Y + r.H} }
func (r Rect) Size() Vec2    { return Vec2{r.W, r.H} }
func (r Rect) Center() Vec2  { return Vec2{r.X + r.W*0.5, r.Y + r.H*0.5} }
func (r Rect) Area() float32 { return r.W * r.H }
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W && r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Intersect returns the overlapping region. Disjoint rects yield a
// zero-extent rect, never negative.
func (r Rect) Intersect(o Rect) Rect {
	min := r.Min().Max(o.Min())
	max := r.Max().Min(o.Max())
	return FromMinMax(min, max)
}

func (r Rect) Union(o Rect) Rect {
	min := r.Min().Min(o.Min())
	max := r.Max().Max(o.Max())
	return FromMinMax(min, max)
}

func (r Rect) Translate(d Vec2) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Expand grows the rect by amt on every side (shrinks when negative).
func (r Rect) Expand(amt float32) Rect {
	return R(r.X-amt, r.Y-amt, r.W+2*amt, r.H+2*amt)
}

func (r Rect) Shrink(amt float32) Rect { return r.Expand(-amt) }

// Inset removes the given edge thicknesses from the rect.
func (r Rect) Inset(left, top, right, bottom float32) Rect {
	return R(r.X+left, r.Y+top, r.W-left-right, r.H-top-bottom)
}

func (r Rect) WithMinX(x float32) Rect { return FromMinMax(Vec2{x, r.Y}, r.Max()) }
func (r Rect) WithMinY(y float32) Rect { return FromMinMax(Vec2{r.X, y}, r.Max()) }
func (r Rect) WithMaxX(x float32) Rect { return FromMinMax(r.Min(), Vec2{x, r.Y + r.H}) }
func (r Rect) WithMaxY(y float32) Rect { return FromMinMax(r.Min(), Vec2{r.X + r.W, y}) }

// ClampPoint returns p moved inside the rect.
func (r Rect) ClampPoint(p Vec2) Vec2 {
	return Vec2{Clamp(p.X, r.X, r.X+r.W), Clamp(p.Y, r.Y, r.Y+r.H)}
}

// Sane returns the rect with non-finite origins zeroed and NaN or negative
// extents clamped to zero. Origins may stay negative (off-screen is valid).
func (r Rect) Sane() Rect {
	return Rect{Finite(r.X), Finite(r.Y), Sanitize(r.W), Sanitize(r.H)}
}

// SplitH cuts the rect vertically at ratio of its width, returning the left
// and right parts.
func (r Rect) SplitH(ratio float32) (Rect, Rect) {
	w := r.W * Clamp(ratio, 0, 1)
	return R(r.X, r.Y, w, r.H), R(r.X+w, r.Y, r.W-w, r.H)
}

// SplitV cuts the rect horizontally at ratio of its height, returning the
// top and bottom parts.
func (r Rect) SplitV(ratio float32) (Rect, Rect) {
	h := r.H * Clamp(ratio, 0, 1)
	return R(r.X, r.Y, r.W, h), R(r.X, r.Y+h, r.W, r.H-h)
}

// CutTop removes a strip of the given height from the top and returns
// (strip, rest).
func (r Rect) CutTop(h float32) (Rect, Rect) {
	h = Clamp(h, 0, r.H)
	return R(r.X, r.Y, r.W, h), R(r.X, r.Y+h, r.W, r.H-h)
}

// CutRight removes a strip of the given width from the right and returns
// (strip, rest).
func (r Rect) CutRight(w float32) (Rect, Rect) {
	w = Clamp(w, 0, r.W)
	return R(r.X+r.W-w, r.Y, w, r.H), R(r.X, r.Y, r.W-w, r.H)
}
