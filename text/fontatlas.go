package text

import (
	"fmt"
	"image"
	"image/color"
	idraw "image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/emberui/ember/draw"
	"github.com/emberui/ember/geom"
)

// Glyph is one packed atlas entry.
type Glyph struct {
	Rune     rune
	Advance  float32 // pixels at the atlas base size
	BearingX float32 // left bearing
	BearingY float32 // baseline to glyph top
	W, H     int     // bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Atlas is a shelf-packed monochrome glyph atlas (white coverage in RGBA)
// rasterized at one base size. Other sizes scale the base metrics, which is
// fine for UI chrome and keeps the frame free of rasterization work.
//
// The Pixels/W/H fields are CPU-side; the backend uploads them once and
// stores the handle with SetTexture.
type Atlas struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Pixels                   []byte // RGBA, W*H*4
	W, H                     int

	face font.Face
	tex  draw.TextureID
}

// SetTexture records the GPU handle assigned after upload.
func (a *Atlas) SetTexture(t draw.TextureID) { a.tex = t }

func (a *Atlas) Texture() draw.TextureID { return a.tex }

func (a *Atlas) Close() error {
	if a.face != nil {
		err := a.face.Close()
		a.face = nil
		return err
	}
	return nil
}

// LoadTTF reads a font file and builds an atlas at the given base size.
func LoadTTF(path string, sizePx float32) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return NewAtlas(data, sizePx)
}

// NewAtlas builds an atlas from raw TTF/OTF bytes. Covers ASCII 32..255.
func NewAtlas(ttfData []byte, sizePx float32) (*Atlas, error) {
	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	var measure []meas
	for r := rune(32); r <= rune(255); r++ {
		br, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   r,
			w:   (br.Max.X - br.Min.X).Round(),
			h:   (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()),
		})
	}

	// Shelf packer: rows, growing the atlas until everything fits.
	const padding = 2
	atlasSize := 256
	var pos map[rune]image.Point
	for {
		x, y, rowH := padding, padding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))
		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+padding > atlasSize {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > atlasSize || g.w+padding*2 > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			if g.h > rowH {
				rowH = g.h
			}
		}
		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > 4096 {
			_ = face.Close()
			return nil, fmt.Errorf("font atlas exceeds %d px", 4096)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	idraw.Draw(dst, dst.Bounds(), &image.Uniform{color.RGBA{}}, image.Point{}, idraw.Src)
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		entry := Glyph{
			Rune:     g.r,
			Advance:  g.adv,
			BearingX: g.bx,
			BearingY: g.by,
			W:        g.w,
			H:        g.h,
		}
		if g.w > 0 && g.h > 0 {
			p := pos[g.r]
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			entry.U0 = float32(p.X) / float32(atlasSize)
			entry.V0 = float32(p.Y) / float32(atlasSize)
			entry.U1 = float32(p.X+g.w) / float32(atlasSize)
			entry.V1 = float32(p.Y+g.h) / float32(atlasSize)
		}
		glyphs[g.r] = entry
	}

	return &Atlas{
		SizePx:  sizePx,
		Ascent:  ascent,
		Descent: descent,
		LineGap: lineGap,
		Glyphs:  glyphs,
		Pixels:  dst.Pix,
		W:       atlasSize,
		H:       atlasSize,
		face:    face,
	}, nil
}

func (a *Atlas) scale(size float32) float32 {
	if size <= 0 || a.SizePx <= 0 {
		return 1
	}
	return size / a.SizePx
}

func (a *Atlas) LineHeight(size float32) float32 {
	return (a.Ascent - a.Descent + a.LineGap) * a.scale(size)
}

func (a *Atlas) Measure(s string, size float32) (float32, float32) {
	if s == "" {
		return 0, 0
	}
	sc := a.scale(size)
	lineH := a.Ascent - a.Descent + a.LineGap
	var width, lineW float32
	height := lineH
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			width = geom.Maxf(width, lineW)
			lineW = 0
			height += lineH
			prev = -1
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			g = a.Glyphs[' ']
		}
		if prev >= 0 && a.face != nil {
			lineW += float32(a.face.Kern(prev, r)) / 64.0
		}
		lineW += g.Advance
		prev = r
	}
	width = geom.Maxf(width, lineW)
	return width * sc, height * sc
}

// Layout resolves glyph quads for s with the top-left corner at origin.
func (a *Atlas) Layout(dst []draw.Quad, s string, size float32, origin geom.Vec2) []draw.Quad {
	sc := a.scale(size)
	lineH := (a.Ascent - a.Descent + a.LineGap) * sc
	penX := origin.X
	baseY := origin.Y + a.Ascent*sc
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			penX = origin.X
			baseY += lineH
			prev = -1
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			if sp, ok2 := a.Glyphs[' ']; ok2 {
				penX += sp.Advance * sc
			}
			prev = r
			continue
		}
		if prev >= 0 && a.face != nil {
			penX += float32(a.face.Kern(prev, r)) / 64.0 * sc
		}
		if g.W > 0 && g.H > 0 {
			left := penX + g.BearingX*sc
			top := baseY - g.BearingY*sc
			dst = append(dst, draw.Quad{
				Rect: geom.R(left, top, float32(g.W)*sc, float32(g.H)*sc),
				UV0:  geom.V(g.U0, g.V0),
				UV1:  geom.V(g.U1, g.V1),
			})
		}
		penX += g.Advance * sc
		prev = r
	}
	return dst
}
