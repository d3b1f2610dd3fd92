package ui

import (
	"github.com/emberui/ember/colors"
	"github.com/emberui/ember/geom"
)

// Insets are edge thicknesses: left, top, right, bottom.
type Insets struct {
	L, T, R, B float32
}

func UniformInsets(v float32) Insets { return Insets{v, v, v, v} }

func (i Insets) Horizontal() float32 { return i.L + i.R }
func (i Insets) Vertical() float32   { return i.T + i.B }

// Style is the read-only configuration snapshot referenced by all drawing
// during a frame. Swap it between frames, never mid-frame.
type Style struct {
	FontSize float32

	TitlebarHeight float32
	TabHeight      float32
	BorderWidth    float32
	ScrollbarWidth float32
	WindowPadding  Insets
	FramePadding   Insets
	ItemSpacing    float32
	MinPanelSize   geom.Vec2

	WindowBg       colors.Color
	Border         colors.Color
	Titlebar       colors.Color
	TitlebarActive colors.Color
	Text           colors.Color
	TextDim        colors.Color
	Button         colors.Color
	ButtonHovered  colors.Color
	ButtonActive   colors.Color
	FrameBg        colors.Color
	CheckMark      colors.Color
	SliderGrab     colors.Color
	ScrollbarBg    colors.Color
	ScrollbarGrab  colors.Color
	Tab            colors.Color
	TabActive      colors.Color
	DockPreview    colors.Color
	SeparatorColor colors.Color
}

// DefaultStyle is a dark theme close to the usual immediate-mode palettes.
func DefaultStyle() Style {
	return Style{
		FontSize: 14,

		TitlebarHeight: 24,
		TabHeight:      22,
		BorderWidth:    1,
		ScrollbarWidth: 10,
		WindowPadding:  UniformInsets(8),
		FramePadding:   Insets{8, 4, 8, 4},
		ItemSpacing:    6,
		MinPanelSize:   geom.V(80, 60),

		WindowBg:       colors.Hex(0x15181c),
		Border:         colors.Hex(0x3a3f46),
		Titlebar:       colors.Hex(0x22262c),
		TitlebarActive: colors.Hex(0x2d3340),
		Text:           colors.Hex(0xe8e8e8),
		TextDim:        colors.Hex(0x9aa0a6),
		Button:         colors.Hex(0x2d3340),
		ButtonHovered:  colors.Hex(0x3b4456),
		ButtonActive:   colors.Hex(0x4a5570),
		FrameBg:        colors.Hex(0x1c2026),
		CheckMark:      colors.Hex(0x6f9fe8),
		SliderGrab:     colors.Hex(0x6f9fe8),
		ScrollbarBg:    colors.Hex(0x1a1d22).WithAlpha(0.6),
		ScrollbarGrab:  colors.Hex(0x454c56),
		Tab:            colors.Hex(0x22262c),
		TabActive:      colors.Hex(0x2d3340),
		DockPreview:    colors.Hex(0x6f9fe8).WithAlpha(0.35),
		SeparatorColor: colors.Hex(0x3a3f46),
	}
}
