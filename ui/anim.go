package ui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/emberui/ember/colors"
)

const hoverFadeSecs = 0.12

// hoverBlend advances a widget's hover animation toward hovered/not and
// returns the blend in [0..1]. Retargets the tween only when the hover state
// flips, so a steady state costs one Update call.
func (c *Ctx) hoverBlend(st *WidgetState, hovered bool) float32 {
	target := float32(0)
	if hovered {
		target = 1
	}
	if st.hoverTween == nil {
		if st.HoverT == target {
			return st.HoverT
		}
		st.hoverTween = gween.New(st.HoverT, target, hoverFadeSecs, ease.OutQuad)
	} else if hovered != st.Hot {
		st.hoverTween = gween.New(st.HoverT, target, hoverFadeSecs, ease.OutQuad)
	}
	st.Hot = hovered

	v, done := st.hoverTween.Update(c.in.DeltaTime)
	st.HoverT = v
	if done {
		st.hoverTween = nil
	}
	return st.HoverT
}

// buttonFill picks the button color for the current interaction, blending
// base toward hovered by the animated hover factor.
func (c *Ctx) buttonFill(st *WidgetState, sig Signal) colors.Color {
	s := &c.style
	if sig.Held() {
		return s.ButtonActive
	}
	t := c.hoverBlend(st, sig.Hovering())
	return s.Button.Lerp(s.ButtonHovered, t)
}
