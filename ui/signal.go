package ui

import (
	"github.com/emberui/ember/geom"
	"github.com/emberui/ember/input"
)

// Signal is the bitflag set describing what the pointer did to one item this
// frame. Computed once per item from the frame's input snapshot and the
// item's last-known rect.
type Signal uint32

const (
	SignalMouseOver Signal = 1 << iota // pointer inside the rect, any panel
	SignalHovering                     // inside the rect of the hot item
	SignalPressed                      // left button went down on the item
	SignalHeld                         // left button is down and item is active
	SignalReleased                     // left button went up over the item
	SignalClicked                      // press and release without drag
	SignalDoubleClicked
	SignalDragging // item is active and pointer is dragging
)

func (s Signal) MouseOver() bool     { return s&SignalMouseOver != 0 }
func (s Signal) Hovering() bool      { return s&SignalHovering != 0 }
func (s Signal) Pressed() bool       { return s&SignalPressed != 0 }
func (s Signal) Held() bool          { return s&SignalHeld != 0 }
func (s Signal) Released() bool      { return s&SignalReleased != 0 }
func (s Signal) Clicked() bool       { return s&SignalClicked != 0 }
func (s Signal) DoubleClicked() bool { return s&SignalDoubleClicked != 0 }
func (s Signal) Dragging() bool      { return s&SignalDragging != 0 }

// itemSignal arbitrates hot/active for one item. Only items in the topmost
// panel under the pointer may become hot; the active item keeps receiving
// drag signals wherever the pointer goes.
func (c *Ctx) itemSignal(id ID, bb geom.Rect) Signal {
	var sig Signal
	left := c.in.Button(input.ButtonLeft)

	over := bb.Contains(c.in.Pos) && c.pointerInCurrentPanel()
	if over {
		sig |= SignalMouseOver
		if c.activeID == IDNil || c.activeID == id {
			c.nextHotID = id
		}
	}
	if over && c.hotID == id {
		sig |= SignalHovering
		if left.Pressed {
			sig |= SignalPressed
			c.activeID = id
		}
		if left.DoubleClicked {
			sig |= SignalDoubleClicked
		}
	}
	if c.activeID == id {
		if left.Down {
			sig |= SignalHeld
		}
		if left.Dragging {
			sig |= SignalDragging
		}
		if left.Released {
			sig |= SignalReleased
			if over && left.Clicked {
				sig |= SignalClicked
			}
			c.activeID = IDNil
		}
	}
	return sig
}

// pointerInCurrentPanel reports whether the pointer is owned by the panel
// currently being built (topmost panel under the pointer last frame, or no
// panel at all for panel-less items).
func (c *Ctx) pointerInCurrentPanel() bool {
	if c.cur == nil {
		return true
	}
	return c.hoverPanel == c.cur.id
}
