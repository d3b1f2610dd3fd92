package ui

import "errors"

// Frame error taxonomy. All are local to the frame they occur in; only a
// duplicate ID can leak between frames (two call sites sharing one state
// record), which is why it is surfaced instead of silently merged.
var (
	// ErrDuplicateID: two widgets resolved to the same ID in one frame.
	// The second call still gets the shared record (best-effort), but the
	// frame reports the collision.
	ErrDuplicateID = errors.New("ui: duplicate widget id")

	// ErrUnbalancedIDStack: PushID/PopID mismatch detected at EndFrame.
	// Fatal for the frame; the draw list is withheld and the stack reset so
	// the next frame starts clean.
	ErrUnbalancedIDStack = errors.New("ui: unbalanced id stack")

	// ErrUnbalancedPanel: Begin without matching End.
	ErrUnbalancedPanel = errors.New("ui: unbalanced Begin/End")

	// ErrNoPanel: a widget call outside Begin/End.
	ErrNoPanel = errors.New("ui: widget call outside a panel")

	// ErrFrameNotStarted: EndFrame or widget calls before NewFrame.
	ErrFrameNotStarted = errors.New("ui: frame not started")
)
