package ui

import "fmt"

// stateCache is the widget identity cache: ID -> persistent WidgetState.
// The only structure besides the dock tree that survives across frames.
type stateCache struct {
	entries map[ID]*WidgetState
	frame   uint64

	// evictAfter is K: an entry untouched for more than K frames is removed
	// at endFrame. Default survives one hidden/re-shown cycle.
	evictAfter uint64
}

func newStateCache(evictAfter int) *stateCache {
	if evictAfter <= 0 {
		evictAfter = 2
	}
	return &stateCache{
		entries:    make(map[ID]*WidgetState, 64),
		evictAfter: uint64(evictAfter),
	}
}

func (sc *stateCache) beginFrame(frame uint64) { sc.frame = frame }

// getOrCreate returns the state for id, zero-initialized on first sight, and
// stamps it with the current frame. Requesting the same id twice within one
// frame is a collision: the shared record is still returned so the caller
// keeps functioning, alongside the error.
func (sc *stateCache) getOrCreate(id ID) (st *WidgetState, created bool, err error) {
	st, ok := sc.entries[id]
	if !ok {
		st = &WidgetState{}
		sc.entries[id] = st
		st.lastTouched = sc.frame
		return st, true, nil
	}
	if st.lastTouched == sc.frame {
		err = fmt.Errorf("%w: %#x", ErrDuplicateID, uint64(id))
	}
	st.lastTouched = sc.frame
	return st, false, err
}

// peek returns the state without touching it, for cross-widget reads
// (dock-drop targeting inspects other panels' rects).
func (sc *stateCache) peek(id ID) (*WidgetState, bool) {
	st, ok := sc.entries[id]
	return st, ok
}

// endFrame evicts entries whose last touch is more than evictAfter frames
// old.
func (sc *stateCache) endFrame() {
	for id, st := range sc.entries {
		if sc.frame-st.lastTouched > sc.evictAfter {
			delete(sc.entries, id)
		}
	}
}

func (sc *stateCache) len() int { return len(sc.entries) }
