package game

// History keeps the most recent snapshots, oldest first. Not safe for
// concurrent use; callers serialize access the same way they serialize Reduce.
type History struct {
	limit  int
	states []GameState
}

// NewHistory retains at most limit snapshots; limit <= 0 keeps one.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1
	}
	return &History{limit: limit}
}

func (h *History) Push(s GameState) {
	h.states = append(h.states, s)
	if over := len(h.states) - h.limit; over > 0 {
		h.states = append(h.states[:0:0], h.states[over:]...)
	}
}

func (h *History) Len() int { return len(h.states) }

// Last returns the newest snapshot.
func (h *History) Last() (GameState, bool) {
	if len(h.states) == 0 {
		return GameState{}, false
	}
	return h.states[len(h.states)-1], true
}

// Snapshots returns a copy of the retained snapshots.
func (h *History) Snapshots() []GameState {
	return append([]GameState(nil), h.states...)
}
