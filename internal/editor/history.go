package editor

// DefaultHistoryCapacity is the number of submitted inputs retained.
const DefaultHistoryCapacity = 100

// InputHistory is a fixed-capacity circular buffer of previously submitted
// inputs with a nullable navigation index. While navigating, the text that
// was being composed is parked in a draft slot and restored when navigation
// moves past the newest entry.
type InputHistory struct {
	entries  []string
	capacity int
	write    int // next slot to overwrite
	size     int
	nav      int // distance from the newest entry; -1 = not navigating
	draft    string
}

// NewInputHistory creates a history with the given capacity. A non-positive
// capacity falls back to the default.
func NewInputHistory(capacity int) *InputHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &InputHistory{
		entries:  make([]string, capacity),
		capacity: capacity,
		nav:      -1,
	}
}

// Push stores a submitted input. Empty text and texts identical to the most
// recent entry are dropped. Pushing always ends any active navigation.
func (h *InputHistory) Push(text string) {
	defer func() {
		h.nav = -1
		h.draft = ""
	}()
	if text == "" {
		return
	}
	if h.size > 0 && h.at(0) == text {
		return
	}
	h.entries[h.write] = text
	h.write = (h.write + 1) % h.capacity
	if h.size < h.capacity {
		h.size++
	}
}

// SetDraft parks the text being composed before navigation begins.
func (h *InputHistory) SetDraft(text string) {
	h.draft = text
}

// Navigating reports whether a history entry is currently selected.
func (h *InputHistory) Navigating() bool {
	return h.nav >= 0
}

// Prev moves one entry further into the past and returns it. At the oldest
// entry it repeats that entry rather than wrapping.
func (h *InputHistory) Prev() (string, bool) {
	if h.size == 0 {
		return "", false
	}
	if h.nav+1 < h.size {
		h.nav++
	} else {
		h.nav = h.size - 1
	}
	return h.at(h.nav), true
}

// Next moves one entry toward the present. Moving past the newest entry
// clears navigation and returns the saved draft (empty if none was saved).
func (h *InputHistory) Next() (string, bool) {
	if h.nav < 0 {
		return "", false
	}
	if h.nav == 0 {
		h.nav = -1
		return h.draft, true
	}
	h.nav--
	return h.at(h.nav), true
}

// Current returns the entry under the navigation index, or the draft when not
// navigating.
func (h *InputHistory) Current() string {
	if h.nav < 0 {
		return h.draft
	}
	return h.at(h.nav)
}

// Len returns the number of stored entries.
func (h *InputHistory) Len() int {
	return h.size
}

// at returns the entry dist steps back from the newest.
func (h *InputHistory) at(dist int) string {
	idx := (h.write - 1 - dist + 2*h.capacity) % h.capacity
	return h.entries[idx]
}
