package editor

// DefaultKillRingCapacity bounds the kill ring; the oldest entry is evicted
// once the ring is full.
const DefaultKillRingCapacity = 60

// KillRing holds killed (deleted) text spans in most-recent-last order and
// supports Emacs style yank rotation. Consecutive kills, uninterrupted by any
// non-kill action, merge into a single entry.
type KillRing struct {
	entries      []string
	capacity     int
	yankIndex    int
	accumulating bool
}

// NewKillRing creates a kill ring holding at most capacity entries. A
// non-positive capacity falls back to the default.
func NewKillRing(capacity int) *KillRing {
	if capacity <= 0 {
		capacity = DefaultKillRingCapacity
	}
	return &KillRing{capacity: capacity, yankIndex: -1}
}

// Add records a killed span. While accumulation is unbroken the text merges
// into the most recent entry: prepend=true inserts it before the existing
// content (backward kills), otherwise after (forward kills). A fresh kill
// pushes a new entry, evicting the oldest at capacity.
func (k *KillRing) Add(text string, prepend bool) {
	if text == "" {
		return
	}
	if k.accumulating && len(k.entries) > 0 {
		last := len(k.entries) - 1
		if prepend {
			k.entries[last] = text + k.entries[last]
		} else {
			k.entries[last] += text
		}
	} else {
		if len(k.entries) >= k.capacity {
			k.entries = append(k.entries[:0], k.entries[1:]...)
		}
		k.entries = append(k.entries, text)
	}
	k.accumulating = true
}

// BreakAccumulation marks the end of a kill run. The editor calls this on
// every non-kill action so only back-to-back kills merge.
func (k *KillRing) BreakAccumulation() {
	k.accumulating = false
}

// Yank returns the most recent entry and points the rotation cursor at it.
func (k *KillRing) Yank() (string, bool) {
	if len(k.entries) == 0 {
		return "", false
	}
	k.yankIndex = len(k.entries) - 1
	return k.entries[k.yankIndex], true
}

// YankPop rotates one entry backward through history, wrapping from the
// oldest entry to the newest, and returns the entry now under the cursor.
func (k *KillRing) YankPop() (string, bool) {
	if len(k.entries) == 0 {
		return "", false
	}
	k.yankIndex--
	if k.yankIndex < 0 {
		k.yankIndex = len(k.entries) - 1
	}
	return k.entries[k.yankIndex], true
}

// Len returns the number of stored entries.
func (k *KillRing) Len() int {
	return len(k.entries)
}
