package editor

// DefaultUndoDepth bounds the undo stack; the oldest snapshot is evicted
// once the limit is reached.
const DefaultUndoDepth = 100

// Snapshot is a deep, independent copy of the whole buffer plus the cursor at
// capture time. Mutating the live buffer never alters a stored snapshot.
type Snapshot struct {
	Lines   []string
	CurLine int
	CurCol  int
}

// UndoStack stores bounded undo and redo histories and implements the
// per-character coalescing policy that groups a typed word (plus trailing
// whitespace) into a single undo step.
type UndoStack struct {
	undo     []Snapshot
	redo     []Snapshot
	capacity int
	inWord   bool
}

// NewUndoStack creates an undo stack keeping at most depth snapshots. A
// non-positive depth falls back to the default.
func NewUndoStack(depth int) *UndoStack {
	if depth <= 0 {
		depth = DefaultUndoDepth
	}
	return &UndoStack{capacity: depth}
}

// ShouldSnapshot decides whether a snapshot must precede inserting b, and
// updates the coalescing state as a side effect:
//
//   - non-printable bytes (other than space and tab) always snapshot;
//   - whitespace ending a word snapshots once, so "word " is one undo unit;
//   - the first character of a word snapshots, the rest of the word coalesces;
//   - punctuation always snapshots.
func (u *UndoStack) ShouldSnapshot(b byte) bool {
	switch {
	case b == ' ' || b == '\t':
		if u.inWord {
			u.inWord = false
			return true
		}
		return false
	case b < 0x20 || b > 0x7e:
		u.inWord = false
		return true
	case isWordByte(b):
		if !u.inWord {
			u.inWord = true
			return true
		}
		return false
	default:
		u.inWord = false
		return true
	}
}

// BreakCoalescing forces the next word character to start a new undo unit.
func (u *UndoStack) BreakCoalescing() {
	u.inWord = false
}

// Push records a snapshot, evicting the oldest past capacity. Pushing always
// clears the redo stack; only Undo may repopulate it.
func (u *UndoStack) Push(s Snapshot) {
	if len(u.undo) >= u.capacity {
		u.undo = append(u.undo[:0], u.undo[1:]...)
	}
	u.undo = append(u.undo, s)
	u.redo = u.redo[:0]
}

// Undo pops the most recent snapshot, transferring the live state onto the
// redo stack first so a subsequent Redo is lossless.
func (u *UndoStack) Undo(live Snapshot) (Snapshot, bool) {
	if len(u.undo) == 0 {
		return Snapshot{}, false
	}
	u.redo = append(u.redo, live)
	s := u.undo[len(u.undo)-1]
	u.undo = u.undo[:len(u.undo)-1]
	u.inWord = false
	return s, true
}

// Redo pops from the redo stack, transferring the live state back onto the
// undo stack.
func (u *UndoStack) Redo(live Snapshot) (Snapshot, bool) {
	if len(u.redo) == 0 {
		return Snapshot{}, false
	}
	u.undo = append(u.undo, live)
	s := u.redo[len(u.redo)-1]
	u.redo = u.redo[:len(u.redo)-1]
	u.inWord = false
	return s, true
}

// Depth returns the current undo stack depth.
func (u *UndoStack) Depth() int {
	return len(u.undo)
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
