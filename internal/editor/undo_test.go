package editor

import "testing"

func snap(lines ...string) Snapshot {
	return Snapshot{Lines: append([]string(nil), lines...)}
}

func TestUndoStackCoalescesWholeWord(t *testing.T) {
	t.Parallel()

	u := NewUndoStack(0)
	boundaries := 0
	for _, b := range []byte("hello") {
		if u.ShouldSnapshot(b) {
			boundaries++
		}
	}
	if boundaries != 1 {
		t.Fatalf("typing a word should create one undo boundary, got %d", boundaries)
	}
}

func TestUndoStackWordPlusTrailingSpace(t *testing.T) {
	t.Parallel()

	u := NewUndoStack(0)
	boundaries := 0
	for _, b := range []byte("hello world ") {
		if u.ShouldSnapshot(b) {
			boundaries++
		}
	}
	// Boundaries: start of "hello", space after it, start of "world", space
	// after it.
	if boundaries != 4 {
		t.Fatalf("expected 4 boundaries for %q, got %d", "hello world ", boundaries)
	}
}

func TestUndoStackPunctuationAlwaysSnapshots(t *testing.T) {
	t.Parallel()

	u := NewUndoStack(0)
	boundaries := 0
	for _, b := range []byte("a.b") {
		if u.ShouldSnapshot(b) {
			boundaries++
		}
	}
	if boundaries != 3 {
		t.Fatalf("punctuation should break coalescing, got %d boundaries", boundaries)
	}
}

func TestUndoStackBreakCoalescing(t *testing.T) {
	t.Parallel()

	u := NewUndoStack(0)
	if !u.ShouldSnapshot('a') {
		t.Fatalf("first word char should snapshot")
	}
	if u.ShouldSnapshot('b') {
		t.Fatalf("second word char should coalesce")
	}
	u.BreakCoalescing()
	if !u.ShouldSnapshot('c') {
		t.Fatalf("word char after break should snapshot again")
	}
}

func TestUndoRedoTransfersLiveState(t *testing.T) {
	t.Parallel()

	u := NewUndoStack(0)
	u.Push(snap("before"))

	restored, ok := u.Undo(snap("after"))
	if !ok || restored.Lines[0] != "before" {
		t.Fatalf("undo should restore the pushed snapshot, got %+v ok=%v", restored, ok)
	}

	redone, ok := u.Redo(snap("before"))
	if !ok || redone.Lines[0] != "after" {
		t.Fatalf("redo should restore the pre-undo live state, got %+v ok=%v", redone, ok)
	}
}

func TestUndoStackPushClearsRedo(t *testing.T) {
	t.Parallel()

	u := NewUndoStack(0)
	u.Push(snap("one"))
	if _, ok := u.Undo(snap("two")); !ok {
		t.Fatalf("undo failed")
	}
	u.Push(snap("three"))
	if _, ok := u.Redo(snap("x")); ok {
		t.Fatalf("push should have cleared the redo stack")
	}
}

func TestUndoStackEvictsOldest(t *testing.T) {
	t.Parallel()

	u := NewUndoStack(2)
	u.Push(snap("one"))
	u.Push(snap("two"))
	u.Push(snap("three"))
	if u.Depth() != 2 {
		t.Fatalf("expected depth capped at 2, got %d", u.Depth())
	}
	s, _ := u.Undo(snap("live"))
	if s.Lines[0] != "three" {
		t.Fatalf("expected newest snapshot first, got %q", s.Lines[0])
	}
	s, _ = u.Undo(snap("live"))
	if s.Lines[0] != "two" {
		t.Fatalf("expected oldest surviving snapshot, got %q", s.Lines[0])
	}
	if _, ok := u.Undo(snap("live")); ok {
		t.Fatalf("evicted snapshot should be gone")
	}
}
