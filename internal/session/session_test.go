package session

import (
	"context"
	"testing"
)

func runeKey(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

func typeText(s *Session, text string) {
	for _, r := range text {
		s.HandleKey(context.Background(), runeKey(r))
	}
}

func TestPlainTypingAndSubmit(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	typeText(s, "hello")
	if s.Editor().Text() != "hello" {
		t.Fatalf("unexpected buffer: %q", s.Editor().Text())
	}
	if got := s.Submit(context.Background()); got != "hello" {
		t.Fatalf("submit returned %q", got)
	}
	if s.Editor().Text() != "" {
		t.Fatalf("submit should clear the buffer")
	}
}

func TestPlainEnterIsNotConsumed(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	if s.HandleKey(context.Background(), Key{Kind: KeyEnter}) {
		t.Fatalf("plain enter belongs to the host")
	}
	if !s.HandleKey(context.Background(), Key{Kind: KeyEnter, Alt: true}) {
		t.Fatalf("alt+enter should insert a line break")
	}
	if s.Editor().LineCount() != 2 {
		t.Fatalf("expected soft line break, got %d lines", s.Editor().LineCount())
	}
}

func TestControlChordKillAndYank(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(Options{})
	typeText(s, "hello world")
	s.HandleKey(ctx, Key{Kind: KeyRune, Rune: 'a', Ctrl: true})
	s.HandleKey(ctx, Key{Kind: KeyRune, Rune: 'k', Ctrl: true})
	if s.Editor().Text() != "" {
		t.Fatalf("ctrl+k should kill to end of line, got %q", s.Editor().Text())
	}
	s.HandleKey(ctx, Key{Kind: KeyRune, Rune: 'y', Ctrl: true})
	if s.Editor().Text() != "hello world" {
		t.Fatalf("ctrl+y should yank the kill back, got %q", s.Editor().Text())
	}
}

func TestVimModeSwitching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(Options{VimMode: true})
	if s.Mode() != "insert" {
		t.Fatalf("vim sessions start in insert mode, got %q", s.Mode())
	}
	typeText(s, "abc")
	s.HandleKey(ctx, Key{Kind: KeyEscape})
	if s.Mode() != "normal" {
		t.Fatalf("escape should enter normal mode, got %q", s.Mode())
	}
	s.HandleKey(ctx, runeKey('x'))
	if s.Editor().Text() != "ab" {
		t.Fatalf("x should delete under the cursor, got %q", s.Editor().Text())
	}
	s.HandleKey(ctx, runeKey('i'))
	if s.Mode() != "insert" {
		t.Fatalf("i should return to insert mode, got %q", s.Mode())
	}
}

func TestVimNormalStartAndGotoFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(Options{VimMode: true, StartInNormal: true})
	if s.Mode() != "normal" {
		t.Fatalf("expected normal start, got %q", s.Mode())
	}
	s.Editor().SetText("one\ntwo\nthree")
	s.Editor().SetCursor(2, 3)
	s.HandleKey(ctx, runeKey('g'))
	s.HandleKey(ctx, runeKey('g'))
	if line, col := s.Editor().Cursor(); line != 0 || col != 0 {
		t.Fatalf("gg should go to the buffer start, got (%d,%d)", line, col)
	}
	s.HandleKey(ctx, runeKey('G'))
	if line, _ := s.Editor().Cursor(); line != 2 {
		t.Fatalf("G should go to the last line, got line %d", line)
	}
}

func TestVimUndoRedoChords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(Options{VimMode: true})
	typeText(s, "word")
	s.HandleKey(ctx, Key{Kind: KeyEscape})
	s.HandleKey(ctx, runeKey('u'))
	if s.Editor().Text() != "" {
		t.Fatalf("u should undo the typed word, got %q", s.Editor().Text())
	}
	s.HandleKey(ctx, Key{Kind: KeyRune, Rune: 'r', Ctrl: true})
	if s.Editor().Text() != "word" {
		t.Fatalf("ctrl+r should redo, got %q", s.Editor().Text())
	}
}

func TestHistoryRecallOnArrow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(Options{})
	typeText(s, "first message")
	s.Submit(ctx)
	s.HandleKey(ctx, Key{Kind: KeyUp})
	if s.Editor().Text() != "first message" {
		t.Fatalf("up arrow should recall history, got %q", s.Editor().Text())
	}
	s.HandleKey(ctx, Key{Kind: KeyDown})
	if s.Editor().Text() != "" {
		t.Fatalf("down arrow should restore the empty draft, got %q", s.Editor().Text())
	}
}

func TestArrowMovesInsideMultilineDraft(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(Options{})
	s.Editor().SetText("one\ntwo")
	s.Editor().SetCursor(1, 0)
	s.HandleKey(ctx, Key{Kind: KeyUp})
	if line, _ := s.Editor().Cursor(); line != 0 {
		t.Fatalf("up inside a multi-line draft moves the cursor, got line %d", line)
	}
	if s.Editor().Text() != "one\ntwo" {
		t.Fatalf("draft should be untouched, got %q", s.Editor().Text())
	}
}

func TestStreamingLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(Options{})
	s.HandleChunk(ctx, "partial ")
	s.HandleChunk(ctx, "answer")
	if !s.Streaming() {
		t.Fatalf("session should report an active stream")
	}
	s.FinishStream(ctx)
	if s.Streaming() {
		t.Fatalf("completed stream should not report streaming")
	}
	if s.StreamContent() != "partial answer" {
		t.Fatalf("unexpected stream content %q", s.StreamContent())
	}
	s.ClearStream()
	if s.StreamContent() != "" {
		t.Fatalf("clear should empty the stream")
	}
}

func TestMetricsCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewInMemoryMetrics()
	s := New(Options{Metrics: m})
	typeText(s, "ab")
	s.HandleKey(ctx, Key{Kind: KeyBackspace})
	s.Submit(ctx)
	s.InputLayout(40)

	snap := m.GetSnapshot()
	if snap.Keystrokes["plain"] != 3 {
		t.Fatalf("expected 3 keystrokes, got %d", snap.Keystrokes["plain"])
	}
	if snap.Edits["insert"] != 2 || snap.Edits["delete"] != 1 {
		t.Fatalf("unexpected edit counts: %+v", snap.Edits)
	}
	if snap.Submits != 1 || snap.SubmittedBytes != 1 {
		t.Fatalf("unexpected submit stats: %+v", snap)
	}
	if snap.Layouts != 1 {
		t.Fatalf("expected one layout record, got %d", snap.Layouts)
	}
}

func TestMeasureWidthUsesCache(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	if w := s.MeasureWidth("\x1b[31mabc\x1b[0m"); w != 3 {
		t.Fatalf("styled text should measure visible width, got %d", w)
	}
	s.MeasureWidth("\x1b[31mabc\x1b[0m")
	hits, misses := s.WidthCacheStats()
	if hits != 1 || misses != 1 {
		t.Fatalf("expected one hit and one miss, got hits=%d misses=%d", hits, misses)
	}
}
