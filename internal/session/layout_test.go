package session

import (
	"reflect"
	"testing"
)

func TestInputLayoutWrapsAndLocatesCursor(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	s.Editor().SetText("hello world")
	s.Editor().SetCursor(0, 11)

	layout := s.InputLayout(5)
	want := []string{"hello", " worl", "d"}
	if !reflect.DeepEqual(layout.Lines, want) {
		t.Fatalf("unexpected rows: %#v", layout.Lines)
	}
	if layout.CursorRow != 2 || layout.CursorCol != 1 {
		t.Fatalf("cursor should land after the d, got (%d,%d)", layout.CursorRow, layout.CursorCol)
	}
}

func TestInputLayoutCursorMidBuffer(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	s.Editor().SetText("abcdef")
	s.Editor().SetCursor(0, 3)

	layout := s.InputLayout(4)
	if !reflect.DeepEqual(layout.Lines, []string{"abcd", "ef"}) {
		t.Fatalf("unexpected rows: %#v", layout.Lines)
	}
	if layout.CursorRow != 0 || layout.CursorCol != 3 {
		t.Fatalf("cursor should stay on row 0, got (%d,%d)", layout.CursorRow, layout.CursorCol)
	}
}

func TestInputLayoutCursorAtExactRowEnd(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	s.Editor().SetText("abcd")
	s.Editor().SetCursor(0, 4)

	layout := s.InputLayout(4)
	// The cursor cell would overflow the full row, so it wraps to an
	// empty continuation row.
	if !reflect.DeepEqual(layout.Lines, []string{"abcd", ""}) {
		t.Fatalf("unexpected rows: %#v", layout.Lines)
	}
	if layout.CursorRow != 1 || layout.CursorCol != 0 {
		t.Fatalf("cursor should wrap to the next row, got (%d,%d)", layout.CursorRow, layout.CursorCol)
	}
}

func TestInputLayoutWideRunesNeverSplit(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	s.Editor().SetText("ああa")
	s.Editor().SetCursor(0, 0)

	layout := s.InputLayout(3)
	if !reflect.DeepEqual(layout.Lines, []string{"あ", "あa"}) {
		t.Fatalf("wide rune should move to the next row whole, got %#v", layout.Lines)
	}
}

func TestInputLayoutMultipleBufferLines(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	s.Editor().SetText("one\ntwo three")
	s.Editor().SetCursor(1, 4)

	layout := s.InputLayout(5)
	want := []string{"one", "two t", "hree"}
	if !reflect.DeepEqual(layout.Lines, want) {
		t.Fatalf("unexpected rows: %#v", layout.Lines)
	}
	if layout.CursorRow != 1 || layout.CursorCol != 4 {
		t.Fatalf("cursor should map into the second buffer line, got (%d,%d)", layout.CursorRow, layout.CursorCol)
	}
}

func TestInputLayoutNoWrapWhenWidthZero(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	s.Editor().SetText("a very long line that would normally wrap")
	layout := s.InputLayout(0)
	if len(layout.Lines) != 1 {
		t.Fatalf("width zero disables wrapping, got %d rows", len(layout.Lines))
	}
}
