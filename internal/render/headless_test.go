package render

import (
	"strings"
	"testing"
)

func TestDrawTextPlain(t *testing.T) {
	t.Parallel()

	h := NewHeadless(10, 2)
	end := h.DrawText(0, 0, "hello", Style{})
	if end != 5 {
		t.Fatalf("expected cursor at column 5, got %d", end)
	}
	if got := h.Line(0); got != "hello     " {
		t.Fatalf("unexpected row: %q", got)
	}
}

func TestDrawTextWideOccupiesTwoCells(t *testing.T) {
	t.Parallel()

	h := NewHeadless(10, 1)
	end := h.DrawText(0, 0, "aあb", Style{})
	if end != 4 {
		t.Fatalf("CJK rune should advance two columns, end=%d", end)
	}
	if c := h.Get(1, 0); c.Width != 2 || c.Content != "あ" {
		t.Fatalf("expected wide cell at column 1, got %+v", c)
	}
	if c := h.Get(2, 0); c.Width != 0 {
		t.Fatalf("expected continuation cell at column 2, got %+v", c)
	}
	if c := h.Get(3, 0); c.Content != "b" {
		t.Fatalf("expected b at column 3, got %+v", c)
	}
}

func TestDrawTextClipsAtRightEdge(t *testing.T) {
	t.Parallel()

	h := NewHeadless(4, 1)
	h.DrawText(0, 0, "abcあ", Style{})
	// The wide rune needs columns 3..4 but only column 3 exists.
	if got := h.Line(0); got != "abc " {
		t.Fatalf("wide rune should not straddle the edge, got %q", got)
	}
}

func TestDrawTextAttachesCombiningMarks(t *testing.T) {
	t.Parallel()

	h := NewHeadless(5, 1)
	h.DrawText(0, 0, "e\u0301x", Style{})
	if c := h.Get(0, 0); c.Content != "e\u0301" {
		t.Fatalf("combining mark should join the base cell, got %q", c.Content)
	}
	if c := h.Get(1, 0); c.Content != "x" {
		t.Fatalf("expected x at column 1, got %q", c.Content)
	}
}

func TestSubRegionClipsAndOffsets(t *testing.T) {
	t.Parallel()

	h := NewHeadless(10, 4)
	r := h.SubRegion(2, 1, 4, 2)
	if r.Width() != 4 || r.Height() != 2 {
		t.Fatalf("unexpected region size %dx%d", r.Width(), r.Height())
	}
	r.DrawText(0, 0, "abcdefgh", Style{})
	if got := h.Line(1); got != "  abcd    " {
		t.Fatalf("region draw should offset and clip, got %q", got)
	}
	// Out-of-region rows never touch the parent.
	r.DrawText(0, 5, "zz", Style{})
	if strings.Contains(h.String(), "z") {
		t.Fatalf("draw outside the region leaked through")
	}
}

func TestSubRegionClampedToParent(t *testing.T) {
	t.Parallel()

	h := NewHeadless(6, 3)
	r := h.SubRegion(4, 1, 10, 10)
	if r.Width() != 2 || r.Height() != 2 {
		t.Fatalf("region should clamp to parent bounds, got %dx%d", r.Width(), r.Height())
	}
}

func TestFillAndClear(t *testing.T) {
	t.Parallel()

	h := NewHeadless(3, 2)
	h.Fill(Cell{Content: "#", Width: 1})
	if got := h.String(); got != "###\n###" {
		t.Fatalf("fill mismatch: %q", got)
	}
	h.Clear()
	if got := h.String(); got != "   \n   " {
		t.Fatalf("clear mismatch: %q", got)
	}
}

func TestOutOfBoundsIsIgnored(t *testing.T) {
	t.Parallel()

	h := NewHeadless(3, 1)
	h.DrawCell(-1, 0, Cell{Content: "x", Width: 1})
	h.DrawCell(0, 9, Cell{Content: "x", Width: 1})
	h.DrawCell(2, 0, Cell{Content: "あ", Width: 2})
	if got := h.Line(0); got != "   " {
		t.Fatalf("out-of-bounds draws should be no-ops, got %q", got)
	}
}
