package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loomline/loomline/internal/session"
)

func TestTranslateKeyRunes(t *testing.T) {
	t.Parallel()

	key, ok := translateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})
	if !ok || key.Kind != session.KeyRune || key.Rune != 'x' || !key.Alt {
		t.Fatalf("unexpected translation: %+v ok=%v", key, ok)
	}
}

func TestTranslateKeyControlChords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		msg  tea.KeyType
		rune rune
	}{
		{tea.KeyCtrlA, 'a'},
		{tea.KeyCtrlK, 'k'},
		{tea.KeyCtrlY, 'y'},
		{tea.KeyCtrlR, 'r'},
	}
	for _, tc := range cases {
		key, ok := translateKey(tea.KeyMsg{Type: tc.msg})
		if !ok || !key.Ctrl || key.Rune != tc.rune {
			t.Fatalf("chord %v: got %+v ok=%v", tc.msg, key, ok)
		}
	}
}

func TestTranslateKeySpecials(t *testing.T) {
	t.Parallel()

	key, ok := translateKey(tea.KeyMsg{Type: tea.KeyEsc})
	if !ok || key.Kind != session.KeyEscape {
		t.Fatalf("esc translation failed: %+v", key)
	}
	key, ok = translateKey(tea.KeyMsg{Type: tea.KeySpace})
	if !ok || key.Kind != session.KeyRune || key.Rune != ' ' {
		t.Fatalf("space translation failed: %+v", key)
	}
	if _, ok := translateKey(tea.KeyMsg{Type: tea.KeyPgUp}); ok {
		t.Fatalf("page up should stay untranslated for viewport scrolling")
	}
}

func TestSplitAtColumn(t *testing.T) {
	t.Parallel()

	before, at, after := splitAtColumn("hello", 1)
	if before != "h" || at != "e" || after != "llo" {
		t.Fatalf("unexpected split: %q %q %q", before, at, after)
	}

	// Column past the end yields no cursor cluster.
	before, at, after = splitAtColumn("hi", 2)
	if before != "hi" || at != "" || after != "" {
		t.Fatalf("unexpected end split: %q %q %q", before, at, after)
	}

	// The cursor lands on the whole wide cluster, never half of it.
	before, at, after = splitAtColumn("aあb", 1)
	if before != "a" || at != "あ" || after != "b" {
		t.Fatalf("unexpected wide split: %q %q %q", before, at, after)
	}
}
