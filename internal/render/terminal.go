package render

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Terminal flushes a Headless grid to a writer using termenv styling. It
// renders full frames; damage tracking is left to the caller redrawing
// only when state changed.
type Terminal struct {
	out     *termenv.Output
	profile termenv.Profile
}

// NewTerminal creates a backend writing to w. The color profile is
// detected from the environment the way termenv does for any terminal
// app.
func NewTerminal(w io.Writer) *Terminal {
	out := termenv.NewOutput(w)
	return &Terminal{out: out, profile: out.Profile}
}

// Profile returns the detected color profile.
func (t *Terminal) Profile() termenv.Profile {
	return t.profile
}

// Flush writes the grid to the terminal, one styled row per line. Runs of
// cells sharing a style are emitted as a single termenv string so the
// output stays compact.
func (t *Terminal) Flush(h *Headless) error {
	var frame strings.Builder
	for y := 0; y < h.Height(); y++ {
		frame.WriteString(t.renderRow(h, y))
		if y < h.Height()-1 {
			frame.WriteByte('\n')
		}
	}
	_, err := t.out.WriteString(frame.String())
	return err
}

func (t *Terminal) renderRow(h *Headless, y int) string {
	var row strings.Builder
	var run strings.Builder
	var runStyle Style
	started := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		row.WriteString(t.styled(run.String(), runStyle))
		run.Reset()
	}

	for x := 0; x < h.Width(); x++ {
		c := h.Get(x, y)
		if c.Width == 0 {
			// Continuation of a wide cell already emitted.
			continue
		}
		if !started || c.Style != runStyle {
			flush()
			runStyle = c.Style
			started = true
		}
		run.WriteString(c.Content)
	}
	flush()
	return row.String()
}

func (t *Terminal) styled(text string, s Style) string {
	if s.IsZero() {
		return text
	}
	st := t.out.String(text)
	if s.Foreground != "" {
		st = st.Foreground(t.profile.Color(s.Foreground))
	}
	if s.Background != "" {
		st = st.Background(t.profile.Color(s.Background))
	}
	if s.Bold {
		st = st.Bold()
	}
	if s.Faint {
		st = st.Faint()
	}
	if s.Reverse {
		st = st.Reverse()
	}
	if s.Underline {
		st = st.Underline()
	}
	return st.String()
}
