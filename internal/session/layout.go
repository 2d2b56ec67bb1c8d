package session

import (
	"time"

	"github.com/loomline/loomline/pkg/textwidth"
)

// Layout is the wrapped display form of the input buffer. CursorRow and
// CursorCol are display coordinates into Lines, not buffer coordinates.
type Layout struct {
	Lines     []string
	CursorRow int
	CursorCol int
}

// InputLayout wraps the editor buffer to the given width and locates the
// cursor in display coordinates. Wrapping matches the width engine's
// cluster rules, so a wide character never splits across rows. A width of
// zero or less disables wrapping.
func (s *Session) InputLayout(width int) Layout {
	start := time.Now()

	lines := s.ed.Lines()
	curLine, curCol := s.ed.Cursor()

	var out Layout
	for li, line := range lines {
		cursorAt := -1
		if li == curLine {
			cursorAt = curCol
		}
		rows, row, col, found := layoutLine(line, width, cursorAt)
		if found {
			out.CursorRow = len(out.Lines) + row
			out.CursorCol = col
		}
		out.Lines = append(out.Lines, rows...)
	}

	s.metrics.RecordLayout(time.Since(start))
	return out
}

// layoutLine wraps one buffer line and, when cursorAt is a byte offset
// into it, reports the cursor's (row, column) within the wrapped rows.
func layoutLine(line string, width, cursorAt int) (rows []string, curRow, curCol int, found bool) {
	rowStart := 0
	row := 0
	col := 0

	for i := 0; i < len(line); {
		size, w := textwidth.NextCluster(line, i)
		if width > 0 && col+w > width && col > 0 {
			rows = append(rows, line[rowStart:i])
			rowStart = i
			row++
			col = 0
		}
		if cursorAt == i {
			curRow, curCol = row, col
			found = true
		}
		col += w
		i += size
	}
	rows = append(rows, line[rowStart:])
	if cursorAt == len(line) {
		if width > 0 && col >= width {
			// Cursor past a full row sits at the start of the next one.
			rows = append(rows, "")
			row++
			col = 0
		}
		curRow, curCol = row, col
		found = true
	}
	return rows, curRow, curCol, found
}
