// Package render provides a cell-grid drawing surface for terminal output.
// A Surface is a rectangle of styled cells; Headless keeps the grid in
// memory for layout tests, Terminal flushes it through termenv. Wide
// characters occupy two cells, with the continuation cell left blank so
// column arithmetic stays consistent with pkg/textwidth.
package render

// Style describes how a cell is painted. Colors are termenv-compatible
// strings ("1", "#ff0000", ""); empty means the terminal default.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Faint      bool
	Reverse    bool
	Underline  bool
}

// IsZero reports whether the style is the terminal default.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Cell is one grid position. Content holds a full display cluster (base
// rune plus combining marks), not just a single rune. Width is the column
// span; the cell to the right of a width-2 cell is a continuation and has
// Width 0.
type Cell struct {
	Content string
	Width   int
	Style   Style
}

// EmptyCell returns a blank single-width cell with default styling.
func EmptyCell() Cell {
	return Cell{Content: " ", Width: 1}
}

// Surface is a drawable rectangle of cells. Out-of-bounds coordinates are
// clipped, never an error.
type Surface interface {
	// Width returns the surface width in columns.
	Width() int
	// Height returns the surface height in rows.
	Height() int
	// DrawCell places a single cell. Wide content spills into the next
	// column as a continuation cell.
	DrawCell(x, y int, c Cell)
	// DrawText writes styled text starting at (x, y) and returns the
	// column after the last cell written. Text never wraps; it clips at
	// the right edge.
	DrawText(x, y int, text string, style Style) int
	// Fill sets every cell of the surface.
	Fill(c Cell)
	// Clear resets every cell to blank.
	Clear()
	// SubRegion returns a surface restricted to the given rectangle.
	// The region is clamped to this surface's bounds.
	SubRegion(x, y, width, height int) Surface
}
