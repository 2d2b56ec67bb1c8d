package render

import (
	"strings"

	"github.com/loomline/loomline/pkg/textwidth"
)

// Headless is an in-memory Surface. It backs layout tests and acts as the
// staging grid the Terminal backend flushes from.
type Headless struct {
	cells  []Cell
	width  int
	height int
}

// NewHeadless creates a blank grid of the given size. Non-positive
// dimensions are clamped to zero.
func NewHeadless(width, height int) *Headless {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	h := &Headless{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	h.Clear()
	return h
}

func (h *Headless) Width() int  { return h.width }
func (h *Headless) Height() int { return h.height }

func (h *Headless) inBounds(x, y int) bool {
	return x >= 0 && x < h.width && y >= 0 && y < h.height
}

func (h *Headless) index(x, y int) int { return y*h.width + x }

// Get returns the cell at (x, y), or a blank cell when out of bounds.
func (h *Headless) Get(x, y int) Cell {
	if !h.inBounds(x, y) {
		return EmptyCell()
	}
	return h.cells[h.index(x, y)]
}

func (h *Headless) DrawCell(x, y int, c Cell) {
	if !h.inBounds(x, y) {
		return
	}
	if c.Width <= 0 {
		c.Width = 1
	}
	if c.Width == 2 && x+1 >= h.width {
		// A wide cell cannot straddle the right edge.
		return
	}
	h.cells[h.index(x, y)] = c
	if c.Width == 2 {
		h.cells[h.index(x+1, y)] = Cell{Content: "", Width: 0, Style: c.Style}
	}
}

func (h *Headless) DrawText(x, y int, text string, style Style) int {
	if y < 0 || y >= h.height {
		return x
	}
	for i := 0; i < len(text); {
		size, w := textwidth.NextCluster(text, i)
		cluster := text[i : i+size]
		i += size
		if w == 0 {
			// Attach trailing marks to the previous cell.
			if x-1 >= 0 && x-1 < h.width {
				idx := h.index(x-1, y)
				if h.cells[idx].Width > 0 {
					h.cells[idx].Content += cluster
				}
			}
			continue
		}
		if x+w > h.width {
			break
		}
		h.DrawCell(x, y, Cell{Content: cluster, Width: w, Style: style})
		x += w
	}
	return x
}

func (h *Headless) Fill(c Cell) {
	if c.Width <= 0 {
		c.Width = 1
	}
	for i := range h.cells {
		h.cells[i] = c
	}
}

func (h *Headless) Clear() {
	h.Fill(EmptyCell())
}

// SubRegion returns a clipped view onto this grid. Drawing on the region
// writes through to the parent.
func (h *Headless) SubRegion(x, y, width, height int) Surface {
	if x < 0 {
		width += x
		x = 0
	}
	if y < 0 {
		height += y
		y = 0
	}
	if x+width > h.width {
		width = h.width - x
	}
	if y+height > h.height {
		height = h.height - y
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &region{parent: h, offX: x, offY: y, width: width, height: height}
}

// Line renders row y as plain text, without styling.
func (h *Headless) Line(y int) string {
	if y < 0 || y >= h.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < h.width; x++ {
		sb.WriteString(h.cells[h.index(x, y)].Content)
	}
	return sb.String()
}

// String renders the whole grid as plain text, one row per line.
func (h *Headless) String() string {
	lines := make([]string, h.height)
	for y := 0; y < h.height; y++ {
		lines[y] = h.Line(y)
	}
	return strings.Join(lines, "\n")
}

// region is a clipped window onto a parent grid.
type region struct {
	parent *Headless
	offX   int
	offY   int
	width  int
	height int
}

func (r *region) Width() int  { return r.width }
func (r *region) Height() int { return r.height }

func (r *region) DrawCell(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	w := c.Width
	if w <= 0 {
		w = 1
	}
	if x+w > r.width {
		return
	}
	r.parent.DrawCell(r.offX+x, r.offY+y, c)
}

func (r *region) DrawText(x, y int, text string, style Style) int {
	if y < 0 || y >= r.height {
		return x
	}
	for i := 0; i < len(text); {
		size, w := textwidth.NextCluster(text, i)
		cluster := text[i : i+size]
		i += size
		if w == 0 {
			continue
		}
		if x+w > r.width {
			break
		}
		r.DrawCell(x, y, Cell{Content: cluster, Width: w, Style: style})
		x += w
	}
	return x
}

func (r *region) Fill(c Cell) {
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.DrawCell(x, y, c)
		}
	}
}

func (r *region) Clear() {
	r.Fill(EmptyCell())
}

func (r *region) SubRegion(x, y, width, height int) Surface {
	if x+width > r.width {
		width = r.width - x
	}
	if y+height > r.height {
		height = r.height - y
	}
	return r.parent.SubRegion(r.offX+x, r.offY+y, width, height)
}
