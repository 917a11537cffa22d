package pitch

import (
	runewidth "github.com/mattn/go-runewidth"
)

// Rect is a rectangular region of a buffer.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Inner returns r shrunk by the given horizontal and vertical margins on
// every edge. Dimensions never drop below zero.
func (r Rect) Inner(dx, dy int) Rect {
	return Rect{
		X:      r.X + dx,
		Y:      r.Y + dy,
		Width:  max(0, r.Width-2*dx),
		Height: max(0, r.Height-2*dy),
	}
}

// Cut splits r horizontally: a left column of the given width and the
// remainder. The column is clamped to the available width.
func (r Rect) Cut(width int) (left, rest Rect) {
	if width > r.Width {
		width = r.Width
	}
	left = Rect{X: r.X, Y: r.Y, Width: width, Height: r.Height}
	rest = Rect{X: r.X + width, Y: r.Y, Width: r.Width - width, Height: r.Height}
	return left, rest
}

// Cell is one character position in a buffer.
type Cell struct {
	Rune  rune
	Style Style
}

// Buffer is a fixed-size character grid sections render into. Cells with a
// zero rune are blank.
type Buffer struct {
	width  int
	height int
	cells  []Cell
}

// NewBuffer returns an empty buffer of the given dimensions. Non-positive
// dimensions yield an empty buffer.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{width: width, height: height, cells: make([]Cell, width*height)}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) { return b.width, b.height }

// Area returns the full buffer region.
func (b *Buffer) Area() Rect { return Rect{Width: b.width, Height: b.height} }

// Set writes one cell. Writes outside the buffer are discarded.
func (b *Buffer) Set(x, y int, r rune, style Style) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at (x, y), or a blank cell outside the buffer.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// SetString writes text starting at (x, y), clipped to the area's right
// edge, and returns the column after the last written rune. Wide runes
// advance by their display width.
func (b *Buffer) SetString(x, y int, text string, style Style, area Rect) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > area.X+area.Width {
			break
		}
		b.Set(x, y, r, style)
		x += w
	}
	return x
}

// RowUsed reports whether any cell in row y holds a rune.
func (b *Buffer) RowUsed(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for x := 0; x < b.width; x++ {
		if b.cells[y*b.width+x].Rune != 0 {
			return true
		}
	}
	return false
}
