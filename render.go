package pitch

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// Render draws the sections top to bottom into area. Rows are consumed
// exactly as Height over the same width counts them; content past the
// bottom edge is clipped.
func (s Sections) Render(area Rect, buf *Buffer) {
	y := area.Y
	bottom := area.Y + area.Height
	for i, sec := range s.list {
		padTop, padBottom := sec.Padding()
		if i > 0 {
			y += padTop
		}
		if y >= bottom {
			return
		}
		h := sec.Height(area.Width)
		sec.Render(Rect{X: area.X, Y: y, Width: area.Width, Height: min(h, bottom-y)}, buf)
		y += h
		if i < len(s.list)-1 {
			y += padBottom + s.InnerMargin
		}
	}
}

// setCell writes one cell, discarding rows outside area.
func setCell(buf *Buffer, area Rect, x, y int, r rune, style Style) {
	if y < area.Y || y >= area.Y+area.Height {
		return
	}
	buf.Set(x, y, r, style)
}

// drawWrapped flows line into area using the shared wrap routine and
// returns the rows consumed.
func drawWrapped(buf *Buffer, area Rect, indent, hang int, line Line) int {
	return wrapLine(area.Width, indent, hang, line, func(row, col int, r rune, style Style) {
		setCell(buf, area, area.X+col, area.Y+row, r, style)
	})
}

// drawClipped writes line on a single row starting at x. A line wider than
// the area ends in an ellipsis at the right edge.
func drawClipped(buf *Buffer, area Rect, x, y int, line Line) {
	if y < area.Y || y >= area.Y+area.Height {
		return
	}
	limit := area.X + area.Width
	truncate := x+lineWidth(line) > limit
	for _, run := range line {
		for _, r := range run.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if truncate && x+w > limit-1 {
				buf.Set(limit-1, y, '…', run.Style)
				return
			}
			buf.Set(x, y, r, run.Style)
			x += w
		}
	}
}

func (b *BlockQuote) Render(area Rect, buf *Buffer) {
	if area.Width <= 0 {
		return
	}
	setCell(buf, area, area.X, area.Y, '❠', Style{Mod: ModDim})
	inner := Rect{
		X:      area.X + Indent/2,
		Y:      area.Y + 1,
		Width:  area.Width - Indent/2,
		Height: area.Height - 1,
	}
	b.Content.Render(inner, buf)
}

func (c *CodeBlock) Render(area Rect, buf *Buffer) {
	if area.Width <= 0 {
		return
	}
	for i, line := range c.Lines {
		drawClipped(buf, area, area.X, area.Y+i, line)
	}
}

func (h *Heading) Render(area Rect, buf *Buffer) {
	drawWrapped(buf, area, 0, h.Level+1, h.Line)
}

func (l *List) Render(area Rect, buf *Buffer) {
	l.Content.Render(area, buf)
}

func (o *OrderedItem) Render(area Rect, buf *Buffer) {
	marker, inner := area.Cut(Indent)
	drawClipped(buf, marker, marker.X, marker.Y, Line{
		{Text: fmt.Sprintf("%d%c", o.Ordinal, o.Delimiter)},
	})
	o.Content.Render(inner, buf)
}

func (u *UnorderedItem) Render(area Rect, buf *Buffer) {
	marker, inner := area.Cut(Indent)
	setCell(buf, marker, marker.X, marker.Y, u.Bullet, Style{})
	u.Content.Render(inner, buf)
}

func (p *Paragraph) Render(area Rect, buf *Buffer) {
	if !p.hasContent() {
		return
	}
	y := area.Y
	bottom := area.Y + area.Height
	for _, line := range p.Lines {
		y += drawWrapped(buf, Rect{X: area.X, Y: y, Width: area.Width, Height: bottom - y}, 0, 0, line)
	}
}

func (t *Table) Render(area Rect, buf *Buffer) {
	if area.Width < 2 {
		return
	}
	columns := t.columns()
	if columns == 0 {
		return
	}
	inner := area.Width - 2
	colWidth := inner / columns

	frame := Style{Mod: ModDim}
	y := area.Y
	drawRule := func(left, right rune) {
		setCell(buf, area, area.X, y, left, frame)
		for x := 1; x < area.Width-1; x++ {
			setCell(buf, area, area.X+x, y, '─', frame)
		}
		setCell(buf, area, area.X+area.Width-1, y, right, frame)
		y++
	}
	drawCells := func(row TableRow) {
		setCell(buf, area, area.X, y, '│', frame)
		setCell(buf, area, area.X+area.Width-1, y, '│', frame)
		for i, cell := range row.Cells {
			if i >= columns {
				break
			}
			x := area.X + 1 + i*colWidth
			w := colWidth
			if i == columns-1 {
				w = inner - i*colWidth
			}
			if row.Header {
				cell = underlined(cell)
			}
			drawClipped(buf, Rect{X: x, Y: area.Y, Width: w, Height: area.Height}, x, y, cell)
		}
		y++
	}
	drawSide := func() {
		setCell(buf, area, area.X, y, '│', frame)
		setCell(buf, area, area.X+area.Width-1, y, '│', frame)
		y++
	}

	drawRule('┌', '┐')
	if header, ok := t.headerRow(); ok {
		drawCells(header)
	}
	first := true
	for _, row := range t.Rows {
		if row.Header {
			continue
		}
		if !first {
			drawSide()
		}
		drawCells(row)
		first = false
	}
	drawRule('└', '┘')
}

// columns returns the widest row's cell count.
func (t *Table) columns() int {
	n := 0
	for _, row := range t.Rows {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}
	return n
}

func underlined(line Line) Line {
	out := make(Line, len(line))
	for i, run := range line {
		out[i] = Run{Text: run.Text, Style: run.Style.With(ModUnderline)}
	}
	return out
}

func (t *ThematicBreak) Render(area Rect, buf *Buffer) {
	style := Style{FG: tcell.ColorWhite}
	for x := 0; x < area.Width; x++ {
		setCell(buf, area, area.X+x, area.Y, '─', style)
	}
}
