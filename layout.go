package pitch

import (
	"github.com/mattn/go-runewidth"
)

// wrapCell is one terminal cell of a line being wrapped.
type wrapCell struct {
	r     rune
	width int
	style Style
}

// wrapLine flows line into rows of at most width cells and returns the row
// count. The first row starts at column indent, continuation rows at column
// hang. When visit is non-nil it is called for every cell placed; measuring
// and drawing therefore always agree on the row count.
//
// Words are kept whole when they fit on a row of their own; a word wider
// than the wrappable width is broken wherever the row ends. Whitespace
// pending at a wrap is dropped.
func wrapLine(width, indent, hang int, line Line, visit func(row, col int, r rune, style Style)) int {
	if width <= 0 {
		return 0
	}
	row, col := 0, indent
	var word, spaces []wrapCell

	emit := func(cells []wrapCell) {
		for _, c := range cells {
			if col+c.width > width && col > hang {
				row++
				col = hang
			}
			if visit != nil {
				visit(row, col, c.r, c.style)
			}
			col += c.width
		}
	}

	flush := func() {
		if len(word) == 0 {
			return
		}
		wordWidth := 0
		for _, c := range word {
			wordWidth += c.width
		}
		if wordWidth <= width-hang {
			pending := 0
			for _, c := range spaces {
				pending += c.width
			}
			if col+pending+wordWidth > width {
				// The word fits on a row of its own; move it there
				// and drop the whitespace before it.
				row++
				col = hang
			} else {
				emit(spaces)
			}
			emit(word)
		} else {
			// Too wide for any row; break it wherever rows end.
			emit(spaces)
			emit(word)
		}
		word = word[:0]
		spaces = spaces[:0]
	}

	for _, run := range line {
		for _, r := range run.Text {
			if r == ' ' || r == '\t' {
				flush()
				spaces = append(spaces, wrapCell{' ', 1, run.Style})
				continue
			}
			word = append(word, wrapCell{r, runewidth.RuneWidth(r), run.Style})
		}
	}
	flush()
	return row + 1
}

// lineWidth returns the printable width of line without wrapping.
func lineWidth(line Line) int {
	w := 0
	for _, run := range line {
		w += runewidth.StringWidth(run.Text)
	}
	return w
}

// Height reports the rows the sections occupy at the given width, including
// inter-section padding and the inner margin. Render over the same width
// writes exactly this many rows.
func (s Sections) Height(width int) int {
	total := 0
	for i := 0; i < len(s.list); i++ {
		sec := s.list[i]
		top, bottom := sec.Padding()
		if i > 0 {
			total += top
		}
		total += sec.Height(width)
		if i < len(s.list)-1 {
			total += bottom + s.InnerMargin
		}
	}
	return total
}

func (b *BlockQuote) Height(width int) int {
	if width <= 0 {
		return 0
	}
	return 1 + b.Content.Height(width-Indent/2)
}

func (b *BlockQuote) Padding() (int, int) { return 0, 0 }

func (c *CodeBlock) Height(width int) int {
	if width <= 0 {
		return 0
	}
	return len(c.Lines)
}

func (c *CodeBlock) Padding() (int, int) { return 0, 0 }

func (h *Heading) Height(width int) int {
	return wrapLine(width, 0, h.Level+1, h.Line, nil)
}

func (h *Heading) Padding() (int, int) { return 1, 0 }

func (l *List) Height(width int) int {
	return l.Content.Height(width)
}

func (l *List) Padding() (int, int) { return 0, 0 }

func (o *OrderedItem) Height(width int) int {
	return o.Content.Height(width - Indent)
}

func (o *OrderedItem) Padding() (int, int) { return 0, 0 }

func (u *UnorderedItem) Height(width int) int {
	return u.Content.Height(width - Indent)
}

func (u *UnorderedItem) Padding() (int, int) { return 0, 0 }

func (p *Paragraph) Height(width int) int {
	if !p.hasContent() {
		return 0
	}
	total := 0
	for _, line := range p.Lines {
		total += wrapLine(width, 0, 0, line, nil)
	}
	return total
}

func (p *Paragraph) Padding() (int, int) { return 0, 0 }

func (t *Table) Height(width int) int {
	// Render needs a column for each frame edge and at least one cell.
	if width < 2 || len(t.Rows) == 0 || t.columns() == 0 {
		return 0
	}
	h := 2
	if _, ok := t.headerRow(); ok {
		h++
	}
	if d := t.dataRows(); d > 0 {
		h += 2*d - 1
	}
	return h
}

func (t *Table) Padding() (int, int) { return 0, 0 }

func (t *ThematicBreak) Height(width int) int {
	if width <= 0 {
		return 0
	}
	return 1
}

func (t *ThematicBreak) Padding() (int, int) { return 0, 0 }
