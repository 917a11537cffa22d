package pitch

// Indent is the number of columns a list marker gutter occupies. Block
// quotes indent nested content by half of it.
const Indent = 4

// Section is one styled block element ready for flow layout. Height and
// Render are kept in lock-step: Render writes exactly Height(area.Width)
// rows when the area is tall enough, and clips otherwise.
type Section interface {
	// Height returns the rows required at the given width. It is a pure
	// function, total over any width; non-positive widths yield 0.
	Height(width int) int

	// Render draws the section into area of buf.
	Render(area Rect, buf *Buffer)

	// Padding returns the extra rows inserted above and below the section,
	// applied only toward an existing sibling.
	Padding() (top, bottom int)
}

// Sections is an ordered sequence of sections plus the margin inserted
// between adjacent siblings.
type Sections struct {
	list []Section

	// InnerMargin is added after each non-last sibling.
	InnerMargin int
}

func newSections(list []Section) Sections {
	return Sections{list: list, InnerMargin: 1}
}

// Len returns the number of sections.
func (s Sections) Len() int { return len(s.list) }

// At returns the i-th section.
func (s Sections) At(i int) Section { return s.list[i] }

// renumber assigns contiguous ordinals starting at startAt to every ordered
// list item, in order, ignoring interleaved section kinds.
func (s Sections) renumber(startAt int) {
	n := 0
	for _, section := range s.list {
		if item, ok := section.(*OrderedItem); ok {
			item.Ordinal = startAt + n
			n++
		}
	}
}

// BlockQuote is a quoted group of sections.
type BlockQuote struct {
	Content Sections
}

// CodeBlock is a block of highlighted source lines, never wrapped.
type CodeBlock struct {
	Lines []Line
}

// Heading is a single wrapped line with a level-dependent prefix marker.
type Heading struct {
	Line  Line
	Level int
}

// List is a group of list items rendered without blank lines between them.
type List struct {
	Content Sections
}

// OrderedItem is a list item with a numeric marker.
type OrderedItem struct {
	Content   Sections
	Ordinal   int
	Delimiter rune
}

// UnorderedItem is a list item with a bullet marker.
type UnorderedItem struct {
	Content Sections
	Bullet  rune
}

// Paragraph is a group of wrapped lines. A paragraph without any
// non-whitespace content collapses to nothing.
type Paragraph struct {
	Lines []Line
}

// TableRow is one row of styled cells.
type TableRow struct {
	Header bool
	Cells  []Line
}

// Table is a framed grid of rows with equally divided columns.
type Table struct {
	Rows []TableRow
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

func (p *Paragraph) hasContent() bool {
	for _, line := range p.Lines {
		if line.hasContent() {
			return true
		}
	}
	return false
}

// dataRows returns the number of non-header rows.
func (t *Table) dataRows() int {
	n := 0
	for _, row := range t.Rows {
		if !row.Header {
			n++
		}
	}
	return n
}

// headerRow returns the first header row, if any.
func (t *Table) headerRow() (TableRow, bool) {
	for _, row := range t.Rows {
		if row.Header {
			return row, true
		}
	}
	return TableRow{}, false
}
