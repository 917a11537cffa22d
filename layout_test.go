package pitch

import (
	"strings"
	"testing"
)

func TestWrapLineRowCounts(t *testing.T) {
	longWord := "w" + strings.Repeat("o", 35) + "rd"

	cases := []struct {
		name  string
		text  string
		width int
		want  int
	}{
		{"fits on one row", "one two", 10, 1},
		{"wraps whole words", "one two three", 10, 2},
		{"overlong word broken in place", "a long " + longWord, 10, 5},
		{"single overlong word", longWord, 10, 4},
		{"empty line still occupies a row", "", 10, 1},
		{"zero width", "anything", 0, 0},
		{"negative width", "anything", -3, 0},
	}
	for _, tc := range cases {
		got := wrapLine(tc.width, 0, 0, plainLine(tc.text), nil)
		if got != tc.want {
			t.Fatalf("%s: got %d rows, want %d", tc.name, got, tc.want)
		}
	}
}

func TestWrapLineHangingIndent(t *testing.T) {
	// Continuation rows start at the hang column, so fewer cells fit
	// there than on the first row.
	line := plainLine("## alpha beta gamma")
	got := wrapLine(10, 0, 3, line, nil)
	if got != 3 {
		t.Fatalf("got %d rows, want 3", got)
	}
}

func TestWrapLineSpansRunBoundaries(t *testing.T) {
	// A word split across styled runs still wraps as one word.
	line := Line{
		{Text: "plain over"},
		{Text: "flow", Style: Style{Mod: ModBold}},
	}
	got := wrapLine(10, 0, 0, line, nil)
	if got != 2 {
		t.Fatalf("got %d rows, want 2", got)
	}
}

func TestParagraphHeight(t *testing.T) {
	p := &Paragraph{Lines: []Line{plainLine("one two three"), plainLine("four")}}
	if got := p.Height(10); got != 3 {
		t.Fatalf("got height %d, want 3", got)
	}
}

func TestParagraphWhitespaceOnlyCollapses(t *testing.T) {
	p := &Paragraph{Lines: []Line{plainLine("   "), plainLine("\t")}}
	if got := p.Height(10); got != 0 {
		t.Fatalf("got height %d, want 0", got)
	}
}

func TestSectionsHeightComposition(t *testing.T) {
	s := newSections([]Section{
		&Paragraph{Lines: []Line{plainLine("first")}},
		&Heading{Line: plainLine("# head"), Level: 1},
		&Paragraph{Lines: []Line{plainLine("second")}},
	})
	// 1 + margin + heading top padding + 1 + margin + 1.
	if got := s.Height(40); got != 6 {
		t.Fatalf("got height %d, want 6", got)
	}
}

func TestSectionsHeightSkipsEdgePadding(t *testing.T) {
	s := newSections([]Section{
		&Heading{Line: plainLine("# head"), Level: 1},
	})
	if got := s.Height(40); got != 1 {
		t.Fatalf("got height %d, want 1", got)
	}
}

func TestBlockQuoteHeight(t *testing.T) {
	inner := newSections([]Section{
		&Paragraph{Lines: []Line{plainLine("one two three")}},
	})
	q := &BlockQuote{Content: inner}
	// Decoration row plus content wrapped 2 columns narrower.
	if got := q.Height(10); got != 1+inner.Height(10-Indent/2) {
		t.Fatalf("got height %d, want %d", got, 1+inner.Height(8))
	}
}

func TestListItemHeightUsesMarkerGutter(t *testing.T) {
	content := newSections([]Section{
		&Paragraph{Lines: []Line{plainLine("one two three")}},
	})
	item := &UnorderedItem{Content: content, Bullet: '•'}
	if got := item.Height(12); got != content.Height(12-Indent) {
		t.Fatalf("got height %d, want %d", got, content.Height(8))
	}
}

func TestTableHeight(t *testing.T) {
	header := TableRow{Header: true, Cells: []Line{plainLine("a"), plainLine("b")}}
	data := TableRow{Cells: []Line{plainLine("1"), plainLine("2")}}

	cases := []struct {
		name string
		rows []TableRow
		want int
	}{
		{"header and two data rows", []TableRow{header, data, data}, 6},
		{"header only", []TableRow{header}, 3},
		{"data only", []TableRow{data}, 3},
		{"no rows", nil, 0},
		{"rows without cells", []TableRow{{}}, 0},
	}
	for _, tc := range cases {
		table := &Table{Rows: tc.rows}
		if got := table.Height(30); got != tc.want {
			t.Fatalf("%s: got height %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestTableDegenerateWidthMatchesRender(t *testing.T) {
	table := &Table{Rows: []TableRow{
		{Cells: []Line{plainLine("x")}},
	}}
	for _, width := range []int{0, 1} {
		height := table.Height(width)
		if height != 0 {
			t.Fatalf("width %d: got height %d, want 0", width, height)
		}
		buf := NewBuffer(5, 5)
		table.Render(Rect{Width: width, Height: 5}, buf)
		for y := 0; y < 5; y++ {
			if buf.RowUsed(y) {
				t.Fatalf("width %d: row %d written for zero-height table", width, y)
			}
		}
	}
}

func TestRenumberSkipsInterleavedKinds(t *testing.T) {
	first := &OrderedItem{Delimiter: '.'}
	second := &OrderedItem{Delimiter: '.'}
	third := &OrderedItem{Delimiter: '.'}
	fourth := &OrderedItem{Delimiter: '.'}
	s := newSections([]Section{
		first,
		&UnorderedItem{Bullet: '•'},
		second,
		third,
		&Paragraph{},
		fourth,
	})
	s.renumber(3)
	for i, item := range []*OrderedItem{first, second, third, fourth} {
		if want := 3 + i; item.Ordinal != want {
			t.Fatalf("item %d: got ordinal %d, want %d", i+1, item.Ordinal, want)
		}
	}
}

func TestThematicBreakHeight(t *testing.T) {
	tb := &ThematicBreak{}
	if got := tb.Height(20); got != 1 {
		t.Fatalf("got height %d, want 1", got)
	}
	if got := tb.Height(0); got != 0 {
		t.Fatalf("zero width: got height %d, want 0", got)
	}
}
