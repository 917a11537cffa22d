package pitch

import (
	"strings"
	"testing"

	runewidth "github.com/mattn/go-runewidth"
)

// bufferRows returns the buffer contents as plain text rows, trailing
// blanks trimmed. Cells shadowed by wide runes are skipped.
func bufferRows(buf *Buffer) []string {
	width, height := buf.Size()
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		for x := 0; x < width; x++ {
			cell := buf.Get(x, y)
			if cell.Rune == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(cell.Rune)
			x += runewidth.RuneWidth(cell.Rune) - 1
		}
		rows[y] = strings.TrimRight(b.String(), " ")
	}
	return rows
}

func assertRows(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("row count mismatch: got %d want %d\ngot: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d mismatch\nwant: %q\n got: %q", i+1, want[i], got[i])
		}
	}
}

func plainLine(text string) Line { return Line{{Text: text}} }

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(src), ParseOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func testContext() *Context {
	return NewContext(DefaultConfig(), nil, nil)
}

// firstPageSections parses src, splits it with the default break condition
// and transforms the first page.
func firstPageSections(t *testing.T, src string) Sections {
	t.Helper()
	doc := mustParse(t, src)
	pages := doc.Pages(DefaultConfig().PageBreak).CollectPages()
	if len(pages) == 0 {
		t.Fatal("no pages")
	}
	sections, err := TransformPage(testContext(), pages[0])
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	return sections
}
