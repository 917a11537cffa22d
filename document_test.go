package pitch

import (
	"errors"
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"
)

func TestPagesSplitOnThematicBreak(t *testing.T) {
	src := strings.Join([]string{
		"first page",
		"",
		"---",
		"",
		"second page",
	}, "\n")
	doc := mustParse(t, src)
	pages := doc.Pages(BreakCondition{Type: BreakThematic}).CollectPages()

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	for i, page := range pages {
		if len(page.Nodes()) != 1 {
			t.Fatalf("page %d: got %d nodes, want 1", i+1, len(page.Nodes()))
		}
		if _, ok := page.Nodes()[0].(*ast.ThematicBreak); ok {
			t.Fatalf("page %d: thematic break leaked into page", i+1)
		}
	}
}

func TestPagesSplitOnHeading(t *testing.T) {
	src := strings.Join([]string{
		"# one",
		"",
		"text",
		"",
		"# two",
		"",
		"more",
	}, "\n")
	doc := mustParse(t, src)
	pages := doc.Pages(BreakCondition{Type: BreakHeading, Level: 1}).CollectPages()

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	for i, page := range pages {
		if len(page.Nodes()) != 2 {
			t.Fatalf("page %d: got %d nodes, want 2", i+1, len(page.Nodes()))
		}
		h, ok := page.Nodes()[0].(*ast.Heading)
		if !ok || h.Level != 1 {
			t.Fatalf("page %d: first node is not a level 1 heading", i+1)
		}
	}
}

func TestPagesHeadingLevelMismatchDoesNotSplit(t *testing.T) {
	src := "# one\n\n## two\n\n### three"
	doc := mustParse(t, src)
	pages := doc.Pages(BreakCondition{Type: BreakHeading, Level: 2}).CollectPages()

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if len(pages[1].Nodes()) != 2 {
		t.Fatalf("second page: got %d nodes, want 2", len(pages[1].Nodes()))
	}
}

func TestPagesEmptyDocument(t *testing.T) {
	doc := mustParse(t, "")
	if pages := doc.Pages(BreakCondition{}).CollectPages(); len(pages) != 0 {
		t.Fatalf("got %d pages, want 0", len(pages))
	}
}

func TestParseSplitsFrontMatter(t *testing.T) {
	src := strings.Join([]string{
		"%%%",
		"title: Demo",
		"%%%",
		"",
		"body",
	}, "\n")
	doc := mustParse(t, src)

	if got := strings.TrimSpace(string(doc.FrontMatter)); got != "title: Demo" {
		t.Fatalf("front matter: got %q", got)
	}
	pages := doc.Pages(BreakCondition{Type: BreakThematic}).CollectPages()
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
}

func TestParseFrontMatterOnly(t *testing.T) {
	doc := mustParse(t, "%%%\ntitle: Demo\n%%%\n")
	if doc.FrontMatter == nil {
		t.Fatal("front matter not detected")
	}
	if pages := doc.Pages(BreakCondition{}).CollectPages(); len(pages) != 0 {
		t.Fatalf("got %d pages, want 0", len(pages))
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	_, err := ParseDocument([]byte{0xff, 0xfe, 'a'}, ParseOptions{})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("got %v, want ErrInvalidUTF8", err)
	}
}
