package pitch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func collectDeck(t *testing.T, src string) *Deck {
	t.Helper()
	doc := mustParse(t, src)
	deck, err := Collect(testContext(), doc)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	return deck
}

func TestWriteANSISinglePage(t *testing.T) {
	deck := collectDeck(t, "hello world")
	var out bytes.Buffer
	if err := deck.WriteANSI(&out, 40); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := out.String(); got != "hello world\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteANSIStyledOutput(t *testing.T) {
	deck := collectDeck(t, "some **bold** text")
	var out bytes.Buffer
	if err := deck.WriteANSI(&out, 40); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "\x1b[1mbold\x1b[0m") {
		t.Fatalf("bold run not styled: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Fatalf("missing trailing newline: %q", got)
	}
}

func TestWriteANSISeparatorBetweenPages(t *testing.T) {
	deck := collectDeck(t, "one\n\n---\n\ntwo")
	width := 30
	var out bytes.Buffer
	if err := deck.WriteANSI(&out, width); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "2/2") {
		t.Fatalf("separator label missing: %q", got)
	}
	for i, line := range strings.Split(got, "\n") {
		if w := ansi.PrintableRuneWidth(line); w > width {
			t.Fatalf("line %d exceeds width %d: %q", i+1, width, line)
		}
	}
}

func TestWriteANSIRejectsBadWidth(t *testing.T) {
	deck := collectDeck(t, "text")
	if err := deck.WriteANSI(&bytes.Buffer{}, 0); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestWriteANSINoTrailingBlanks(t *testing.T) {
	deck := collectDeck(t, "# heading\n\nbody")
	var out bytes.Buffer
	if err := deck.WriteANSI(&out, 40); err != nil {
		t.Fatalf("write: %v", err)
	}
	for i, line := range strings.Split(out.String(), "\n") {
		if strings.HasSuffix(line, " ") {
			t.Fatalf("line %d has trailing blanks: %q", i+1, line)
		}
	}
}
