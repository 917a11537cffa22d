package pitch

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestStyleSGR(t *testing.T) {
	if got := (Style{}).SGR(); got != "" {
		t.Fatalf("zero style: got %q, want empty", got)
	}
	if got := (Style{Mod: ModBold}).SGR(); got != "\x1b[1m" {
		t.Fatalf("bold: got %q", got)
	}
	got := (Style{FG: tcell.NewRGBColor(255, 0, 0)}).SGR()
	if got != "\x1b[38;2;255;0;0m" {
		t.Fatalf("red foreground: got %q", got)
	}
}

func TestStyleTerminalRoundTrip(t *testing.T) {
	s := Style{FG: tcell.ColorRed, Mod: ModBold | ModUnderline}
	fg, _, attrs := s.Terminal().Decompose()
	if fg != tcell.ColorRed {
		t.Fatalf("foreground: got %v", fg)
	}
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrUnderline == 0 {
		t.Fatalf("attributes lost: %v", attrs)
	}
}

func TestBufferSetStringClipsAtArea(t *testing.T) {
	buf := NewBuffer(10, 1)
	area := Rect{X: 0, Y: 0, Width: 5, Height: 1}
	buf.SetString(0, 0, "abcdefgh", Style{}, area)
	assertRows(t, bufferRows(buf), []string{"abcde"})
}

func TestBufferWideRunes(t *testing.T) {
	buf := NewBuffer(6, 1)
	end := buf.SetString(0, 0, "日本", Style{}, buf.Area())
	if end != 4 {
		t.Fatalf("cursor after wide runes: got %d, want 4", end)
	}
}

func TestBufferOutOfBoundsWritesDiscarded(t *testing.T) {
	buf := NewBuffer(3, 3)
	buf.Set(-1, 0, 'x', Style{})
	buf.Set(0, 5, 'x', Style{})
	buf.Set(5, 0, 'x', Style{})
	for y := 0; y < 3; y++ {
		if buf.RowUsed(y) {
			t.Fatalf("row %d written by out-of-bounds set", y)
		}
	}
}
