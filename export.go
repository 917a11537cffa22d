package pitch

import (
	"fmt"
	"io"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// WriteANSI writes every page of the deck to w as ANSI-styled text laid out
// for the given width, with a ruled separator between pages. The output is
// what the interactive presentation shows, minus frame and navigation.
func (d *Deck) WriteANSI(w io.Writer, width int) error {
	if width <= 0 {
		return fmt.Errorf("non-positive output width %d", width)
	}
	for i, page := range d.Pages {
		if i > 0 {
			if err := writeSeparator(w, i+1, len(d.Pages), width); err != nil {
				return err
			}
		}
		height := page.Height(width)
		buf := NewBuffer(width, height)
		page.Render(buf.Area(), buf)
		if err := writeBuffer(w, buf); err != nil {
			return err
		}
	}
	return nil
}

func writeBuffer(w io.Writer, buf *Buffer) error {
	_, height := buf.Size()
	last := -1
	for y := 0; y < height; y++ {
		if buf.RowUsed(y) {
			last = y
		}
	}
	for y := 0; y <= last; y++ {
		if _, err := io.WriteString(w, rowString(buf, y)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// rowString renders one buffer row with minimal SGR transitions and no
// trailing blanks.
func rowString(buf *Buffer, y int) string {
	width, _ := buf.Size()
	end := 0
	for x := 0; x < width; x++ {
		if buf.Get(x, y).Rune != 0 {
			end = x + 1
		}
	}
	var b strings.Builder
	active := ""
	for x := 0; x < end; x++ {
		cell := buf.Get(x, y)
		r := cell.Rune
		if r == 0 {
			r = ' '
			cell.Style = Style{}
		}
		if sgr := cell.Style.SGR(); sgr != active {
			if active != "" {
				b.WriteString(ansiReset)
			}
			b.WriteString(sgr)
			active = sgr
		}
		b.WriteRune(r)
		// A wide rune covers the cell to its right.
		x += runewidth.RuneWidth(r) - 1
	}
	if active != "" {
		b.WriteString(ansiReset)
	}
	return b.String()
}

func writeSeparator(w io.Writer, page, total, width int) error {
	label := fmt.Sprintf("\x1b[2m %d/%d \x1b[0m", page, total)
	pad := width - ansi.PrintableRuneWidth(label)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	right := pad - left
	_, err := fmt.Fprintf(w, "\n\x1b[2m%s\x1b[0m%s\x1b[2m%s\x1b[0m\n\n",
		strings.Repeat("─", left), label, strings.Repeat("─", right))
	return err
}
