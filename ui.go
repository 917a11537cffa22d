package pitch

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// ErrEmptyDeck reports a presentation without any pages.
var ErrEmptyDeck = errors.New("presentation has no pages")

// Present shows the deck on the controlling terminal and blocks until the
// user quits. Left and Backspace go to the previous page, Right and Enter
// to the next, q and Escape quit.
func Present(cfg *Config, deck *Deck) error {
	if len(deck.Pages) == 0 {
		return ErrEmptyDeck
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal screen: %w", err)
	}
	defer screen.Fini()
	return present(screen, cfg, deck)
}

// present drives the event loop on an initialized screen. Split out so
// tests can drive it with a simulation screen.
func present(screen tcell.Screen, cfg *Config, deck *Deck) error {
	current := 0
	for {
		drawDeckPage(screen, cfg, deck, current)
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
				if current > 0 {
					current--
				}
			case tcell.KeyRight, tcell.KeyEnter:
				if current < len(deck.Pages)-1 {
					current++
				}
			case tcell.KeyEscape:
				return nil
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					return nil
				}
			}
		case nil:
			return nil
		}
	}
}

func drawDeckPage(screen tcell.Screen, cfg *Config, deck *Deck, current int) {
	screen.Clear()
	width, height := screen.Size()
	buf := NewBuffer(width, height)

	frame := buf.Area()
	if len(deck.Pages) > 1 {
		frame.Height--
	}
	drawFrame(buf, frame, cfg.Title)
	deck.Pages[current].Render(frame.Inner(1, 1), buf)
	if len(deck.Pages) > 1 {
		drawGauge(buf, width, height-1, current, len(deck.Pages))
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := buf.Get(x, y)
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, cell.Style.Terminal())
		}
	}
	screen.Show()
}

// drawFrame draws a rounded border with the title centered in the top
// edge.
func drawFrame(buf *Buffer, area Rect, title string) {
	if area.Width < 2 || area.Height < 2 {
		return
	}
	style := Style{Mod: ModDim}
	right := area.X + area.Width - 1
	bottom := area.Y + area.Height - 1

	buf.Set(area.X, area.Y, '╭', style)
	buf.Set(right, area.Y, '╮', style)
	buf.Set(area.X, bottom, '╰', style)
	buf.Set(right, bottom, '╯', style)
	for x := area.X + 1; x < right; x++ {
		buf.Set(x, area.Y, '─', style)
		buf.Set(x, bottom, '─', style)
	}
	for y := area.Y + 1; y < bottom; y++ {
		buf.Set(area.X, y, '│', style)
		buf.Set(right, y, '│', style)
	}

	if title == "" {
		return
	}
	label := " " + title + " "
	w := runewidth.StringWidth(label)
	if w > area.Width-2 {
		return
	}
	x := area.X + (area.Width-w)/2
	buf.SetString(x, area.Y, label, Style{Mod: ModBold}, area)
}

// drawGauge draws the page progress bar across one row.
func drawGauge(buf *Buffer, width, y, current, pages int) {
	filled := (current + 1) * width / pages
	style := Style{Mod: ModDim}
	for x := 0; x < width; x++ {
		r := '░'
		if x < filled {
			r = '█'
		}
		buf.Set(x, y, r, style)
	}
}
