// Package syntax colors code blocks with chroma.
package syntax

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"pkt.systems/pitch"
)

// DefaultStyle is the chroma style used when none is requested.
const DefaultStyle = "monokai"

// Highlighter tokenizes source code and maps chroma style entries to
// terminal styles.
type Highlighter struct {
	style *chroma.Style
}

// New returns a highlighter using the named chroma style, or the default
// style when name is empty or unknown.
func New(name string) *Highlighter {
	if name == "" {
		name = DefaultStyle
	}
	style := styles.Get(name)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{style: style}
}

// Highlight returns one styled run slice per line of source. An unknown
// language falls back to the plaintext lexer.
func (h *Highlighter) Highlight(language, source string) ([][]pitch.Run, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, err
	}
	lines := [][]pitch.Run{nil}
	for token := it(); token != chroma.EOF; token = it() {
		style := h.runStyle(token.Type)
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], pitch.Run{Text: part, Style: style})
		}
	}
	return lines, nil
}

func (h *Highlighter) runStyle(tt chroma.TokenType) pitch.Style {
	entry := h.style.Get(tt)
	var style pitch.Style
	if entry.Colour.IsSet() {
		style.FG = rgb(entry.Colour)
	}
	if entry.Background.IsSet() {
		style.BG = rgb(entry.Background)
	}
	if entry.Bold == chroma.Yes {
		style.Mod |= pitch.ModBold
	}
	if entry.Italic == chroma.Yes {
		style.Mod |= pitch.ModItalic
	}
	if entry.Underline == chroma.Yes {
		style.Mod |= pitch.ModUnderline
	}
	return style
}

func rgb(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
