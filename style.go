package pitch

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Modifier is a set of independent text attributes.
type Modifier uint8

const (
	ModBold Modifier = 1 << iota
	ModItalic
	ModUnderline
	ModDim
	ModStrikethrough
)

// Has reports whether every attribute in mask is set.
func (m Modifier) Has(mask Modifier) bool { return m&mask == mask }

// Style bundles foreground/background colors with modifiers. The zero value
// is the terminal default with no attributes.
type Style struct {
	FG  tcell.Color
	BG  tcell.Color
	Mod Modifier
}

// With returns a copy of s with the given modifiers added.
func (s Style) With(mask Modifier) Style {
	s.Mod |= mask
	return s
}

// Foreground returns a copy of s with the foreground color replaced.
func (s Style) Foreground(c tcell.Color) Style {
	s.FG = c
	return s
}

// Background returns a copy of s with the background color replaced.
func (s Style) Background(c tcell.Color) Style {
	s.BG = c
	return s
}

// Terminal converts s to a tcell style.
func (s Style) Terminal() tcell.Style {
	st := tcell.StyleDefault
	if s.FG.Valid() {
		st = st.Foreground(s.FG)
	}
	if s.BG.Valid() {
		st = st.Background(s.BG)
	}
	return st.
		Bold(s.Mod.Has(ModBold)).
		Italic(s.Mod.Has(ModItalic)).
		Underline(s.Mod.Has(ModUnderline)).
		Dim(s.Mod.Has(ModDim)).
		StrikeThrough(s.Mod.Has(ModStrikethrough))
}

const ansiReset = "\x1b[0m"

// SGR returns the ANSI escape sequence selecting s, or "" for the zero
// style.
func (s Style) SGR() string {
	var codes []string
	if s.Mod.Has(ModBold) {
		codes = append(codes, "1")
	}
	if s.Mod.Has(ModDim) {
		codes = append(codes, "2")
	}
	if s.Mod.Has(ModItalic) {
		codes = append(codes, "3")
	}
	if s.Mod.Has(ModUnderline) {
		codes = append(codes, "4")
	}
	if s.Mod.Has(ModStrikethrough) {
		codes = append(codes, "9")
	}
	if s.FG.Valid() {
		codes = append(codes, colorCodes("38", s.FG)...)
	}
	if s.BG.Valid() {
		codes = append(codes, colorCodes("48", s.BG)...)
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorCodes(plane string, c tcell.Color) []string {
	r, g, b := c.TrueColor().RGB()
	return []string{
		plane, "2",
		strconv.Itoa(int(r)),
		strconv.Itoa(int(g)),
		strconv.Itoa(int(b)),
	}
}

// Run is a text segment with a style applied.
type Run struct {
	Text  string
	Style Style
}

// Line is an ordered sequence of styled runs forming one logical line.
type Line []Run

// hasContent reports whether the line contains any non-whitespace rune.
func (l Line) hasContent() bool {
	for _, run := range l {
		if strings.TrimSpace(run.Text) != "" {
			return true
		}
	}
	return false
}

func (l Line) String() string {
	var b strings.Builder
	for _, run := range l {
		b.WriteString(run.Text)
	}
	return b.String()
}
