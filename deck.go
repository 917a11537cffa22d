package pitch

import (
	runewidth "github.com/mattn/go-runewidth"
)

// FootnoteEntry is one footnote shown on a page: the superscript label and
// the defined content.
type FootnoteEntry struct {
	Label   string
	Content Sections
}

// PageWidget is one fully transformed page: the flowing content and the
// footnotes referenced on it, drawn as a panel along the bottom edge.
type PageWidget struct {
	Content   Sections
	Footnotes []FootnoteEntry
}

// Deck is a complete presentation, ready to draw.
type Deck struct {
	Pages []PageWidget
}

// Collect transforms every page of doc into a deck. Footnote content is
// resolved only after all pages have been transformed, so a page may
// reference a footnote defined anywhere in the document.
func Collect(ctx *Context, doc *Document) (*Deck, error) {
	type rawPage struct {
		content Sections
		refs    []int
	}
	var raws []rawPage
	it := doc.Pages(ctx.Config.PageBreak)
	for {
		page, ok := it.Next()
		if !ok {
			break
		}
		content, err := TransformPage(ctx, page)
		if err != nil {
			return nil, err
		}
		raws = append(raws, rawPage{content: content, refs: ctx.Footnotes.TakeReferences()})
	}

	deck := &Deck{}
	for _, raw := range raws {
		widget := PageWidget{Content: raw.content}
		for _, index := range raw.refs {
			content, ok := ctx.Footnotes.Lookup(index)
			if !ok {
				continue
			}
			widget.Footnotes = append(widget.Footnotes, FootnoteEntry{
				Label:   SuperscriptLabel(index),
				Content: content,
			})
		}
		deck.Pages = append(deck.Pages, widget)
	}
	return deck, nil
}

// footnoteGutter returns the label column width: the widest label plus one
// spacing column.
func (p PageWidget) footnoteGutter() int {
	w := 0
	for _, e := range p.Footnotes {
		if lw := runewidth.StringWidth(e.Label); lw > w {
			w = lw
		}
	}
	return w + 1
}

// footnoteHeights returns the per-entry panel heights and their sum.
func (p PageWidget) footnoteHeights(width int) ([]int, int) {
	gutter := p.footnoteGutter()
	heights := make([]int, len(p.Footnotes))
	total := 0
	for i, e := range p.Footnotes {
		heights[i] = e.Content.Height(width - gutter)
		total += heights[i]
	}
	return heights, total
}

// Height returns the rows the page occupies at the given width, including
// the footnote panel and the blank row separating it from the content.
func (p PageWidget) Height(width int) int {
	h := p.Content.Height(width)
	if len(p.Footnotes) > 0 {
		_, total := p.footnoteHeights(width)
		h += 1 + total
	}
	return h
}

// Render draws the page content from the top of area and the footnote
// panel aligned to its bottom. The panel is omitted when it cannot fit
// below the content with at least one blank row between them.
func (p PageWidget) Render(area Rect, buf *Buffer) {
	p.Content.Render(area, buf)
	if len(p.Footnotes) == 0 {
		return
	}
	heights, total := p.footnoteHeights(area.Width)
	used := p.Content.Height(area.Width)
	if used+1+total > area.Height {
		return
	}
	gutter := p.footnoteGutter()
	y := area.Y + area.Height - total
	for i, e := range p.Footnotes {
		row := Rect{X: area.X, Y: y, Width: area.Width, Height: heights[i]}
		label, body := row.Cut(gutter)
		buf.SetString(label.X, label.Y, e.Label, Style{Mod: ModDim}, label)
		e.Content.Render(body, buf)
		y += heights[i]
	}
}
