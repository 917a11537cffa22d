package pitch

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
)

// Highlighter colors source code for code blocks. Implementations return
// one styled run slice per source line.
type Highlighter interface {
	Highlight(language, source string) ([][]Run, error)
}

// Context carries everything page transformation needs. One context serves
// one presentation load.
type Context struct {
	Config      *Config
	Footnotes   *FootnoteTable
	Highlighter Highlighter
	Logger      *zap.Logger
}

// NewContext returns a context with a fresh footnote table. A nil logger is
// replaced by a no-op one; a nil highlighter leaves code blocks unstyled.
func NewContext(cfg *Config, hl Highlighter, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		Config:      cfg,
		Footnotes:   NewFootnoteTable(),
		Highlighter: hl,
		Logger:      logger,
	}
}

// TransformPage converts one page's Markdown nodes into renderable
// sections. Footnote references encountered on the page are recorded in the
// context's footnote table; footnote definitions are registered and produce
// no visible section. Unsupported constructs abort with an error naming the
// construct and its source line.
func TransformPage(ctx *Context, page Page) (Sections, error) {
	tr := &transformer{ctx: ctx, doc: page.doc}
	return tr.blocks(page.Nodes(), ctx.Config.DefaultStyle, 1)
}

type transformer struct {
	ctx *Context
	doc *Document
}

func (tr *transformer) blocks(nodes []ast.Node, base Style, margin int) (Sections, error) {
	var list []Section
	for _, n := range nodes {
		section, err := tr.block(n, base)
		if err != nil {
			return Sections{}, err
		}
		if section != nil {
			list = append(list, section)
		}
	}
	sections := newSections(list)
	sections.InnerMargin = margin
	return sections, nil
}

func (tr *transformer) children(n ast.Node, base Style, margin int) (Sections, error) {
	var nodes []ast.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		nodes = append(nodes, c)
	}
	return tr.blocks(nodes, base, margin)
}

func (tr *transformer) block(n ast.Node, base Style) (Section, error) {
	switch n := n.(type) {
	case *ast.Paragraph:
		lines, err := tr.inlineLines(n, base)
		if err != nil {
			return nil, err
		}
		return &Paragraph{Lines: lines}, nil

	case *ast.TextBlock:
		lines, err := tr.inlineLines(n, base)
		if err != nil {
			return nil, err
		}
		return &Paragraph{Lines: lines}, nil

	case *ast.Heading:
		return tr.heading(n)

	case *ast.Blockquote:
		content, err := tr.children(n, base.With(ModDim|ModItalic), 1)
		if err != nil {
			return nil, err
		}
		return &BlockQuote{Content: content}, nil

	case *ast.FencedCodeBlock:
		return tr.codeBlock(string(n.Language(tr.doc.source)), n.Lines(), base), nil

	case *ast.CodeBlock:
		return tr.codeBlock("", n.Lines(), base), nil

	case *ast.List:
		return tr.list(n, base)

	case *ast.ThematicBreak:
		return &ThematicBreak{}, nil

	case *east.Table:
		return tr.table(n, base)

	case *east.FootnoteList:
		return nil, tr.footnoteList(n, base)

	case *ast.HTMLBlock:
		return nil, tr.unsupported("html block", n)

	default:
		return nil, tr.unsupported(n.Kind().String(), n)
	}
}

func (tr *transformer) heading(n *ast.Heading) (Section, error) {
	hs, err := tr.ctx.Config.Heading(n.Level)
	if err != nil {
		return nil, fmt.Errorf("%w (line %d)", err, tr.doc.lineOf(n))
	}
	line := Line{{Text: hs.Prefix, Style: hs.Style}}
	lines, err := tr.inlineLines(n, hs.Style)
	if err != nil {
		return nil, err
	}
	// A heading is one logical line; separate any folded source lines with
	// a space.
	for i, l := range lines {
		if i > 0 {
			line = append(line, Run{Text: " ", Style: hs.Style})
		}
		line = append(line, l...)
	}
	return &Heading{Line: line, Level: n.Level}, nil
}

func (tr *transformer) codeBlock(language string, segments *text.Segments, base Style) Section {
	var b strings.Builder
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		b.Write(seg.Value(tr.doc.source))
	}
	source := strings.TrimSuffix(b.String(), "\n")

	if tr.ctx.Highlighter != nil {
		runs, err := tr.ctx.Highlighter.Highlight(language, source)
		if err == nil {
			lines := make([]Line, len(runs))
			for i, r := range runs {
				lines[i] = Line(r)
			}
			return &CodeBlock{Lines: lines}
		}
		tr.ctx.Logger.Warn("syntax highlighting failed",
			zap.String("language", language),
			zap.Error(err))
	}
	var lines []Line
	for _, plain := range strings.Split(source, "\n") {
		lines = append(lines, Line{{Text: plain, Style: base}})
	}
	return &CodeBlock{Lines: lines}
}

func (tr *transformer) list(n *ast.List, base Style) (Section, error) {
	var items []Section
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			return nil, tr.unsupported(c.Kind().String(), c)
		}
		content, err := tr.children(item, base, 1)
		if err != nil {
			return nil, err
		}
		if n.IsOrdered() {
			items = append(items, &OrderedItem{Content: content, Delimiter: rune(n.Marker)})
		} else {
			items = append(items, &UnorderedItem{Content: content, Bullet: tr.ctx.Config.Bullet})
		}
	}
	sections := newSections(items)
	sections.InnerMargin = 0
	start := n.Start
	if start == 0 {
		start = 1
	}
	sections.renumber(start)
	return &List{Content: sections}, nil
}

func (tr *transformer) table(n *east.Table, base Style) (Section, error) {
	var rows []TableRow
	for part := n.FirstChild(); part != nil; part = part.NextSibling() {
		switch part := part.(type) {
		case *east.TableHeader:
			row, err := tr.tableRow(part, base, true)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		case *east.TableRow:
			row, err := tr.tableRow(part, base, false)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		default:
			return nil, tr.unsupported(part.Kind().String(), part)
		}
	}
	return &Table{Rows: rows}, nil
}

func (tr *transformer) tableRow(n ast.Node, base Style, header bool) (TableRow, error) {
	row := TableRow{Header: header}
	for cell := n.FirstChild(); cell != nil; cell = cell.NextSibling() {
		lines, err := tr.inlineLines(cell, base)
		if err != nil {
			return TableRow{}, err
		}
		var line Line
		for _, l := range lines {
			line = append(line, l...)
		}
		row.Cells = append(row.Cells, line)
	}
	return row, nil
}

func (tr *transformer) footnoteList(n *east.FootnoteList, base Style) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		note, ok := c.(*east.Footnote)
		if !ok {
			continue
		}
		content, err := tr.children(note, base.With(ModDim), 1)
		if err != nil {
			return err
		}
		tr.ctx.Footnotes.Define(string(note.Ref), content)
	}
	return nil
}

// inlineLines walks n's inline children into styled lines. Soft line
// breaks become spaces so the paragraph reflows as one line; only hard
// breaks start a new one.
func (tr *transformer) inlineLines(n ast.Node, base Style) ([]Line, error) {
	lb := &lineBuilder{}
	if err := tr.inlines(n, base, lb); err != nil {
		return nil, err
	}
	return lb.finish(), nil
}

func (tr *transformer) inlines(n ast.Node, base Style, lb *lineBuilder) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			lb.add(Run{Text: string(c.Segment.Value(tr.doc.source)), Style: base})
			if c.HardLineBreak() {
				lb.breakLine()
			} else if c.SoftLineBreak() {
				// A source line ending inside a paragraph flows on.
				lb.add(Run{Text: " ", Style: base})
			}

		case *ast.String:
			lb.add(Run{Text: string(c.Value), Style: base})

		case *ast.Emphasis:
			style := base.With(ModItalic)
			if c.Level >= 2 {
				style = base.With(ModBold)
			}
			if err := tr.inlines(c, style, lb); err != nil {
				return err
			}

		case *ast.CodeSpan:
			if err := tr.inlines(c, Style{}, lb); err != nil {
				return err
			}

		case *ast.Link:
			if err := tr.inlines(c, linkStyle(base), lb); err != nil {
				return err
			}
			lb.add(Run{Text: " <" + string(c.Destination) + ">", Style: base})

		case *ast.AutoLink:
			lb.add(Run{Text: string(c.URL(tr.doc.source)), Style: linkStyle(base)})

		case *east.Strikethrough:
			if err := tr.inlines(c, base.With(ModStrikethrough), lb); err != nil {
				return err
			}

		case *east.FootnoteLink:
			name := tr.doc.footnoteName(c.Index)
			index := tr.ctx.Footnotes.Reference(name)
			lb.add(Run{Text: SuperscriptLabel(index)})

		case *east.FootnoteBacklink:
			// Backlinks only make sense in hypertext output.

		case *ast.Image:
			return tr.unsupported("image", c)

		case *ast.RawHTML:
			return tr.unsupported("raw html", c)

		case *east.TaskCheckBox:
			return tr.unsupported("task list marker", c)

		default:
			return tr.unsupported(c.Kind().String(), c)
		}
	}
	return nil
}

func linkStyle(base Style) Style {
	return base.With(ModUnderline).Foreground(tcell.ColorBlue)
}

func (tr *transformer) unsupported(construct string, n ast.Node) error {
	return fmt.Errorf("unsupported markdown construct %q (line %d)", construct, tr.doc.lineOf(n))
}

type lineBuilder struct {
	lines   []Line
	current Line
}

func (lb *lineBuilder) add(run Run) {
	if run.Text == "" {
		return
	}
	lb.current = append(lb.current, run)
}

func (lb *lineBuilder) breakLine() {
	lb.lines = append(lb.lines, lb.current)
	lb.current = nil
}

func (lb *lineBuilder) finish() []Line {
	if len(lb.current) > 0 {
		lb.breakLine()
	}
	return lb.lines
}
