package pitch

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"pkt.systems/pitch/internal/frontmatter"
)

// ErrInvalidUTF8 reports a presentation source that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8 input")

// ParseOptions controls document parsing.
type ParseOptions struct {
	// FrontMatterDelimiter marks the presentation's configuration block.
	// Empty selects frontmatter.DefaultDelimiter.
	FrontMatterDelimiter string
}

// Document is a parsed presentation source. It owns the Markdown AST for
// the lifetime of one presentation load.
type Document struct {
	root   ast.Node
	source []byte

	// FrontMatter is the raw configuration fragment split from the head of
	// the source, nil when absent.
	FrontMatter []byte

	footnoteNames map[int]string
}

// ParseDocument parses a Markdown presentation. Footnotes, tables and
// strikethrough are enabled; front matter is split off before parsing so it
// never contributes document nodes.
func ParseDocument(src []byte, opts ParseOptions) (*Document, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidUTF8
	}
	meta, body := frontmatter.Split(src, opts.FrontMatterDelimiter)

	md := goldmark.New(goldmark.WithExtensions(
		extension.Footnote,
		extension.Strikethrough,
		extension.Table,
	))
	root := md.Parser().Parse(text.NewReader(body))

	doc := &Document{
		root:          root,
		source:        body,
		FrontMatter:   meta,
		footnoteNames: make(map[int]string),
	}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		list, ok := n.(*east.FootnoteList)
		if !ok {
			continue
		}
		for fn := list.FirstChild(); fn != nil; fn = fn.NextSibling() {
			if note, ok := fn.(*east.Footnote); ok {
				doc.footnoteNames[note.Index] = string(note.Ref)
			}
		}
	}
	return doc, nil
}

// footnoteName resolves a goldmark footnote index to the author's footnote
// name.
func (d *Document) footnoteName(index int) string {
	if name, ok := d.footnoteNames[index]; ok {
		return name
	}
	return fmt.Sprintf("#%d", index)
}

// lineOf returns the 1-based source line of n, or 0 when no position is
// recorded for it or any enclosing block.
func (d *Document) lineOf(n ast.Node) int {
	for at := n; at != nil; at = at.Parent() {
		if at.Type() != ast.TypeBlock {
			continue
		}
		if lines := at.Lines(); lines != nil && lines.Len() > 0 {
			return 1 + bytes.Count(d.source[:lines.At(0).Start], []byte("\n"))
		}
	}
	return 0
}

// Page is a contiguous span of the document's top-level nodes bounded by a
// break condition. Pages borrow nodes from their Document.
type Page struct {
	doc   *Document
	nodes []ast.Node
}

// Nodes returns the page's top-level nodes in document order.
func (p Page) Nodes() []ast.Node { return p.nodes }

// BreakType selects how a document splits into pages.
type BreakType uint8

const (
	// BreakThematic starts a new page at every thematic break. The break
	// node itself belongs to neither page.
	BreakThematic BreakType = iota

	// BreakHeading starts a new page at every heading of exactly Level. The
	// heading becomes the first node of the new page.
	BreakHeading
)

// BreakCondition is the configured page break rule.
type BreakCondition struct {
	Type  BreakType
	Level int
}

// startsPage reports whether n begins a new page, and whether n itself is
// part of that page.
func (c BreakCondition) startsPage(n ast.Node) (breaks, included bool) {
	switch c.Type {
	case BreakThematic:
		_, ok := n.(*ast.ThematicBreak)
		return ok, false
	case BreakHeading:
		h, ok := n.(*ast.Heading)
		return ok && h.Level == c.Level, true
	}
	return false, false
}

// PageIterator yields the document's pages in order. It is not
// restartable.
type PageIterator struct {
	doc  *Document
	cond BreakCondition
	next ast.Node
}

// Pages returns an iterator over the pages produced by cond. An empty
// document yields no pages; content after the last break forms the final
// page.
func (d *Document) Pages(cond BreakCondition) *PageIterator {
	return &PageIterator{doc: d, cond: cond, next: d.root.FirstChild()}
}

// Next returns the next page, or false when the document is exhausted.
func (it *PageIterator) Next() (Page, bool) {
	current := it.next
	if current == nil {
		return Page{}, false
	}
	var nodes []ast.Node
	it.next = nil
	for current != nil {
		nodes = append(nodes, current)
		sibling := current.NextSibling()
		if sibling == nil {
			break
		}
		if breaks, included := it.cond.startsPage(sibling); breaks {
			if included {
				it.next = sibling
			} else {
				it.next = sibling.NextSibling()
			}
			break
		}
		current = sibling
	}
	return Page{doc: it.doc, nodes: nodes}, true
}

// CollectPages drains the iterator into a slice.
func (it *PageIterator) CollectPages() []Page {
	var pages []Page
	for {
		page, ok := it.Next()
		if !ok {
			return pages
		}
		pages = append(pages, page)
	}
}
