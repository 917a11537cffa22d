package pitch

import "sort"

// FootnoteTable is a document-wide registry mapping footnote names to
// stable indices with optional content, and tracks the references seen
// while transforming the current page. A name maps to exactly one index for
// the lifetime of the document.
type FootnoteTable struct {
	names   []string
	content []*Sections
	refs    map[string]struct{}
}

// NewFootnoteTable returns an empty registry.
func NewFootnoteTable() *FootnoteTable {
	return &FootnoteTable{refs: make(map[string]struct{})}
}

func (t *FootnoteTable) index(name string) (int, bool) {
	for i, n := range t.names {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

func (t *FootnoteTable) add(name string) int {
	t.names = append(t.names, name)
	t.content = append(t.content, nil)
	return len(t.names) - 1
}

// Reference records a reference to name on the current page and returns its
// index, assigning a new one the first time the name is seen.
func (t *FootnoteTable) Reference(name string) int {
	t.refs[name] = struct{}{}
	if i, ok := t.index(name); ok {
		return i
	}
	return t.add(name)
}

// Define attaches content to name and returns its index. A later definition
// overwrites an earlier one; definitions and references may arrive in any
// order.
func (t *FootnoteTable) Define(name string, content Sections) int {
	i, ok := t.index(name)
	if !ok {
		i = t.add(name)
	}
	t.content[i] = &content
	return i
}

// Lookup returns the content for index, if it was ever defined.
func (t *FootnoteTable) Lookup(index int) (Sections, bool) {
	if index < 0 || index >= len(t.content) || t.content[index] == nil {
		return Sections{}, false
	}
	return *t.content[index], true
}

// TakeReferences returns the distinct indices referenced since the last
// call, ascending by index, and clears the reference set. It is called once
// per page, after transforming that page.
func (t *FootnoteTable) TakeReferences() []int {
	indices := make([]int, 0, len(t.refs))
	for name := range t.refs {
		if i, ok := t.index(name); ok {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)
	t.refs = make(map[string]struct{})
	return indices
}

var superscripts = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// SuperscriptLabel converts a zero-based footnote index to its one-based
// superscript numeral: 0 is "¹", 9 is "¹⁰".
func SuperscriptLabel(index int) string {
	current := index + 1
	var digits []rune
	for current > 0 {
		digits = append([]rune{superscripts[current%10]}, digits...)
		current /= 10
	}
	return string(digits)
}
