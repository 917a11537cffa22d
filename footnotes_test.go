package pitch

import (
	"reflect"
	"testing"
)

func TestFootnoteReferenceIsStable(t *testing.T) {
	table := NewFootnoteTable()
	if got := table.Reference("a"); got != 0 {
		t.Fatalf("first reference: got %d, want 0", got)
	}
	if got := table.Reference("b"); got != 1 {
		t.Fatalf("second name: got %d, want 1", got)
	}
	if got := table.Reference("a"); got != 0 {
		t.Fatalf("repeat reference: got %d, want 0", got)
	}
}

func TestFootnoteDefineBeforeReference(t *testing.T) {
	table := NewFootnoteTable()
	content := newSections([]Section{&Paragraph{Lines: []Line{plainLine("note")}}})
	index := table.Define("a", content)
	if got := table.Reference("a"); got != index {
		t.Fatalf("reference after define: got %d, want %d", got, index)
	}
	if _, ok := table.Lookup(index); !ok {
		t.Fatal("defined footnote not found")
	}
}

func TestFootnoteLookupUndefined(t *testing.T) {
	table := NewFootnoteTable()
	index := table.Reference("a")
	if _, ok := table.Lookup(index); ok {
		t.Fatal("lookup of undefined footnote succeeded")
	}
	if _, ok := table.Lookup(99); ok {
		t.Fatal("lookup of unknown index succeeded")
	}
}

func TestFootnoteTakeReferences(t *testing.T) {
	table := NewFootnoteTable()
	table.Reference("b")
	table.Reference("a")
	table.Reference("b")
	table.Reference("c")

	got := table.TakeReferences()
	if want := []int{0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := table.TakeReferences(); len(got) != 0 {
		t.Fatalf("second call: got %v, want empty", got)
	}

	table.Reference("c")
	if got, want := table.TakeReferences(), []int{2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after new page: got %v, want %v", got, want)
	}
}

func TestSuperscriptLabel(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "¹"},
		{1, "²"},
		{8, "⁹"},
		{9, "¹⁰"},
		{122, "¹²³"},
	}
	for _, tc := range cases {
		if got := SuperscriptLabel(tc.index); got != tc.want {
			t.Fatalf("index %d: got %q, want %q", tc.index, got, tc.want)
		}
	}
}
