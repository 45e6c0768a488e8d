package cst

import (
	"fmt"
	"io"
	"sort"

	"github.com/arjunmahishi/cst/events"
	"github.com/arjunmahishi/cst/green"
	"github.com/arjunmahishi/cst/syntax"
	"github.com/arjunmahishi/cst/types"
)

// tree is a parsed file, independent of the kind space it was parsed into.
type tree interface {
	File() string
	Text() string
	Element() types.Element
	Stats() types.Stats
	Kinds(triviaOnly bool) map[string]int
	Replace(offset int, text string) (types.ReplaceResult, error)
	WriteScript(w io.Writer) error
}

// document is a tree over the kind space K.
type document[K syntax.Kind] struct {
	file  string
	root  *syntax.Node[K]
	lines lineIndex
	// errorKind marks error spans, when the kind space has one.
	errorKind func(K) bool
}

func newDocument[K syntax.Kind](file string, root *syntax.Node[K], errorKind func(K) bool) *document[K] {
	return &document[K]{
		file:      file,
		root:      root,
		lines:     newLineIndex(root.Text()),
		errorKind: errorKind,
	}
}

func (d *document[K]) File() string { return d.file }
func (d *document[K]) Text() string { return d.root.Text() }

func (d *document[K]) Element() types.Element {
	return d.element(d.root)
}

func (d *document[K]) element(e syntax.Element[K]) types.Element {
	lang := d.root.Language()
	r := e.TextRange()
	out := types.Element{
		Kind:   lang.KindName(e.Kind()),
		Range:  d.lines.rangeOf(r),
		Trivia: lang.IsTrivia(e.Kind()),
	}
	switch x := e.(type) {
	case *syntax.Token[K]:
		out.Token = true
		out.Text = x.Text()
	case *syntax.Node[K]:
		for c := range x.ChildrenWithTokens() {
			out.Children = append(out.Children, d.element(c))
		}
	}
	return out
}

func (d *document[K]) Stats() types.Stats {
	lang := d.root.Language()
	st := types.Stats{Bytes: d.root.TextRange().Len()}
	for e := range d.root.DescendantsWithTokens() {
		switch e.(type) {
		case *syntax.Node[K]:
			st.Nodes++
		case *syntax.Token[K]:
			st.Tokens++
			if lang.IsTrivia(e.Kind()) {
				st.Trivia++
			}
		}
		if d.errorKind != nil && d.errorKind(e.Kind()) {
			st.Errors++
		}
	}
	return st
}

func (d *document[K]) Kinds(triviaOnly bool) map[string]int {
	lang := d.root.Language()
	counts := make(map[string]int)
	for e := range d.root.DescendantsWithTokens() {
		if triviaOnly && !lang.IsTrivia(e.Kind()) {
			continue
		}
		counts[lang.KindName(e.Kind())]++
	}
	return counts
}

// Replace swaps the text of the token at offset and reports how much of the
// old tree the new one reuses.
func (d *document[K]) Replace(offset int, text string) (types.ReplaceResult, error) {
	tok := d.root.TokenAtOffset(offset)
	if tok == nil {
		return types.ReplaceResult{}, fmt.Errorf("offset %d is outside %s (length %d)", offset, d.file, d.root.TextRange().Len())
	}

	newRoot := tok.ReplaceWith(green.NewToken(tok.Green().Kind(), text))

	copied := 0
	for range tok.Ancestors() {
		copied++
	}
	return types.ReplaceResult{
		File:    d.file,
		Kind:    d.root.Language().KindName(tok.Kind()),
		Range:   d.lines.rangeOf(tok.TextRange()),
		OldText: tok.Text(),
		NewText: text,
		Before:  d.root.Text(),
		After:   newRoot.Text(),
		Copied:  copied,
		Shared:  sharedNodes(d.root.Green(), newRoot.Green()),
	}, nil
}

func (d *document[K]) WriteScript(w io.Writer) error {
	lang := d.root.Language()
	name := func(raw green.Kind) string {
		return lang.KindName(lang.KindFromRaw(raw))
	}
	// Kind spaces with repeated names write the form that resolves back.
	if u, ok := any(lang).(interface{ UniqueName(K) string }); ok {
		name = func(raw green.Kind) string {
			return u.UniqueName(lang.KindFromRaw(raw))
		}
	}
	return events.Write(w, events.FromTree(d.root.Green()), name)
}

// sharedNodes counts the nodes of next that are the same allocation as a
// node of prev.
func sharedNodes(prev, next *green.Node) int {
	seen := make(map[*green.Node]struct{})
	var mark func(n *green.Node)
	mark = func(n *green.Node) {
		seen[n] = struct{}{}
		for _, c := range n.Children() {
			if cn, ok := c.(*green.Node); ok {
				mark(cn)
			}
		}
	}
	mark(prev)

	shared := 0
	var count func(n *green.Node)
	count = func(n *green.Node) {
		if _, ok := seen[n]; ok {
			shared++
		}
		for _, c := range n.Children() {
			if cn, ok := c.(*green.Node); ok {
				count(cn)
			}
		}
	}
	count(next)
	return shared
}

// lineIndex maps byte offsets to 1-based line and column numbers.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	starts := lineIndex{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (li lineIndex) position(offset int) types.Position {
	line := sort.Search(len(li), func(i int) bool { return li[i] > offset }) - 1
	return types.Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - li[line] + 1,
	}
}

func (li lineIndex) rangeOf(r syntax.TextRange) types.Range {
	return types.Range{Start: li.position(r.Start), End: li.position(r.End)}
}
