package syntax

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/cst/green"
)

type testKind uint16

const (
	kRoot testKind = iota
	kList
	kParen
	kWord
	kSpace
	kComment
	kSentinel
)

var testKindNames = [...]string{"Root", "List", "Paren", "Word", "Space", "Comment", "Sentinel"}

type testLang struct{}

func (testLang) KindFromRaw(raw green.Kind) testKind {
	if raw > green.Kind(kSentinel) {
		panic(fmt.Sprintf("raw kind %d out of range", raw))
	}
	return testKind(raw)
}

func (testLang) KindToRaw(k testKind) green.Kind { return green.Kind(k) }
func (testLang) IsTrivia(k testKind) bool        { return k == kSpace || k == kComment }
func (testLang) KindName(k testKind) string      { return testKindNames[k] }

// buildTree builds "(a b) ;c".
func buildTree() *Node[testKind] {
	b := green.NewBuilder()
	b.StartNode(green.Kind(kRoot))
	b.StartNode(green.Kind(kList))
	b.Token(green.Kind(kParen), "(")
	b.Token(green.Kind(kWord), "a")
	b.Token(green.Kind(kSpace), " ")
	b.Token(green.Kind(kWord), "b")
	b.Token(green.Kind(kParen), ")")
	b.FinishNode()
	b.Token(green.Kind(kSpace), " ")
	b.Token(green.Kind(kComment), ";c")
	b.FinishNode()
	return NewRoot[testKind](testLang{}, b.Finish())
}

func tokenTexts(seq func(func(*Token[testKind]) bool)) []string {
	var out []string
	for t := range seq {
		out = append(out, t.Text())
	}
	return out
}

func TestDump(t *testing.T) {
	root := buildTree()
	require.Equal(t, `Root@0..8
  List@0..5
    Paren@0..1 "("
    Word@1..2 "a"
    Space@2..3 " "
    Word@3..4 "b"
    Paren@4..5 ")"
  Space@5..6 " "
  Comment@6..8 ";c"
`, DebugString[testKind](root))
}

func TestNodeBasics(t *testing.T) {
	root := buildTree()
	require.Equal(t, kRoot, root.Kind())
	require.Equal(t, "(a b) ;c", root.Text())
	require.Equal(t, "(a b) ;c", root.String())
	require.Equal(t, TextRange{Start: 0, End: 8}, root.TextRange())
	require.Nil(t, root.Parent())
	require.Same(t, root, root.Root())

	list := root.FirstChild()
	require.NotNil(t, list)
	require.Equal(t, kList, list.Kind())
	require.Equal(t, "(a b)", list.Text())
	require.Equal(t, 0, list.Index())
	require.Same(t, root, list.Parent())
	require.Same(t, root, list.Root())
	require.Same(t, list, root.LastChild())
}

func TestChildren(t *testing.T) {
	root := buildTree()

	var kinds []testKind
	for e := range root.ChildrenWithTokens() {
		kinds = append(kinds, e.Kind())
	}
	require.Equal(t, []testKind{kList, kSpace, kComment}, kinds)

	kinds = nil
	for e := range root.SignificantChildrenWithTokens() {
		kinds = append(kinds, e.Kind())
	}
	require.Equal(t, []testKind{kList}, kinds)

	require.Equal(t, kList, root.FirstChildOrToken().Kind())
	last := root.LastChildOrToken()
	require.Equal(t, kComment, last.Kind())
	require.Equal(t, TextRange{Start: 6, End: 8}, last.TextRange())
	require.Equal(t, 2, last.Index())

	leaf := root.FirstChild().FirstChild()
	require.Nil(t, leaf)
}

func TestSiblings(t *testing.T) {
	root := buildTree()
	list := root.FirstChild()

	next := list.NextSiblingOrToken()
	require.Equal(t, kSpace, next.Kind())
	require.Equal(t, TextRange{Start: 5, End: 6}, next.TextRange())
	require.Nil(t, list.PrevSiblingOrToken())
	require.Nil(t, list.NextSibling())
	require.Nil(t, list.PrevSibling())
	require.Nil(t, root.NextSiblingOrToken())

	comment := root.LastChildOrToken().(*Token[testKind])
	prev := comment.PrevSiblingOrToken()
	require.Equal(t, kSpace, prev.Kind())
	require.Equal(t, kList, prev.(*Token[testKind]).PrevSiblingOrToken().Kind())
	require.Nil(t, comment.NextSiblingOrToken())
}

func TestTokenNavigation(t *testing.T) {
	root := buildTree()

	first := root.FirstToken()
	require.Equal(t, "(", first.Text())
	require.Nil(t, first.PrevToken())
	last := root.LastToken()
	require.Equal(t, ";c", last.Text())
	require.Nil(t, last.NextToken())

	var forward []string
	for tok := first; tok != nil; tok = tok.NextToken() {
		forward = append(forward, tok.Text())
	}
	require.Equal(t, []string{"(", "a", " ", "b", ")", " ", ";c"}, forward)

	var backward []string
	for tok := last; tok != nil; tok = tok.PrevToken() {
		backward = append(backward, tok.Text())
	}
	slices.Reverse(backward)
	require.Equal(t, forward, backward)

	a := first.NextToken()
	require.Equal(t, "b", a.NextSignificantToken().Text())
	require.Equal(t, ")", last.PrevSignificantToken().Text())
	require.Nil(t, root.FirstChild().LastToken().NextSignificantToken())
	require.True(t, last.IsTrivia())
	require.False(t, a.IsTrivia())
}

func TestAncestorsAndDescendants(t *testing.T) {
	root := buildTree()
	b := root.TokenAtOffset(3)
	require.Equal(t, "b", b.Text())

	var kinds []testKind
	for n := range b.Ancestors() {
		kinds = append(kinds, n.Kind())
	}
	require.Equal(t, []testKind{kList, kRoot}, kinds)

	kinds = nil
	for n := range root.FirstChild().Ancestors() {
		kinds = append(kinds, n.Kind())
	}
	require.Equal(t, []testKind{kList, kRoot}, kinds)

	kinds = nil
	for n := range root.Descendants() {
		kinds = append(kinds, n.Kind())
	}
	require.Equal(t, []testKind{kRoot, kList}, kinds)

	count := 0
	for range root.DescendantsWithTokens() {
		count++
	}
	require.Equal(t, 9, count)

	require.Equal(t, []string{"(", "a", " ", "b", ")", " ", ";c"}, tokenTexts(root.Tokens()))

	// Early exit stops the walk.
	var seen []string
	for tok := range root.Tokens() {
		seen = append(seen, tok.Text())
		if tok.Text() == "a" {
			break
		}
	}
	require.Equal(t, []string{"(", "a"}, seen)
}

func TestTokenAtOffset(t *testing.T) {
	root := buildTree()
	tests := []struct {
		offset int
		want   string
	}{
		{0, "("},
		{1, "a"},
		{2, " "},
		{4, ")"},
		{5, " "}, // boundary picks the right token
		{7, ";c"},
		{8, ";c"}, // end of the tree
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.offset), func(t *testing.T) {
			tok := root.TokenAtOffset(tc.offset)
			require.NotNil(t, tok)
			require.Equal(t, tc.want, tok.Text())
			require.True(t, tok.TextRange().Contains(tc.offset) || tc.offset == root.TextRange().End)
		})
	}
	require.Nil(t, root.TokenAtOffset(-1))
	require.Nil(t, root.TokenAtOffset(9))

	list := root.FirstChild()
	require.Nil(t, list.TokenAtOffset(6))
	require.Equal(t, ")", list.TokenAtOffset(5).Text())
}

func TestQuoteKindName(t *testing.T) {
	tests := map[string]string{
		"ModuleKw":     "ModuleKw",
		"source_file":  "source_file",
		"_expression":  "_expression",
		"(":            `"("`,
		":=":           `":="`,
		"\n":           `"\n"`,
		"identifier#7": `"identifier#7"`,
		"2d":           `"2d"`,
		"":             `""`,
		"line comment": `"line comment"`,
	}
	for name, want := range tests {
		require.Equal(t, want, QuoteKindName(name), name)
	}
}

func TestCoveringElement(t *testing.T) {
	root := buildTree()

	e := root.CoveringElement(TextRange{Start: 1, End: 4})
	require.Equal(t, kList, e.Kind())

	e = root.CoveringElement(TextRange{Start: 1, End: 2})
	require.Equal(t, kWord, e.Kind())
	require.Equal(t, "a", e.Text())

	e = root.CoveringElement(TextRange{Start: 3, End: 7})
	require.Equal(t, kRoot, e.Kind())

	require.Nil(t, root.CoveringElement(TextRange{Start: 7, End: 9}))
}

func TestCoveringElementEmptyRange(t *testing.T) {
	root := buildTree()

	tests := []struct {
		offset int
		kind   testKind
		text   string
	}{
		{0, kParen, "("},
		{2, kSpace, " "},
		{3, kWord, "b"},
		{5, kSpace, " "},
		{6, kComment, ";c"},
		{8, kComment, ";c"},
	}
	for _, tc := range tests {
		e := root.CoveringElement(TextRange{Start: tc.offset, End: tc.offset})
		require.NotNil(t, e, "offset %d", tc.offset)
		require.Equal(t, tc.kind, e.Kind(), "offset %d", tc.offset)
		require.Equal(t, tc.text, e.Text(), "offset %d", tc.offset)

		tok, ok := e.(*Token[testKind])
		require.True(t, ok, "offset %d", tc.offset)
		require.True(t, tok.Equal(root.TokenAtOffset(tc.offset)), "offset %d", tc.offset)
	}
}

func TestEqual(t *testing.T) {
	root := buildTree()
	a1 := root.FirstChild()
	a2 := root.TokenAtOffset(1).Parent()
	require.NotSame(t, a1, a2)
	require.True(t, a1.Equal(a2))
	require.False(t, a1.Equal(root))
	require.True(t, root.TokenAtOffset(3).Equal(root.FirstChild().LastToken().PrevToken()))

	var nilNode *Node[testKind]
	require.True(t, nilNode.Equal(nil))
	require.False(t, nilNode.Equal(root))

	// The same green node under a different root is a different position.
	edited := root.LastChildOrToken().(*Token[testKind]).ReplaceWith(green.NewToken(green.Kind(kComment), ";d"))
	require.Same(t, root.FirstChild().Green(), edited.FirstChild().Green())
	require.False(t, root.FirstChild().Equal(edited.FirstChild()))
}

func TestReplaceToken(t *testing.T) {
	root := buildTree()
	before := root.Text()

	b := root.TokenAtOffset(3)
	edited := b.ReplaceWith(green.NewToken(green.Kind(kWord), "bee"))

	require.Equal(t, "(a bee) ;c", edited.Text())
	require.Equal(t, before, root.Text(), "the old tree is unchanged")
	require.Equal(t, "b", b.Text())
	require.Nil(t, edited.Parent())

	// Only the ancestors of the replaced token are new.
	require.NotSame(t, root.Green(), edited.Green())
	require.NotSame(t, root.FirstChild().Green(), edited.FirstChild().Green())
	for i := range 2 {
		require.Same(t, root.Green().Child(i+1), edited.Green().Child(i+1))
	}
	oldList, newList := root.FirstChild().Green(), edited.FirstChild().Green()
	for _, i := range []int{0, 1, 2, 4} {
		require.Same(t, oldList.Child(i), newList.Child(i))
	}

	// Offsets after the edit shift.
	require.Equal(t, TextRange{Start: 8, End: 10}, edited.LastChildOrToken().TextRange())
}

func TestReplaceNode(t *testing.T) {
	root := buildTree()
	list := root.FirstChild()

	replacement := green.NewNode(green.Kind(kList), []green.Element{
		green.NewToken(green.Kind(kParen), "("),
		green.NewToken(green.Kind(kParen), ")"),
	})
	edited := list.ReplaceWith(replacement)
	require.Equal(t, "() ;c", edited.Text())
	require.Same(t, replacement, edited.FirstChild().Green())
	require.Equal(t, "(a b) ;c", root.Text())

	edited = root.ReplaceChild(2, green.NewToken(green.Kind(kComment), ";;"))
	require.Equal(t, "(a b) ;;", edited.Text())

	swapped := root.ReplaceWith(replacement)
	require.Equal(t, "()", swapped.Text())
	require.Same(t, replacement, swapped.Green())
}

func TestReplaceRootWithTokenPanics(t *testing.T) {
	require.Panics(t, func() {
		replaceAt[testKind](testLang{}, nil, 0, green.NewToken(green.Kind(kWord), "x"))
	})
}

func TestKindOutOfRangePanics(t *testing.T) {
	g := green.NewNode(green.Kind(kSentinel+1), nil)
	root := NewRoot[testKind](testLang{}, g)
	require.Panics(t, func() { root.Kind() })

	ok := NewRoot[testKind](testLang{}, green.NewNode(green.Kind(kSentinel), nil))
	require.Equal(t, kSentinel, ok.Kind())
}

func TestTextRange(t *testing.T) {
	r := TextRange{Start: 2, End: 5}
	require.Equal(t, 3, r.Len())
	require.True(t, r.Contains(2))
	require.True(t, r.Contains(4))
	require.False(t, r.Contains(5))
	require.True(t, r.ContainsRange(TextRange{Start: 2, End: 5}))
	require.True(t, r.ContainsRange(TextRange{Start: 5, End: 5}))
	require.False(t, r.ContainsRange(TextRange{Start: 1, End: 3}))
}
