package green

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	kRoot Kind = iota
	kBranch
	kLeaf
	kWord
	kSpace
)

// buildABC builds A(B(D("x" " ") E("y")) C("z")).
func buildABC() (a, b, c, d, e *Node) {
	d = NewNode(kLeaf, []Element{NewToken(kWord, "x"), NewToken(kSpace, " ")})
	e = NewNode(kLeaf, []Element{NewToken(kWord, "y")})
	b = NewNode(kBranch, []Element{d, e})
	c = NewNode(kBranch, []Element{NewToken(kWord, "z")})
	a = NewNode(kRoot, []Element{b, c})
	return a, b, c, d, e
}

func TestNodeText(t *testing.T) {
	a, b, _, d, _ := buildABC()

	require.Equal(t, "x yz", a.Text())
	require.Equal(t, 4, a.TextLen())
	require.Equal(t, "x y", b.Text())
	require.Equal(t, 2, d.TextLen())
	require.Equal(t, 2, a.ChildCount())
	require.Nil(t, a.Child(2))
	require.Nil(t, a.Child(-1))
}

func TestEmptyNode(t *testing.T) {
	n := NewNode(kRoot, nil)
	require.Equal(t, "", n.Text())
	require.Equal(t, 0, n.TextLen())
	require.Equal(t, 0, n.ChildCount())
}

func TestReplaceSharesOffPathSubtrees(t *testing.T) {
	a, b, c, d, e := buildABC()

	a2 := a.Replace([]int{0, 0, 0}, NewToken(kWord, "w"))

	require.Equal(t, "w yz", a2.Text())
	require.Equal(t, "x yz", a.Text(), "old root must be untouched")

	require.NotSame(t, a, a2)
	b2 := a2.Child(0).(*Node)
	require.NotSame(t, b, b2)
	require.NotSame(t, d, b2.Child(0))

	require.Same(t, c, a2.Child(1))
	require.Same(t, e, b2.Child(1))
	require.Same(t, d.Child(1), b2.Child(0).(*Node).Child(1))
}

func TestReplaceChildNodeWithToken(t *testing.T) {
	a, b, _, _, _ := buildABC()

	a2 := a.ReplaceChild(1, NewToken(kWord, "!"))
	require.Equal(t, "x y!", a2.Text())
	require.Same(t, b, a2.Child(0))
	require.Equal(t, 4, a2.TextLen())
}

func TestReplacePanics(t *testing.T) {
	a, _, _, _, _ := buildABC()

	require.Panics(t, func() { a.ReplaceChild(2, NewToken(kWord, "")) })
	require.Panics(t, func() { a.Replace([]int{1, 0, 0}, NewToken(kWord, "")) })
	require.Panics(t, func() { a.Replace(nil, NewToken(kWord, "")) })
}

func TestReplaceEmptyPathReturnsReplacement(t *testing.T) {
	a, _, c, _, _ := buildABC()
	require.Same(t, c, a.Replace(nil, c))
}

func TestEqual(t *testing.T) {
	a1, _, _, _, _ := buildABC()
	a2, _, _, _, _ := buildABC()

	require.True(t, Equal(a1, a2))
	require.True(t, Equal(a1, a1))
	require.False(t, Equal(a1, a1.Replace([]int{1, 0}, NewToken(kWord, "q"))))
	require.False(t, Equal(NewToken(kWord, "a"), NewToken(kSpace, "a")))
	require.False(t, Equal(NewToken(kWord, "a"), NewNode(kWord, []Element{NewToken(kWord, "a")})))
	require.True(t, Equal(nil, nil))
	require.False(t, Equal(a1, nil))
}
