package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/cst/green"
)

type listView struct{ node *Node[testKind] }

func castList(n *Node[testKind]) (listView, bool) {
	if !HasKind(n, kList) {
		return listView{}, false
	}
	return listView{node: n}, true
}

func TestViews(t *testing.T) {
	root := buildTree()

	require.True(t, HasKind(root, kRoot, kList))
	require.False(t, HasKind(root, kWord))
	require.False(t, HasKind[testKind](nil, kRoot))

	l, ok := Child(root, castList)
	require.True(t, ok)
	require.Equal(t, "(a b)", l.node.Text())

	_, ok = Child(l.node, castList)
	require.False(t, ok)

	words := ChildTokens(l.node, kWord)
	require.Equal(t, []string{"a", "b"}, tokenTexts(words))
	require.Equal(t, "(", ChildToken(l.node, kParen).Text())
	require.Nil(t, ChildToken(root, kWord))
}

func TestChildrenOf(t *testing.T) {
	b := green.NewBuilder()
	b.StartNode(green.Kind(kRoot))
	for range 3 {
		b.StartNode(green.Kind(kList))
		b.Token(green.Kind(kWord), "x")
		b.FinishNode()
		b.Token(green.Kind(kSpace), " ")
	}
	b.FinishNode()
	root := NewRoot[testKind](testLang{}, b.Finish())

	var offsets []int
	for l := range ChildrenOf(root, castList) {
		offsets = append(offsets, l.node.Offset())
	}
	require.Equal(t, []int{0, 2, 4}, offsets)

	// Stopping early is honored.
	n := 0
	for range ChildrenOf(root, castList) {
		n++
		break
	}
	require.Equal(t, 1, n)
}
