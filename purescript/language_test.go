package purescript

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/cst/green"
)

func TestKindSpace(t *testing.T) {
	require.Equal(t, len(kindNames)-1, int(Sentinel))
	require.Equal(t, "Whitespace", Whitespace.String())
	require.Equal(t, "EndOfFile", EndOfFile.String())
	require.Equal(t, "Sentinel", Sentinel.String())
	require.Equal(t, "SyntaxKind(500)", SyntaxKind(500).String())

	for i, name := range kindNames {
		k, ok := KindByName(name)
		require.True(t, ok, name)
		require.Equal(t, SyntaxKind(i), k)
		require.Equal(t, name, RawKindName(k.Raw()))
	}

	_, ok := KindByName("ModuleKeyword")
	require.False(t, ok)
	_, ok = RawKindByName("")
	require.False(t, ok)
}

func TestKindFromRaw(t *testing.T) {
	lang := Language{}
	for _, k := range []SyntaxKind{Whitespace, Module, Error, EndOfFile, Sentinel} {
		require.Equal(t, k, lang.KindFromRaw(lang.KindToRaw(k)))
	}
	require.Panics(t, func() { lang.KindFromRaw(green.Kind(Sentinel) + 1) })
	require.Panics(t, func() { lang.KindFromRaw(0xFFFF) })
}

func TestTrivia(t *testing.T) {
	trivia := map[SyntaxKind]bool{Whitespace: true, LineComment: true, BlockComment: true}
	lang := Language{}
	for i := range kindNames {
		k := SyntaxKind(i)
		require.Equal(t, trivia[k], k.IsTrivia(), k.String())
		require.Equal(t, trivia[k], lang.IsTrivia(k), k.String())
	}
}

func TestNewRoot(t *testing.T) {
	b := green.NewBuilder()
	b.StartNode(Module.Raw())
	b.Token(LineComment.Raw(), "-- hi")
	b.FinishNode()

	root := NewRoot(b.Finish())
	require.Equal(t, Module, root.Kind())
	require.Equal(t, "Module", root.Language().KindName(root.Kind()))
	tok := root.FirstToken()
	require.Equal(t, LineComment, tok.Kind())
	require.True(t, tok.IsTrivia())
}
