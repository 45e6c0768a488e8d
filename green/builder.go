package green

import "fmt"

// Builder assembles a tree from start/token/finish events emitted depth-first
// by a parser. A Builder is single-use scratch state and must not be shared
// between goroutines.
//
// Unbalanced event sequences are bugs in the emitting parser, so every
// misuse panics instead of returning an error.
type Builder struct {
	cache    *NodeCache
	parents  []frame
	children []Element
}

type frame struct {
	kind  Kind
	first int // index into children where this frame's children start
}

// Checkpoint marks a position among the children of the current frame.
type Checkpoint struct {
	depth int
	pos   int
}

// NewBuilder creates a builder that allocates fresh nodes for every event.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewBuilderWithCache creates a builder that interns tokens and small nodes
// through cache.
func NewBuilderWithCache(cache *NodeCache) *Builder {
	return &Builder{cache: cache}
}

// StartNode opens a new node of the given kind.
func (b *Builder) StartNode(kind Kind) {
	b.parents = append(b.parents, frame{kind: kind, first: len(b.children)})
}

// Token appends a leaf to the current node.
func (b *Builder) Token(kind Kind, text string) {
	var tok *Token
	if b.cache != nil {
		tok = b.cache.token(kind, text)
	} else {
		tok = NewToken(kind, text)
	}
	b.children = append(b.children, tok)
}

// FinishNode closes the current node and appends it to its parent.
func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("green: FinishNode called without a matching StartNode")
	}
	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	children := make([]Element, len(b.children)-top.first)
	copy(children, b.children[top.first:])
	b.children = b.children[:top.first]

	var node *Node
	if b.cache != nil {
		node = b.cache.node(top.kind, children)
	} else {
		node = NewNode(top.kind, children)
	}
	b.children = append(b.children, node)
}

// Checkpoint records the current position so that a node can later be
// started retroactively with StartNodeAt.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint{depth: len(b.parents), pos: len(b.children)}
}

// StartNodeAt opens a node of the given kind that adopts every element
// emitted since cp was taken.
func (b *Builder) StartNodeAt(cp Checkpoint, kind Kind) {
	if cp.depth != len(b.parents) {
		panic(fmt.Sprintf("green: checkpoint taken at depth %d used at depth %d", cp.depth, len(b.parents)))
	}
	if cp.pos > len(b.children) {
		panic("green: checkpoint is past the current position")
	}
	if len(b.parents) > 0 && cp.pos < b.parents[len(b.parents)-1].first {
		panic("green: checkpoint belongs to a closed node")
	}
	b.parents = append(b.parents, frame{kind: kind, first: cp.pos})
}

// Finish returns the completed root. Exactly one node must have been
// finished at the top level and no node may remain open.
func (b *Builder) Finish() *Node {
	if len(b.parents) != 0 {
		panic(fmt.Sprintf("green: Finish called with %d unclosed node(s)", len(b.parents)))
	}
	if len(b.children) != 1 {
		panic(fmt.Sprintf("green: Finish expects exactly one root, have %d elements", len(b.children)))
	}
	root, ok := b.children[0].(*Node)
	if !ok {
		panic("green: Finish found a token at the top level")
	}
	b.children = nil
	return root
}
