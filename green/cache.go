package green

import (
	"encoding/binary"
	"hash/maphash"
	"sync"
)

// maxCachedChildren bounds the nodes considered for interning. Larger nodes
// are rarely identical and hashing them costs more than it saves.
const maxCachedChildren = 3

// NodeCache interns tokens and small nodes so that identical subtrees built
// through it share one allocation. The cache never evicts; dropping the
// cache releases its entries. It is safe for concurrent use.
type NodeCache struct {
	mu     sync.Mutex
	seed   maphash.Seed
	tokens map[tokenKey]*Token
	nodes  map[uint64][]*Node
	hashes map[*Node]uint64
}

type tokenKey struct {
	kind Kind
	text string
}

// NewNodeCache creates an empty cache.
func NewNodeCache() *NodeCache {
	return &NodeCache{
		seed:   maphash.MakeSeed(),
		tokens: make(map[tokenKey]*Token),
		nodes:  make(map[uint64][]*Node),
		hashes: make(map[*Node]uint64),
	}
}

// Len returns the number of interned tokens and nodes.
func (c *NodeCache) Len() (tokens, nodes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, bucket := range c.nodes {
		nodes += len(bucket)
	}
	return len(c.tokens), nodes
}

func (c *NodeCache) token(kind Kind, text string) *Token {
	key := tokenKey{kind: kind, text: text}

	c.mu.Lock()
	defer c.mu.Unlock()
	if tok, ok := c.tokens[key]; ok {
		return tok
	}
	tok := NewToken(kind, text)
	c.tokens[key] = tok
	return tok
}

func (c *NodeCache) node(kind Kind, children []Element) *Node {
	if len(children) > maxCachedChildren {
		return NewNode(kind, children)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.hash(kind, children)
	if !ok {
		return NewNode(kind, children)
	}
	for _, cand := range c.nodes[h] {
		if sameChildren(cand, kind, children) {
			return cand
		}
	}
	n := NewNode(kind, children)
	c.nodes[h] = append(c.nodes[h], n)
	c.hashes[n] = h
	return n
}

// hash combines the kind with the hashes of the children. A child node
// contributes the hash recorded when it was interned; a child that was not
// interned makes the whole node uncacheable. c.mu must be held.
func (c *NodeCache) hash(kind Kind, children []Element) (uint64, bool) {
	var h maphash.Hash
	h.SetSeed(c.seed)

	var b [8]byte
	binary.LittleEndian.PutUint16(b[:2], uint16(kind))
	h.Write(b[:2])
	for _, child := range children {
		switch e := child.(type) {
		case *Token:
			h.WriteByte(0)
			binary.LittleEndian.PutUint16(b[:2], uint16(e.kind))
			h.Write(b[:2])
			h.WriteString(e.text)
		case *Node:
			sub, ok := c.hashes[e]
			if !ok {
				return 0, false
			}
			h.WriteByte(1)
			binary.LittleEndian.PutUint64(b[:], sub)
			h.Write(b[:])
		}
	}
	return h.Sum64(), true
}

func sameChildren(n *Node, kind Kind, children []Element) bool {
	if n.kind != kind || len(n.children) != len(children) {
		return false
	}
	for i, c := range children {
		if n.children[i] != c {
			return false
		}
	}
	return true
}
