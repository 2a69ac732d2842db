package search

// trieNode is one character position in the automaton of all indexed
// event names.  Children are keyed by the next byte of the lowercased
// name.  terminal marks that a complete name ends here; ids holds the
// listings whose name ends exactly at this node.
type trieNode struct {
	children map[byte]*trieNode
	terminal bool
	ids      map[uint64]struct{}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[byte]*trieNode)}
}

// PrefixIndex maps lowercase prefixes of event names to the listings
// sharing that name.  It supports insertion and prefix lookup only;
// there is no deletion because the whole tree is rebuilt and swapped
// wholesale on each refresh (see Holder).
type PrefixIndex struct {
	root *trieNode
}

// NewPrefixIndex returns an empty index.
func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{root: newTrieNode()}
}

// Insert walks/creates one node per lowercased byte of name, marks the
// final node terminal and adds id to its set.  Inserting the same
// (name, id) pair twice is a no-op beyond set membership.  An empty
// name inserts only into the root, marking it terminal.
func (p *PrefixIndex) Insert(name string, id uint64) {
	node := p.root
	for i := 0; i < len(name); i++ {
		ch := lowerByte(name[i])
		child, ok := node.children[ch]
		if !ok {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}
	node.terminal = true
	if node.ids == nil {
		node.ids = make(map[uint64]struct{})
	}
	node.ids[id] = struct{}{}
}

// FindByPrefix lowercases prefix, descends one byte at a time and
// returns the union of the id sets of the reached node and its whole
// subtree.  A missing byte means no matches and yields an empty set,
// never an error.  The empty prefix returns every indexed id.  The
// result is an unordered set; callers must not rely on iteration order.
func (p *PrefixIndex) FindByPrefix(prefix string) map[uint64]struct{} {
	out := make(map[uint64]struct{})
	node := p.root
	for i := 0; i < len(prefix); i++ {
		child, ok := node.children[lowerByte(prefix[i])]
		if !ok {
			return out
		}
		node = child
	}
	collectIDs(node, out)
	return out
}

// collectIDs unions node's id set with those of all its descendants.
func collectIDs(node *trieNode, out map[uint64]struct{}) {
	for id := range node.ids {
		out[id] = struct{}{}
	}
	for _, child := range node.children {
		collectIDs(child, out)
	}
}

// lowerByte folds ASCII upper case; other bytes pass through unchanged
// so multi-byte characters still index byte-by-byte.
func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
