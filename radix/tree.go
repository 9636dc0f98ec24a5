package radix

// Tree is a binary Patricia trie specialized for longest-prefix matching
// on fixed-width keys. The zero value is not ready for use; construct one
// with New.
type Tree struct {
	root    *node
	destroy func(any)
}

// New creates an empty Tree. destroy, if non-nil, is invoked once per
// stored UserData payload whenever that payload is removed from the
// tree, either via a Remove call or Release. It is never invoked for
// payloads the caller itself removed a reference to some other way.
func New(destroy func(any)) *Tree {
	return &Tree{destroy: destroy}
}

// Release tears the tree down, invoking the configured destructor (if
// any) for every remaining payload. The tree must not be used afterward.
func (t *Tree) Release() {
	releaseSubtree(t.root, t.destroy)
	t.root = nil
}

func releaseSubtree(n *node, destroy func(any)) {
	if n == nil {
		return
	}
	releaseSubtree(n.children[0], destroy)
	releaseSubtree(n.children[1], destroy)
	n.release(destroy)
}

// Len reports the number of prefix-carrying nodes (distinct stored keys,
// irrespective of how many UserData entries each carries).
func (t *Tree) Len() int {
	return countPrefixes(t.root)
}

func countPrefixes(n *node) int {
	if n == nil {
		return 0
	}
	c := countPrefixes(n.children[0]) + countPrefixes(n.children[1])
	if n.prefix != nil {
		c++
	}
	return c
}

// Entry describes one stored (stream, netmask, user) triple, as produced
// by Walk.
type Entry struct {
	Stream  []byte
	Bitlen  int
	Netmask int
	User    any
}

// Walk visits every stored entry in the tree in no particular order. It
// exists for callers (such as the iptrie façade's CoveredNetworks) that
// need to enumerate the full contents rather than perform a single
// lookup; the propagation-list shortcuts that make findBest fast do not
// help here; see DESIGN.md.
func (t *Tree) Walk(fn func(Entry)) {
	walkSubtree(t.root, fn)
}

func walkSubtree(n *node, fn func(Entry)) {
	if n == nil {
		return
	}
	walkSubtree(n.children[0], fn)
	walkSubtree(n.children[1], fn)
	if n.prefix == nil {
		return
	}
	for cur := n.prefix.data; cur != nil; cur = cur.next {
		fn(Entry{Stream: n.prefix.stream, Bitlen: n.prefix.bitlen, Netmask: cur.netmask, User: cur.user})
	}
}
