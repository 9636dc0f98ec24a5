package radix

// remove implements spec.md §4.6. stream is expected to already be in
// canonical (network-address) form for netblock removals — unlike add,
// remove does not chop the query against netmask, trusting the caller to
// pass the same network address used to insert it; it only copies the
// stream into a fixed-width working buffer before descending.
//
// A successful removal invokes the tree's destructor (if configured) on
// the removed payload and reports true; any failure to locate the exact
// (prefix, netmask) pair is a silent no-op per spec.md §7.
func (t *Tree) remove(stream []byte, bitlen int, netmask int) bool {
	if t.root == nil || bitlen <= 0 || bitlen%8 != 0 {
		return false
	}
	buf := make([]byte, bitlen/8)
	copy(buf, stream)

	cur := t.root
	for cur.bit < bitlen {
		dir := bitTest(buf, cur.bit)
		child := cur.child(dir)
		if child == nil {
			return false
		}
		cur = child
	}
	if cur.bit != bitlen || cur.prefix == nil {
		return false
	}
	if firstDiffer(cur.prefix.stream, buf, bitlen) != bitlen {
		return false
	}
	if !cur.prefix.containsNetmask(netmask) {
		return false
	}

	user, _ := cur.prefix.removeNetmask(netmask)
	if t.destroy != nil {
		t.destroy(user)
	}
	if isNonHost(netmask, bitlen) {
		removeNetmaskUpward(cur, netmask)
	}

	if cur.prefix.data != nil {
		// Other UserData entries remain; the node itself stays in place.
		return true
	}
	cur.prefix = nil
	collapseFrom(t, cur)
	return true
}

func (n *node) qualifiesForCollapse() bool {
	return n.prefix == nil && n.childrenCount() <= 1 && n.parent != nil
}

func (n *node) childrenCount() int {
	c := 0
	if n.children[0] != nil {
		c++
	}
	if n.children[1] != nil {
		c++
	}
	return c
}

// collapseFrom folds a now-prefixless node (and any prefixless,
// single-child ancestors above it) out of the tree, splicing its lone
// surviving descendant directly into the nearest ancestor that still
// carries a prefix or a full pair of children. Grounded on the teacher's
// qualifiesForPathCompression/compressPathIfPossible, generalized to
// carry netmask propagation lists along instead of silently dropping
// them (spec.md §4.6 step 5).
func collapseFrom(t *Tree, n *node) {
	if !n.qualifiesForCollapse() {
		return
	}

	var loneChild *node
	if n.children[0] != nil {
		loneChild = n.children[0]
	} else if n.children[1] != nil {
		loneChild = n.children[1]
	}

	sample := n.sample
	cur, parent := n, n.parent
	for {
		parent.transferNetmasks(cur)
		if parent.parent == nil || !parent.qualifiesForCollapse() {
			break
		}
		cur, parent = parent, parent.parent
	}

	dir := bitTest(sample, parent.bit)
	parent.setChild(dir, loneChild)
	collapseFrom(t, parent)
}

// removeNetmaskUpward drops one occurrence of m from whichever ancestor
// of start actually holds it. It scans rather than recomputing the
// "deepest ancestor with bit<m" rule, because a later insertion can have
// spliced a new intermediate node between the original registration point
// and the leaf without moving the registration — see DESIGN.md.
func removeNetmaskUpward(start *node, m int) {
	for cur := start.parent; cur != nil; cur = cur.parent {
		if cur.removeNetmask(m) {
			return
		}
	}
}
