package radix

// net pairs a byte stream with the number of significant bits it carries.
// For a prefix-bearing node it equals that prefix's own (stream, bitlen);
// for a purely interior node it is the node's divergence point and a
// representative sample of the bits leading to it. It plays the same role
// the teacher's netip.Prefix plays in its own recursive insert.
type net struct {
	stream []byte
	bits   int
}

func nodeNet(n *node) net {
	return net{stream: n.sample, bits: n.bit}
}

func netEqual(a, b net) bool {
	return a.bits == b.bits && firstDiffer(a.stream, b.stream, a.bits) == a.bits
}

// netDivergence returns the longest network shared as a bit-prefix by a
// and b: the teacher's netDivergence generalized from netip.Prefix to raw
// (stream, bits) pairs.
func netDivergence(a, b net) net {
	short, long := a, b
	if short.bits > long.bits {
		short, long = long, short
	}
	diff := firstDiffer(short.stream, long.stream, short.bits)
	return net{stream: short.stream, bits: diff}
}

func isNonHost(netmask, bitlen int) bool {
	return netmask != HostNetmask && netmask < bitlen
}

// add implements spec.md §4.5: canonicalize, materialize the prefix, and
// either seed the tree or walk/splice it into place, then propagate the
// netmask upward when it is not a host route.
func (t *Tree) add(stream []byte, bitlen int, user any, netmask int) (*node, error) {
	if bitlen <= 0 || bitlen%8 != 0 || len(stream) < bitlen/8 {
		return nil, ErrInvalidKey
	}
	buf := make([]byte, bitlen/8)
	copy(buf, stream)
	if netmask != HostNetmask {
		chop(buf, netmask)
	}
	pfx, err := newPrefix(buf, bitlen, netmask, user)
	if err != nil {
		return nil, err
	}

	if t.root == nil {
		t.root = newInteriorNode(0)
	}

	landing, err := t.insertInto(t.root, net{stream: buf, bits: bitlen}, pfx, netmask)
	if err != nil {
		return nil, err
	}
	if isNonHost(netmask, bitlen) {
		registerNetmaskUpward(landing, netmask)
	}
	return landing, nil
}

func (t *Tree) insertInto(cur *node, key net, pfx *prefix, netmask int) (*node, error) {
	if netEqual(nodeNet(cur), key) {
		return attachPrefix(cur, pfx, netmask), nil
	}

	dir := bitTest(key.stream, cur.bit)
	existingChild := cur.child(dir)
	if existingChild == nil {
		leaf := newLeafNode(key.bits, pfx)
		cur.setChild(dir, leaf)
		return leaf, nil
	}

	div := netDivergence(nodeNet(existingChild), key)
	if !netEqual(div, nodeNet(existingChild)) {
		mid := newInteriorNode(div.bits)
		mid.sample = div.stream
		cur.setChild(dir, mid)
		childDir := bitTest(existingChild.sample, div.bits)
		mid.setChild(childDir, existingChild)
		existingChild = mid
	}
	return t.insertInto(existingChild, key, pfx, netmask)
}

// attachPrefix implements insertion Case A: n's position exactly matches
// the new key. If n was a bare interior node it adopts pfx outright;
// otherwise the new (netmask, user) tag is merged into n's existing
// UserData list (silently ignored if netmask is already present there).
func attachPrefix(n *node, pfx *prefix, netmask int) *node {
	if n.prefix == nil {
		n.prefix = pfx
		n.sample = pfx.stream
		return n
	}
	n.prefix.addNetmask(netmask, pfx.data.user)
	return n
}

// registerNetmaskUpward climbs from start's parent to the first ancestor
// whose bit is less than m (or, failing that, the root), and records m
// there. See DESIGN.md for why this module does not retroactively
// migrate earlier registrations down to newly spliced intermediate nodes:
// the relaxed invariant (m is recorded on exactly one ancestor, not
// necessarily the deepest one) is sufficient for netblockSearch to find
// every stored netblock, because the search climbs through empty
// propagation lists and re-descent from any ancestor above the target
// leaf reaches it correctly.
func registerNetmaskUpward(start *node, m int) {
	cur := start.parent
	if cur == nil {
		start.insertNetmask(m)
		return
	}
	for cur.bit >= m && cur.parent != nil {
		cur = cur.parent
	}
	cur.insertNetmask(m)
}
