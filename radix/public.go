package radix

// Node is an opaque handle to a stored prefix, returned by the Add and
// Find family of operations. Its zero value denotes no node and is
// returned alongside every failed operation.
type Node struct {
	n *node
}

// Valid reports whether the handle refers to an actual stored prefix.
func (h Node) Valid() bool {
	return h.n != nil
}

// UserDataCount reports how many distinct netmasks are tagged onto this
// node's stored prefix.
func (h Node) UserDataCount() int {
	if h.n == nil || h.n.prefix == nil {
		return 0
	}
	return h.n.prefix.userDataCount()
}

// String renders the node's UserData list as "netmask:user" pairs,
// descending by netmask, for diagnostics.
func (h Node) String() string {
	if h.n == nil || h.n.prefix == nil {
		return ""
	}
	return h.n.prefix.String()
}

// AddGeneric inserts an opaque byte-string key of bitlen bits (a multiple
// of 8) as a host entry: it never participates in netblock matching,
// mirroring spec.md §4.5's treatment of non-IP keys.
func (t *Tree) AddGeneric(stream []byte, bitlen int, user any) (Node, error) {
	n, err := t.add(stream, bitlen, user, HostNetmask)
	if err != nil {
		return Node{}, err
	}
	return Node{n: n}, nil
}

// RemoveGeneric removes a key previously stored with AddGeneric.
func (t *Tree) RemoveGeneric(stream []byte, bitlen int) bool {
	return t.remove(stream, bitlen, HostNetmask)
}

// FindExactGeneric looks up a key previously stored with AddGeneric.
func (t *Tree) FindExactGeneric(stream []byte, bitlen int) (Node, any, bool) {
	n, ud, ok := t.findExact(stream, bitlen)
	if !ok {
		return Node{}, nil, false
	}
	return Node{n: n}, ud.user, true
}

// AddIPv4 inserts a 4-byte, big-endian IPv4 address as a host route.
func (t *Tree) AddIPv4(stream [4]byte, user any) (Node, error) {
	n, err := t.add(stream[:], 32, user, 32)
	if err != nil {
		return Node{}, err
	}
	return Node{n: n}, nil
}

// AddIPv4Net inserts a 4-byte IPv4 network address tagged with netmask,
// which must be in [0, 32].
func (t *Tree) AddIPv4Net(stream [4]byte, user any, netmask int) (Node, error) {
	n, err := t.add(stream[:], 32, user, netmask)
	if err != nil {
		return Node{}, err
	}
	return Node{n: n}, nil
}

// RemoveIPv4 removes a host route previously stored with AddIPv4.
func (t *Tree) RemoveIPv4(stream [4]byte) bool {
	return t.remove(stream[:], 32, 32)
}

// RemoveIPv4Net removes a netblock previously stored with AddIPv4Net.
func (t *Tree) RemoveIPv4Net(stream [4]byte, netmask int) bool {
	return t.remove(stream[:], 32, netmask)
}

// FindExactIPv4 looks up the literal 32-bit key, requiring a host entry.
func (t *Tree) FindExactIPv4(stream [4]byte) (Node, any, bool) {
	n, ud, ok := t.findExact(stream[:], 32)
	if !ok {
		return Node{}, nil, false
	}
	return Node{n: n}, ud.user, true
}

// FindBestIPv4 performs longest-prefix match against every stored IPv4
// host route and netblock, per spec.md §4.7.
func (t *Tree) FindBestIPv4(stream [4]byte) (Node, any, bool) {
	n, ud, ok := t.findBest(stream[:], 32)
	if !ok {
		return Node{}, nil, false
	}
	return Node{n: n}, ud.user, true
}

// AddIPv6 inserts a 16-byte, big-endian IPv6 address as a host route.
func (t *Tree) AddIPv6(stream [16]byte, user any) (Node, error) {
	n, err := t.add(stream[:], 128, user, 128)
	if err != nil {
		return Node{}, err
	}
	return Node{n: n}, nil
}

// AddIPv6Net inserts a 16-byte IPv6 network address tagged with netmask,
// which must be in [0, 128].
func (t *Tree) AddIPv6Net(stream [16]byte, user any, netmask int) (Node, error) {
	n, err := t.add(stream[:], 128, user, netmask)
	if err != nil {
		return Node{}, err
	}
	return Node{n: n}, nil
}

// RemoveIPv6 removes a host route previously stored with AddIPv6.
func (t *Tree) RemoveIPv6(stream [16]byte) bool {
	return t.remove(stream[:], 128, 128)
}

// RemoveIPv6Net removes a netblock previously stored with AddIPv6Net.
func (t *Tree) RemoveIPv6Net(stream [16]byte, netmask int) bool {
	return t.remove(stream[:], 128, netmask)
}

// FindExactIPv6 looks up the literal 128-bit key, requiring a host entry.
func (t *Tree) FindExactIPv6(stream [16]byte) (Node, any, bool) {
	n, ud, ok := t.findExact(stream[:], 128)
	if !ok {
		return Node{}, nil, false
	}
	return Node{n: n}, ud.user, true
}

// FindBestIPv6 performs longest-prefix match against every stored IPv6
// host route and netblock, per spec.md §4.7.
func (t *Tree) FindBestIPv6(stream [16]byte) (Node, any, bool) {
	n, ud, ok := t.findBest(stream[:], 128)
	if !ok {
		return Node{}, nil, false
	}
	return Node{n: n}, ud.user, true
}
