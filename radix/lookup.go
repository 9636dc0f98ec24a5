package radix

import "sort"

// descendExact walks the Patricia rule to a leaf at depth bitlen,
// returning it only if its stored stream matches query over all bitlen
// bits. It stops early (ok=false) the moment the tree runs out of
// matching structure, exactly mirroring how add() built the path.
func descendExact(root *node, query []byte, bitlen int) (*node, bool) {
	cur := root
	for cur.bit < bitlen {
		child := cur.child(bitTest(query, cur.bit))
		if child == nil {
			return cur, false
		}
		cur = child
	}
	if cur.bit != bitlen || cur.prefix == nil {
		return cur, false
	}
	if firstDiffer(cur.prefix.stream, query, bitlen) != bitlen {
		return cur, false
	}
	return cur, true
}

// findExact implements spec.md §4.7's exact-match lookup: the query must
// be the literal stored key, and the head of its UserData list must
// itself be a host-netmask entry.
func (t *Tree) findExact(stream []byte, bitlen int) (*node, *userData, bool) {
	if t.root == nil {
		return nil, nil, false
	}
	buf := make([]byte, bitlen/8)
	copy(buf, stream)

	n, ok := descendExact(t.root, buf, bitlen)
	if !ok {
		return nil, nil, false
	}
	ud, ok := n.prefix.lookupAndSelectUser(bitlen, true)
	if !ok {
		return nil, nil, false
	}
	return n, ud, true
}

// findBest implements spec.md §4.7's longest-prefix lookup: on an exact
// landing, a host entry wins; otherwise the head-netmask requirement is
// relaxed per lookupAndSelectUser's non-exact rule. Failing both, it falls
// back to netblockSearch.
func (t *Tree) findBest(stream []byte, bitlen int) (*node, *userData, bool) {
	if t.root == nil {
		return nil, nil, false
	}
	buf := make([]byte, bitlen/8)
	copy(buf, stream)

	landing, ok := descendExact(t.root, buf, bitlen)
	if ok {
		if ud, ok := landing.prefix.lookupAndSelectUser(bitlen, true); ok {
			return landing, ud, true
		}
		if ud, ok := landing.prefix.lookupAndSelectUser(bitlen, false); ok {
			return landing, ud, true
		}
	}
	return t.netblockSearch(landing, buf, bitlen)
}

// netblockSearch implements spec.md §4.7's recursive netblock search:
// climb toward the root until a node carries a non-empty propagation
// list, try each of its registered netmasks from most to least specific
// by chopping the query and redescending from that ancestor, and on total
// failure at one ancestor continue the climb from its parent.
func (t *Tree) netblockSearch(start *node, query []byte, bitlen int) (*node, *userData, bool) {
	for anc := start; anc != nil; anc = anc.parent {
		if len(anc.netmasks) == 0 {
			continue
		}
		for i := len(anc.netmasks) - 1; i >= 0; i-- {
			m := anc.netmasks[i]
			if n, ud, ok := t.matchNetmask(anc, query, bitlen, m); ok {
				return n, ud, true
			}
		}
	}
	return nil, nil, false
}

func (t *Tree) matchNetmask(from *node, query []byte, bitlen, netmask int) (*node, *userData, bool) {
	candidate := chopped(query, netmask)
	n, ok := descendExact(from, candidate, bitlen)
	if !ok {
		return nil, nil, false
	}
	ud, ok := n.prefix.userDataFor(netmask)
	if !ok {
		return nil, nil, false
	}
	return n, ud, true
}

// Match is one netblock or host entry found to contain a queried address,
// returned by the Containing family of operations.
type Match struct {
	Netmask int
	Node    Node
	User    any
}

// allMatches is the supplemental counterpart to findBest: instead of
// stopping at the first successful netblock, it collects every stored
// entry that contains the query, ascending by netmask (least specific
// first), for callers that want the whole containment chain rather than
// just the longest match.
func (t *Tree) allMatches(stream []byte, bitlen int) []Match {
	if t.root == nil {
		return nil
	}
	buf := make([]byte, bitlen/8)
	copy(buf, stream)

	var out []Match
	landing, ok := descendExact(t.root, buf, bitlen)
	if ok {
		for cur := landing.prefix.data; cur != nil; cur = cur.next {
			out = append(out, Match{Netmask: cur.netmask, Node: Node{n: landing}, User: cur.user})
		}
	}
	for anc := landing; anc != nil; anc = anc.parent {
		for _, m := range anc.netmasks {
			if n, ud, ok := t.matchNetmask(anc, buf, bitlen, m); ok {
				out = append(out, Match{Netmask: m, Node: Node{n: n}, User: ud.user})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Netmask < out[j].Netmask })
	return out
}

// ContainingIPv4 returns every stored IPv4 host route or netblock that
// contains stream, ascending from least to most specific.
func (t *Tree) ContainingIPv4(stream [4]byte) []Match {
	return t.allMatches(stream[:], 32)
}

// ContainingIPv6 returns every stored IPv6 host route or netblock that
// contains stream, ascending from least to most specific.
func (t *Tree) ContainingIPv6(stream [16]byte) []Match {
	return t.allMatches(stream[:], 128)
}
