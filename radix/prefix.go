package radix

import (
	"fmt"
	"strings"
)

// HostNetmask is the sentinel used for generic (non-IP) keys: it marks a
// UserData entry that never propagates into an ancestor's netmask list.
const HostNetmask = 255

// userData is one (netmask, payload) tag attached to a prefix. Lists are
// kept sorted by netmask in descending order with no duplicate netmasks,
// per the Patricia trie's UserData-ordering invariant.
type userData struct {
	netmask int
	user    any
	next    *userData
}

// prefix is the immutable key stored at a node, plus the ordered list of
// payloads tagged onto it. stream always holds exactly bitlen/8 bytes.
type prefix struct {
	stream []byte
	bitlen int
	data   *userData

	// userDataResult is a scratch slot written by lookupAndSelectUser so
	// callers can recover which UserData satisfied a lookup without a
	// second list walk.
	userDataResult *userData
}

func newPrefix(stream []byte, bitlen int, netmask int, user any) (*prefix, error) {
	if bitlen <= 0 || bitlen%8 != 0 {
		return nil, fmt.Errorf("%w: bitlen %d must be a positive multiple of 8", ErrInvalidKey, bitlen)
	}
	if stream == nil {
		return nil, fmt.Errorf("%w: nil key stream", ErrInvalidKey)
	}
	buf := make([]byte, bitlen/8)
	copy(buf, stream)
	return &prefix{
		stream: buf,
		bitlen: bitlen,
		data:   &userData{netmask: netmask, user: user},
	}, nil
}

// addNetmask inserts a new UserData entry, preserving descending netmask
// order. Returns false without modifying the list if netmask is already
// present (duplicate inserts are silent no-ops per the trie's contract).
func (p *prefix) addNetmask(netmask int, user any) bool {
	if p.containsNetmask(netmask) {
		return false
	}
	entry := &userData{netmask: netmask, user: user}
	if p.data == nil || netmask > p.data.netmask {
		entry.next = p.data
		p.data = entry
		return true
	}
	cur := p.data
	for cur.next != nil && cur.next.netmask > netmask {
		cur = cur.next
	}
	entry.next = cur.next
	cur.next = entry
	return true
}

// removeNetmask unlinks the UserData entry matching netmask, if any, and
// returns the payload it carried.
func (p *prefix) removeNetmask(netmask int) (any, bool) {
	var prev *userData
	for cur := p.data; cur != nil; cur = cur.next {
		if cur.netmask == netmask {
			if prev == nil {
				p.data = cur.next
			} else {
				prev.next = cur.next
			}
			return cur.user, true
		}
		prev = cur
	}
	return nil, false
}

func (p *prefix) containsNetmask(netmask int) bool {
	for cur := p.data; cur != nil; cur = cur.next {
		if cur.netmask == netmask {
			return true
		}
	}
	return false
}

// userDataFor returns the UserData entry tagged with exactly netmask, used
// by netblock search once it already knows which netmask value it is
// trying to confirm (bypassing the head-selection rule in
// lookupAndSelectUser, which answers a different question).
func (p *prefix) userDataFor(netmask int) (*userData, bool) {
	for cur := p.data; cur != nil; cur = cur.next {
		if cur.netmask == netmask {
			return cur, true
		}
	}
	return nil, false
}

func (p *prefix) userDataCount() int {
	n := 0
	for cur := p.data; cur != nil; cur = cur.next {
		n++
	}
	return n
}

// lookupAndSelectUser implements the selection rule from spec.md's
// lookup_and_select_user: an exact lookup requires the head entry to carry
// a host netmask (bitlen for IP keys, HostNetmask for generic keys); a
// netblock lookup skips a bitlen-netmask head in favor of the largest
// remaining (non-host) entry.
func (p *prefix) lookupAndSelectUser(bitlen int, exact bool) (*userData, bool) {
	head := p.data
	if head == nil {
		return nil, false
	}
	if exact {
		if head.netmask == bitlen || head.netmask == HostNetmask {
			p.userDataResult = head
			return head, true
		}
		return nil, false
	}
	if head.netmask == bitlen {
		if head.next == nil {
			return nil, false
		}
		p.userDataResult = head.next
		return head.next, true
	}
	p.userDataResult = head
	return head, true
}

func (p *prefix) String() string {
	var b strings.Builder
	for cur := p.data; cur != nil; cur = cur.next {
		if cur != p.data {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%d:%v", cur.netmask, cur.user)
	}
	return b.String()
}
