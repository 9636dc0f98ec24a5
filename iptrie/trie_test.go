package iptrie

import (
	"fmt"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleTrie() {
	t := New[string]()
	t.Insert(netip.MustParsePrefix("10.0.0.0/8"), "foo")
	t.Insert(netip.MustParsePrefix("10.1.0.0/24"), "bar")

	v, _ := t.Find(netip.MustParseAddr("10.2.0.1"))
	fmt.Printf("10.2.0.1: %+v\n", v)
	v, _ = t.Find(netip.MustParseAddr("10.1.0.1"))
	fmt.Printf("10.1.0.1: %+v\n", v)
	_, ok := t.Find(netip.MustParseAddr("11.0.0.1"))
	fmt.Printf("11.0.0.1 matched: %v\n", ok)

	// Output:
	// 10.2.0.1: foo
	// 10.1.0.1: bar
	// 11.0.0.1 matched: false
}

func TestTrieFindLongestPrefix(t *testing.T) {
	trie := New[string]()
	trie.Insert(netip.MustParsePrefix("192.168.0.0/16"), "/16")
	trie.Insert(netip.MustParsePrefix("192.171.128.0/24"), "/24")
	trie.Insert(netip.MustParsePrefix("192.171.192.0/18"), "/18")

	cases := []struct {
		ip   string
		want string
		ok   bool
	}{
		{"192.168.1.6", "/16", true},
		{"192.171.128.145", "/24", true},
		{"192.171.224.6", "/18", true},
		{"192.171.64.6", "", false},
		{"192.174.224.6", "", false},
	}
	for _, tc := range cases {
		got, ok := trie.Find(netip.MustParseAddr(tc.ip))
		assert.Equal(t, tc.ok, ok, tc.ip)
		assert.Equal(t, tc.want, got, tc.ip)
	}
}

func TestTrieDefaultRouteRemoval(t *testing.T) {
	trie := New[string]()
	trie.Insert(netip.MustParsePrefix("0.0.0.0/0"), "default")
	trie.Insert(netip.MustParsePrefix("192.171.128.0/24"), "/24")

	got, ok := trie.Find(netip.MustParseAddr("1.1.1.1"))
	require.True(t, ok)
	assert.Equal(t, "default", got)

	assert.True(t, trie.Remove(netip.MustParsePrefix("0.0.0.0/0")))
	_, ok = trie.Find(netip.MustParseAddr("1.1.1.1"))
	assert.False(t, ok)
}

func TestTrieHostBeatsNetblock(t *testing.T) {
	trie := New[string]()
	trie.Insert(netip.MustParsePrefix("192.171.128.0/24"), "/24")
	trie.Insert(netip.MustParsePrefix("192.171.128.45/32"), "host")

	got, ok := trie.Find(netip.MustParseAddr("192.171.128.53"))
	require.True(t, ok)
	assert.Equal(t, "/24", got)

	got, ok = trie.Find(netip.MustParseAddr("192.171.128.45"))
	require.True(t, ok)
	assert.Equal(t, "host", got)
}

func TestTrieIPv6LongestPrefix(t *testing.T) {
	trie := New[string]()
	trie.Insert(netip.MustParsePrefix("dbca:abcd:abcd:db00::/56"), "/56")
	trie.Insert(netip.MustParsePrefix("dbca:abcd:abcd:dbaa:1245:2342:1145:6241/128"), "host")

	got, ok := trie.Find(netip.MustParseAddr("dbca:abcd:abcd:dbaa:1245:2342:1356:1241"))
	require.True(t, ok)
	assert.Equal(t, "/56", got)

	_, ok = trie.Find(netip.MustParseAddr("dbca:abcd:abcd:daaa::1"))
	assert.False(t, ok)
}

func TestTrieFindLargestIsLeastSpecific(t *testing.T) {
	trie := New[string]()
	trie.Insert(netip.MustParsePrefix("10.0.0.0/8"), "outer")
	trie.Insert(netip.MustParsePrefix("10.1.0.0/16"), "inner")

	best, ok := trie.Find(netip.MustParseAddr("10.1.2.3"))
	require.True(t, ok)
	assert.Equal(t, "inner", best)

	largest, ok := trie.FindLargest(netip.MustParseAddr("10.1.2.3"))
	require.True(t, ok)
	assert.Equal(t, "outer", largest)
}

func TestTrieContainingNetworksAscending(t *testing.T) {
	trie := New[string]()
	trie.Insert(netip.MustParsePrefix("10.0.0.0/8"), "a")
	trie.Insert(netip.MustParsePrefix("10.1.0.0/16"), "b")
	trie.Insert(netip.MustParsePrefix("10.1.2.0/24"), "c")

	networks := trie.ContainingNetworks(netip.MustParseAddr("10.1.2.3"))
	require.Len(t, networks, 3)
	assert.Equal(t, 8, networks[0].Bits())
	assert.Equal(t, 16, networks[1].Bits())
	assert.Equal(t, 24, networks[2].Bits())
}

func TestTrieCoveredNetworks(t *testing.T) {
	trie := New[string]()
	trie.Insert(netip.MustParsePrefix("10.1.0.0/16"), "b")
	trie.Insert(netip.MustParsePrefix("10.1.2.0/24"), "c")
	trie.Insert(netip.MustParsePrefix("11.0.0.0/8"), "unrelated")

	covered := trie.CoveredNetworks(netip.MustParsePrefix("10.0.0.0/8"))
	assert.Len(t, covered, 2)
}

func TestTrieRemoveRestoresPriorShape(t *testing.T) {
	trie := New[string]()
	trie.Insert(netip.MustParsePrefix("192.168.0.1/24"), "a")
	trie.Insert(netip.MustParsePrefix("192.168.1.1/24"), "b")
	trie.Insert(netip.MustParsePrefix("192.168.1.1/30"), "c")

	require.True(t, trie.Remove(netip.MustParsePrefix("192.168.1.1/30")))
	_, ok := trie.Find(netip.MustParseAddr("192.168.1.1"))
	require.True(t, ok)
	got, _ := trie.Find(netip.MustParseAddr("192.168.1.1"))
	assert.Equal(t, "b", got)
}

func TestTrieClone(t *testing.T) {
	trie := New[int]()
	trie.Insert(netip.MustParsePrefix("192.168.0.0/16"), 1)

	clone := trie.Clone(func(v int) int { return v + 1 })
	orig, _ := trie.Find(netip.MustParseAddr("192.168.1.1"))
	cloned, _ := clone.Find(netip.MustParseAddr("192.168.1.1"))
	assert.Equal(t, 1, orig)
	assert.Equal(t, 2, cloned)
}

func TestTrieReleaseInvokesDestructor(t *testing.T) {
	var destroyed []int
	trie := NewWithDestructor[int](func(v int) { destroyed = append(destroyed, v) })
	trie.Insert(netip.MustParsePrefix("10.0.0.0/8"), 1)
	trie.Insert(netip.MustParsePrefix("10.0.0.1/32"), 2)

	require.True(t, trie.Remove(netip.MustParsePrefix("10.0.0.1/32")))
	assert.Equal(t, []int{2}, destroyed)

	trie.Release()
	assert.Equal(t, []int{2, 1}, destroyed)
}
