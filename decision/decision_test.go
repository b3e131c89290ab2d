package decision

import (
	"testing"

	"github.com/nicholascz666666/asrouter/prefix"
	"github.com/nicholascz666666/asrouter/rib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPrefix(t *testing.T, network, netmask string) prefix.Prefix {
	t.Helper()
	p, err := prefix.Parse(network, netmask)
	require.NoError(t, err)
	return p
}

// Both candidates tie through localpref; the shortest ASPath must win.
func TestNarrowPicksShortestASPath(t *testing.T) {
	a := rib.Route{
		Prefix:    mustPrefix(t, "10.0.0.0", "255.255.255.0"),
		Peer:      "10.0.0.1",
		LocalPref: 100,
		ASPath:    []int{1, 2},
		Origin:    rib.OriginIGP,
	}
	b := rib.Route{
		Prefix:    mustPrefix(t, "10.0.0.0", "255.255.255.0"),
		Peer:      "10.0.0.2",
		LocalPref: 100,
		ASPath:    []int{3},
		Origin:    rib.OriginIGP,
	}

	survivors := Narrow([]rib.Route{a, b})
	require.Len(t, survivors, 1)
	assert.Equal(t, "10.0.0.2", survivors[0].Peer)
}

func TestNarrowPrefersHigherLocalPref(t *testing.T) {
	a := rib.Route{Peer: "10.0.0.1", LocalPref: 100, ASPath: []int{1}}
	b := rib.Route{Peer: "10.0.0.2", LocalPref: 200, ASPath: []int{1, 2, 3}}

	survivors := Narrow([]rib.Route{a, b})
	require.Len(t, survivors, 1)
	assert.Equal(t, "10.0.0.2", survivors[0].Peer)
}

func TestNarrowPrefersSelfOrigin(t *testing.T) {
	a := rib.Route{Peer: "10.0.0.1", LocalPref: 100, SelfOrigin: false}
	b := rib.Route{Peer: "10.0.0.2", LocalPref: 100, SelfOrigin: true}

	survivors := Narrow([]rib.Route{a, b})
	require.Len(t, survivors, 1)
	assert.True(t, survivors[0].SelfOrigin)
}

func TestNarrowPrefersBetterOrigin(t *testing.T) {
	a := rib.Route{Peer: "10.0.0.1", LocalPref: 100, ASPath: []int{1}, Origin: rib.OriginUNK}
	b := rib.Route{Peer: "10.0.0.2", LocalPref: 100, ASPath: []int{1}, Origin: rib.OriginIGP}

	survivors := Narrow([]rib.Route{a, b})
	require.Len(t, survivors, 1)
	assert.Equal(t, rib.OriginIGP, survivors[0].Origin)
}

func TestNarrowTieBreaksOnLowestPeerIP(t *testing.T) {
	a := rib.Route{Peer: "10.0.0.5", LocalPref: 100, ASPath: []int{1}, Origin: rib.OriginIGP}
	b := rib.Route{Peer: "10.0.0.2", LocalPref: 100, ASPath: []int{1}, Origin: rib.OriginIGP}

	survivors := Narrow([]rib.Route{a, b})
	require.Len(t, survivors, 1)
	assert.Equal(t, "10.0.0.2", survivors[0].Peer)
}

func TestLongestPrefixMatchPicksMostSpecific(t *testing.T) {
	x := rib.Route{Prefix: mustPrefix(t, "10.0.0.0", "255.0.0.0"), Peer: "X"}
	y := rib.Route{Prefix: mustPrefix(t, "10.1.0.0", "255.255.0.0"), Peer: "Y"}

	addr, err := prefix.ParseIP("10.1.2.3")
	require.NoError(t, err)

	survivors := LongestPrefixMatch([]rib.Route{x, y}, addr)
	require.Len(t, survivors, 1)
	assert.Equal(t, "Y", survivors[0].Peer)
}

func TestLongestPrefixMatchExcludesNonContaining(t *testing.T) {
	x := rib.Route{Prefix: mustPrefix(t, "10.0.0.0", "255.0.0.0"), Peer: "X"}
	addr, _ := prefix.ParseIP("172.16.0.1")
	assert.Empty(t, LongestPrefixMatch([]rib.Route{x}, addr))
}
