// Package rib holds the routing information base: the raw, arrival-ordered
// set of learned routes and the aggregated forwarding table derived from
// it. It also defines WithdrawalEntry, the record type of the withdrawal
// log the router keeps; removals are applied to raw directly, and the log
// is not replayed.
package rib

import (
	"github.com/nicholascz666666/asrouter/prefix"
)

// Origin ranks how a route entered the table: IGP is preferred over EGP,
// which is preferred over UNK.
type Origin int

const (
	OriginIGP Origin = iota
	OriginEGP
	OriginUNK
)

// ParseOrigin converts the wire string into an Origin. ok is false for
// anything other than IGP, EGP or UNK.
func ParseOrigin(s string) (Origin, bool) {
	switch s {
	case "IGP":
		return OriginIGP, true
	case "EGP":
		return OriginEGP, true
	case "UNK":
		return OriginUNK, true
	default:
		return OriginUNK, false
	}
}

func (o Origin) String() string {
	switch o {
	case OriginIGP:
		return "IGP"
	case OriginEGP:
		return "EGP"
	default:
		return "UNK"
	}
}

// Route is a single learned path, as defined in the data model: the prefix
// it covers, the neighbor that announced it, and the attributes the
// decision process ranks on.
type Route struct {
	Prefix     prefix.Prefix
	Peer       string
	LocalPref  int
	SelfOrigin bool
	ASPath     []int
	Origin     Origin
}

// AttributesEqual reports whether two routes share every attribute the
// aggregator requires to be identical before merging their prefixes.
func (r Route) AttributesEqual(o Route) bool {
	if r.Peer != o.Peer || r.LocalPref != o.LocalPref || r.SelfOrigin != o.SelfOrigin || r.Origin != o.Origin {
		return false
	}
	if len(r.ASPath) != len(o.ASPath) {
		return false
	}
	for i := range r.ASPath {
		if r.ASPath[i] != o.ASPath[i] {
			return false
		}
	}
	return true
}

// RIB is the two-collection store of the data model: raw is the source of
// truth in arrival order, fib is the aggregated view every lookup reads.
type RIB struct {
	raw []Route
	fib []Route
}

// New returns an empty RIB.
func New() *RIB {
	return &RIB{}
}

// Insert appends route to raw. Callers must call Reaggregate afterward to
// bring fib back to a fixpoint.
func (r *RIB) Insert(route Route) {
	r.raw = append(r.raw, route)
}

// Remove deletes every raw entry whose peer and exact (network, netmask)
// match p. It does not touch fib; callers must call Reaggregate afterward.
// It returns the number of entries removed.
func (r *RIB) Remove(peer string, p prefix.Prefix) int {
	kept := r.raw[:0:0]
	removed := 0
	for _, route := range r.raw {
		if route.Peer == peer && route.Prefix.Equal(p) {
			removed++
			continue
		}
		kept = append(kept, route)
	}
	r.raw = kept
	return removed
}

// Lookup returns every fib entry whose prefix contains addr.
func (r *RIB) Lookup(addr uint32) []Route {
	var matches []Route
	for _, route := range r.fib {
		if route.Prefix.Contains(addr) {
			matches = append(matches, route)
		}
	}
	return matches
}

// Raw returns a copy of the raw route set, in arrival order.
func (r *RIB) Raw() []Route {
	out := make([]Route, len(r.raw))
	copy(out, r.raw)
	return out
}

// Fib returns a copy of the current aggregated table, in aggregate
// insertion order.
func (r *RIB) Fib() []Route {
	out := make([]Route, len(r.fib))
	copy(out, r.fib)
	return out
}

// DumpEntry is the (network, netmask, peer) projection of a fib route.
type DumpEntry struct {
	Prefix prefix.Prefix
	Peer   string
}

// Dump snapshots fib, projected to (network, netmask, peer) in fib order.
func (r *RIB) Dump() []DumpEntry {
	out := make([]DumpEntry, len(r.fib))
	for i, route := range r.fib {
		out[i] = DumpEntry{Prefix: route.Prefix, Peer: route.Peer}
	}
	return out
}

// WithdrawalEntry is one withdrawal message as recorded in the log: the
// announcing peer and the list of prefixes it withdrew.
type WithdrawalEntry struct {
	Peer     string
	Prefixes []prefix.Prefix
}
