// Package decision implements the BGP tie-break ladder: given a non-empty
// candidate set for a destination address, it narrows the set step by step,
// retaining every candidate tied on the current step before moving to the
// next.
package decision

import (
	"github.com/nicholascz666666/asrouter/prefix"
	"github.com/nicholascz666666/asrouter/rib"
)

// Narrow applies steps 1 through 5 of the ladder (localpref, selfOrigin,
// ASPath length, origin, peer IP) to candidates and returns every route
// that survives tied through step 5. Longest-prefix match (step 6) is
// deliberately not applied here: the caller must run policy filtering
// first and apply LongestPrefixMatch over whatever policy leaves behind,
// per the decision-then-policy-then-LPM ordering.
func Narrow(candidates []rib.Route) []rib.Route {
	if len(candidates) == 0 {
		return nil
	}

	survivors := candidates

	survivors = keepBest(survivors, func(r rib.Route) int { return r.LocalPref })

	survivors = keepBest(survivors, func(r rib.Route) int {
		if r.SelfOrigin {
			return 1
		}
		return 0
	})

	survivors = keepBest(survivors, func(r rib.Route) int { return -len(r.ASPath) })

	survivors = keepBest(survivors, func(r rib.Route) int { return -int(r.Origin) })

	survivors = keepBestPeer(survivors)

	return survivors
}

// LongestPrefixMatch returns the candidates with maximal prefix length
// among those that contain addr. It is applied after policy filtering, as
// the final tie-break.
func LongestPrefixMatch(candidates []rib.Route, addr uint32) []rib.Route {
	best := -1
	var survivors []rib.Route
	for _, r := range candidates {
		if !r.Prefix.Contains(addr) {
			continue
		}
		length := int(r.Prefix.Len())
		if length > best {
			best = length
			survivors = []rib.Route{r}
		} else if length == best {
			survivors = append(survivors, r)
		}
	}
	return survivors
}

// keepBest retains every candidate whose score (higher is better) equals
// the maximum score across the set.
func keepBest(candidates []rib.Route, score func(rib.Route) int) []rib.Route {
	best := score(candidates[0])
	for _, r := range candidates[1:] {
		if s := score(r); s > best {
			best = s
		}
	}
	var survivors []rib.Route
	for _, r := range candidates {
		if score(r) == best {
			survivors = append(survivors, r)
		}
	}
	return survivors
}

// keepBestPeer retains every candidate whose announcing peer has the
// lowest numeric IPv4 address, treating the dotted-quad peer id as an
// unsigned 32-bit integer. Candidates whose peer fails to parse as an
// IPv4 address sort last and are excluded once any parseable peer exists.
func keepBestPeer(candidates []rib.Route) []rib.Route {
	type scored struct {
		route rib.Route
		addr  uint32
		ok    bool
	}
	scoredRoutes := make([]scored, len(candidates))
	for i, r := range candidates {
		addr, err := prefix.ParseIP(r.Peer)
		scoredRoutes[i] = scored{route: r, addr: addr, ok: err == nil}
	}

	var bestAddr uint32
	haveBest := false
	for _, s := range scoredRoutes {
		if !s.ok {
			continue
		}
		if !haveBest || s.addr < bestAddr {
			bestAddr = s.addr
			haveBest = true
		}
	}

	var survivors []rib.Route
	for _, s := range scoredRoutes {
		if haveBest && s.ok && s.addr == bestAddr {
			survivors = append(survivors, s.route)
		}
	}
	if !haveBest {
		// nothing parsed as an IPv4 address: fall back to the full set
		// rather than silently discarding every candidate.
		return candidates
	}
	return survivors
}
