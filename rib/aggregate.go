package rib

import "github.com/nicholascz666666/asrouter/prefix"

// Reaggregate rebuilds fib from raw by repeated single-pass coalescing
// until a pass makes no change. A single pass cannot detect that two
// post-merge results are themselves mergeable, so the fixpoint loop
// guarantees maximal aggregation regardless of arrival order. This is
// also how disaggregation is obtained: Remove only touches raw, and the
// caller reaggregates from the post-removal raw set rather than trying to
// split an aggregate in place.
func (r *RIB) Reaggregate() {
	working := make([]Route, len(r.raw))
	copy(working, r.raw)

	for {
		merged, changed := coalescePass(working)
		working = merged
		if !changed {
			break
		}
	}

	r.fib = working
}

// coalescePass runs one left-to-right scan over routes and merges the first
// attribute-equal, mergeable pair it finds, placing the result in the
// earlier route's position. It returns as soon as it has made that one
// merge; Reaggregate then starts a fresh scan from the beginning.
func coalescePass(routes []Route) ([]Route, bool) {
	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			if !routes[i].AttributesEqual(routes[j]) {
				continue
			}
			if !prefix.Mergeable(routes[i].Prefix, routes[j].Prefix) {
				continue
			}
			merged := routes[i]
			merged.Prefix = prefix.Merge(routes[i].Prefix, routes[j].Prefix)

			next := make([]Route, 0, len(routes)-1)
			next = append(next, routes[:i]...)
			next = append(next, merged)
			next = append(next, routes[i+1:j]...)
			next = append(next, routes[j+1:]...)
			return next, true
		}
	}
	return routes, false
}
