// Package policy enforces the commercial peering relationship between
// neighbors: which routes may be forwarded between them, and which
// neighbors an update or revoke is re-announced to.
package policy

// Relation is the commercial relationship a neighbor has with this AS.
type Relation string

const (
	Customer Relation = "cust"
	Peer     Relation = "peer"
	Provider Relation = "prov"
)

// Forwardable reports whether a data packet arriving on a link with
// relation src may be forwarded out toward a candidate route learned from
// a neighbor with relation dst. Only peer->peer, peer->prov and
// prov->peer are refused; every other pairing, prov->prov included, is
// forwardable.
func Forwardable(src, dst Relation) bool {
	if src == Peer && dst == Peer {
		return false
	}
	if src == Peer && dst == Provider {
		return false
	}
	if src == Provider && dst == Peer {
		return false
	}
	return true
}

// Exportable reports whether an update or revoke received from a neighbor
// with relation src should be re-announced to a neighbor with relation
// dst. A route learned from a customer is re-announced to everyone; one
// learned from a peer or provider is re-announced only to customers.
func Exportable(src, dst Relation) bool {
	if src == Customer {
		return true
	}
	return dst == Customer
}
