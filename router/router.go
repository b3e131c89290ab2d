// Package router wires together the RIB, decision process and policy
// filter behind the neighbor transport: it owns one socket per neighbor,
// runs the single-threaded dispatch loop, and implements the message
// dispatcher (update/revoke/data/dump) and the neighbor announcement
// logic that re-propagates learned routes under export policy.
package router

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nicholascz666666/asrouter/policy"
	"github.com/nicholascz666666/asrouter/rib"
	"github.com/nicholascz666666/asrouter/wire"
)

// pollTimeout stands in for the bounded-timeout readiness poll of the
// spec's event loop: with nothing ready, the dispatch loop simply loops
// back around rather than blocking forever.
const pollTimeout = 1 * time.Second

// Router is a single-AS route server: one RIB, one set of neighbor
// sessions, driven by a single dispatch goroutine.
type Router struct {
	ASN       int
	Neighbors map[string]*Neighbor

	RIB           *rib.RIB
	UpdatesLog    []rib.Route
	WithdrawalLog []rib.WithdrawalEntry

	inbound chan frame
}

// New builds a router for the given ASN with the given neighbor set. It
// does not open any sockets; call Dial to do that.
func New(asn int, neighbors map[string]*Neighbor) *Router {
	return &Router{
		ASN:       asn,
		Neighbors: neighbors,
		RIB:       rib.New(),
		inbound:   make(chan frame),
	}
}

// Dial opens every neighbor's socket and starts its reader goroutine.
// Sessions live for the process lifetime; there is no reconnect logic.
func (r *Router) Dial() error {
	for addr, n := range r.Neighbors {
		conn, err := dialSeqPacket(addr)
		if err != nil {
			return err
		}
		n.conn = conn
		go readLoop(n, r.inbound)
	}
	return nil
}

// Run drives the dispatch loop to completion: it blocks on the neighbor
// fan-in channel with a bounded timeout, and for each arriving frame
// decodes and dispatches it synchronously before waiting for the next
// one. It returns nil on a clean shutdown (every neighbor reached EOF),
// or the fatal transport error that ended the process otherwise.
func (r *Router) Run() error {
	active := len(r.Neighbors)
	if active == 0 {
		return nil
	}

	for {
		select {
		case f := <-r.inbound:
			if f.err != nil {
				if isEOF(f.err) {
					log.Infof("%s: disconnected", f.neighbor.Addr)
					active--
					if active == 0 {
						return nil
					}
					continue
				}
				err := fmt.Errorf("%w: %s: %v", wire.ErrTransportFailure, f.neighbor.Addr, f.err)
				log.Errorf("%v", err)
				return err
			}
			r.dispatch(f.neighbor, f.data)
		case <-time.After(pollTimeout):
			// nothing ready; re-enter the select.
		}
	}
}

// relation looks up the commercial relationship of a known neighbor
// address. ok is false for an address this router never configured.
func (r *Router) relation(addr string) (policy.Relation, bool) {
	n, ok := r.Neighbors[addr]
	if !ok {
		return "", false
	}
	return n.Relation, true
}

