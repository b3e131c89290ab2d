package router

import (
	log "github.com/sirupsen/logrus"

	"github.com/nicholascz666666/asrouter/decision"
	"github.com/nicholascz666666/asrouter/policy"
	"github.com/nicholascz666666/asrouter/prefix"
	"github.com/nicholascz666666/asrouter/rib"
	"github.com/nicholascz666666/asrouter/wire"
)

// dispatch demultiplexes one inbound frame by its envelope type and drives
// the rest of the router synchronously to completion before the dispatch
// loop considers the next frame. A malformed envelope is logged and
// dropped.
func (r *Router) dispatch(n *Neighbor, raw []byte) {
	env, err := wire.Decode(raw)
	if err != nil {
		log.Errorf("%s: %v", n.Addr, err)
		return
	}

	switch env.Type {
	case wire.TypeUpdate:
		r.handleUpdate(n, env)
	case wire.TypeRevoke:
		r.handleRevoke(n, env)
	case wire.TypeData:
		r.handleData(n, env)
	case wire.TypeDump:
		r.handleDump(n, env)
	case wire.TypeNoRoute:
		// dropped, per the dispatcher's "no route: drop" rule.
	default:
		log.Errorf("%s: %v: unknown type %q", n.Addr, wire.ErrMalformedMessage, env.Type)
	}
}

// handleUpdate records the announced route in raw and the updates log,
// reaggregates fib to a fixpoint, then re-announces it to the
// policy-permitted subset of other neighbors.
func (r *Router) handleUpdate(n *Neighbor, env wire.Envelope) {
	body, err := wire.DecodeUpdate(env.Msg)
	if err != nil {
		log.Errorf("%s: %v", n.Addr, err)
		return
	}
	p, err := prefix.Parse(body.Network, body.Netmask)
	if err != nil {
		log.Errorf("%s: %v", n.Addr, err)
		return
	}
	origin, ok := rib.ParseOrigin(body.Origin)
	if !ok {
		log.Errorf("%s: %v: unknown origin %q", n.Addr, wire.ErrMalformedMessage, body.Origin)
		return
	}

	route := rib.Route{
		Prefix:     p,
		Peer:       n.Addr,
		LocalPref:  body.LocalPref,
		SelfOrigin: body.SelfOrigin,
		ASPath:     append([]int(nil), body.ASPath...),
		Origin:     origin,
	}
	r.RIB.Insert(route)
	r.UpdatesLog = append(r.UpdatesLog, route)
	r.RIB.Reaggregate()

	r.announceUpdate(n, body)
}

// handleRevoke applies every withdrawn prefix against raw, records the
// withdrawal in the log, reaggregates, then re-announces the withdrawal.
func (r *Router) handleRevoke(n *Neighbor, env wire.Envelope) {
	entries, err := wire.DecodeRevoke(env.Msg)
	if err != nil {
		log.Errorf("%s: %v", n.Addr, err)
		return
	}

	withdrawn := make([]prefix.Prefix, 0, len(entries))
	for _, e := range entries {
		p, err := prefix.Parse(e.Network, e.Netmask)
		if err != nil {
			log.Errorf("%s: %v", n.Addr, err)
			continue
		}
		withdrawn = append(withdrawn, p)
		r.RIB.Remove(n.Addr, p)
	}
	r.WithdrawalLog = append(r.WithdrawalLog, rib.WithdrawalEntry{Peer: n.Addr, Prefixes: withdrawn})
	r.RIB.Reaggregate()

	r.announceRevoke(n, entries)
}

// handleData runs the decision process over the fib, filters by policy,
// applies longest-prefix match, and forwards to the surviving egress
// neighbor. An empty candidate set at any stage elicits a no-route reply.
func (r *Router) handleData(n *Neighbor, env wire.Envelope) {
	addr, err := prefix.ParseIP(env.Dst)
	if err != nil {
		log.Errorf("%s: %v: data destination %q", n.Addr, wire.ErrMalformedMessage, env.Dst)
		return
	}

	candidates := r.RIB.Lookup(addr)
	if len(candidates) == 0 {
		r.sendNoRoute(n, env.Src)
		return
	}

	srcRel, ok := r.relation(n.Addr)
	if !ok {
		log.Errorf("%v: %s", wire.ErrUnknownNeighbor, n.Addr)
		return
	}

	survivors := decision.Narrow(candidates)

	permitted := survivors[:0:0]
	for _, c := range survivors {
		dstRel, ok := r.relation(c.Peer)
		if !ok {
			continue
		}
		if policy.Forwardable(srcRel, dstRel) {
			permitted = append(permitted, c)
		}
	}
	if len(permitted) == 0 {
		r.sendNoRoute(n, env.Src)
		return
	}

	finalists := decision.LongestPrefixMatch(permitted, addr)
	if len(finalists) == 0 {
		r.sendNoRoute(n, env.Src)
		return
	}

	egress, ok := r.Neighbors[finalists[0].Peer]
	if !ok {
		r.sendNoRoute(n, env.Src)
		return
	}

	b, err := wire.Encode(env)
	if err != nil {
		log.Errorf("encode data: %v", err)
		return
	}
	r.send(egress, b)
}

// handleDump replies to the requester with a table message projecting the
// current fib.
func (r *Router) handleDump(n *Neighbor, env wire.Envelope) {
	dump := r.RIB.Dump()
	entries := make([]wire.TableEntry, len(dump))
	for i, d := range dump {
		entries[i] = wire.TableEntry{
			Network: d.Prefix.String(),
			Netmask: d.Prefix.NetmaskString(),
			Peer:    d.Peer,
		}
	}

	reply := wire.Envelope{
		Src:  RouterSideAddress(n.Addr),
		Dst:  env.Src,
		Type: wire.TypeTable,
		Msg:  wire.EncodeTable(entries),
	}
	b, err := wire.Encode(reply)
	if err != nil {
		log.Errorf("encode table: %v", err)
		return
	}
	r.send(n, b)
}

// sendNoRoute reports an unreachable destination back to the original
// sender over the ingress link n, with Src rewritten to the router-side
// address of that link per the error handling design.
func (r *Router) sendNoRoute(n *Neighbor, origSrc string) {
	log.Debugf("%v: %s -> %s", wire.ErrUnreachableDestination, n.Addr, origSrc)

	reply := wire.Envelope{
		Src:  RouterSideAddress(n.Addr),
		Dst:  origSrc,
		Type: wire.TypeNoRoute,
		Msg:  wire.EmptyMsg(),
	}
	b, err := wire.Encode(reply)
	if err != nil {
		log.Errorf("encode no-route: %v", err)
		return
	}
	r.send(n, b)
}
