package router

import (
	log "github.com/sirupsen/logrus"

	"github.com/nicholascz666666/asrouter/policy"
	"github.com/nicholascz666666/asrouter/wire"
)

// announceUpdate re-announces an update to every other neighbor the
// export policy of §4.5 permits: all other neighbors if it arrived from a
// customer, or only customer neighbors if it arrived from a peer or
// provider. The own ASN is prepended to the outgoing ASPath copy; the
// stored raw entry's ASPath is left untouched.
func (r *Router) announceUpdate(source *Neighbor, body wire.UpdateBody) {
	srcRel, ok := r.relation(source.Addr)
	if !ok {
		log.Errorf("%v: %s", wire.ErrUnknownNeighbor, source.Addr)
		return
	}

	outBody := body
	outBody.ASPath = append([]int{r.ASN}, body.ASPath...)
	msg := wire.EncodeUpdate(outBody)

	r.forEachExportTarget(source.Addr, srcRel, func(target *Neighbor) {
		r.announceTo(target, wire.TypeUpdate, msg)
	})
}

// announceRevoke re-announces a withdrawal under the same export policy
// as an update. The withdrawn prefix list is forwarded exactly as
// received.
func (r *Router) announceRevoke(source *Neighbor, entries []wire.RevokeEntry) {
	srcRel, ok := r.relation(source.Addr)
	if !ok {
		log.Errorf("%v: %s", wire.ErrUnknownNeighbor, source.Addr)
		return
	}

	msg := wire.EncodeRevoke(entries)

	r.forEachExportTarget(source.Addr, srcRel, func(target *Neighbor) {
		r.announceTo(target, wire.TypeRevoke, msg)
	})
}

// forEachExportTarget calls f for every neighbor other than the
// announcing source that the export rule permits to receive it.
func (r *Router) forEachExportTarget(sourceAddr string, srcRel policy.Relation, f func(*Neighbor)) {
	for addr, n := range r.Neighbors {
		if addr == sourceAddr {
			continue
		}
		if !policy.Exportable(srcRel, n.Relation) {
			continue
		}
		f(n)
	}
}

// announceTo writes a single re-announcement to target, rewriting Src to
// the router-side address of the outgoing link and Dst to the target's
// own address.
func (r *Router) announceTo(target *Neighbor, msgType wire.Type, msg []byte) {
	env := wire.Envelope{
		Src:  RouterSideAddress(target.Addr),
		Dst:  target.Addr,
		Type: msgType,
		Msg:  msg,
	}
	b, err := wire.Encode(env)
	if err != nil {
		log.Errorf("encode %s: %v", msgType, err)
		return
	}
	r.send(target, b)
}
