package router

import (
	"net"
	"strings"

	"github.com/nicholascz666666/asrouter/policy"
)

// Neighbor is a configured session: the address that names it (doubling as
// its socket path) and the fixed commercial relationship it holds with
// this AS.
type Neighbor struct {
	Addr     string
	Relation policy.Relation

	conn net.Conn
}

// RouterSideAddress computes the router-facing address of the link to a
// neighbor: the first three octets of the neighbor's address, followed by
// ".1". It is used both as the Src of outgoing announcements and the Src
// of no-route / table replies sent back toward that neighbor.
func RouterSideAddress(neighborAddr string) string {
	octets := strings.Split(neighborAddr, ".")
	if len(octets) != 4 {
		return neighborAddr
	}
	return strings.Join(octets[:3], ".") + ".1"
}
