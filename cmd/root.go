// Package cmd implements the router's command-line entry point: parsing
// the AS number and neighbor descriptors per the invocation grammar of
// the external interfaces design, then handing off to the router package.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholascz666666/asrouter/policy"
	"github.com/nicholascz666666/asrouter/router"
)

var rootCmd = &cobra.Command{
	Use:   "asrouter <asn> <address>-<relation> [<address>-<relation>...]",
	Short: "single-AS BGP-like route server",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runRoot,
}

// Execute parses os.Args and runs the router, returning a non-zero exit
// code on startup misconfiguration or a fatal transport failure.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func runRoot(cmd *cobra.Command, args []string) error {
	asn, err := strconv.Atoi(args[0])
	if err != nil || asn < 0 {
		return fmt.Errorf("invalid AS number %q: must be a non-negative integer", args[0])
	}

	neighbors := make(map[string]*router.Neighbor, len(args)-1)
	for _, descriptor := range args[1:] {
		n, err := parseNeighbor(descriptor)
		if err != nil {
			return err
		}
		neighbors[n.Addr] = n
	}

	r := router.New(asn, neighbors)

	log.Infof("asrouter: AS%d starting with %d neighbor(s)", asn, len(neighbors))
	if err := r.Dial(); err != nil {
		return fmt.Errorf("dialing neighbors: %w", err)
	}

	if err := r.Run(); err != nil {
		log.Fatalf("transport failure: %v", err)
	}
	return nil
}

// parseNeighbor parses a "<address>-<relation>" descriptor.
func parseNeighbor(descriptor string) (*router.Neighbor, error) {
	idx := strings.LastIndex(descriptor, "-")
	if idx < 0 {
		return nil, fmt.Errorf("invalid neighbor descriptor %q: want <address>-<relation>", descriptor)
	}
	addr, relStr := descriptor[:idx], descriptor[idx+1:]

	var rel policy.Relation
	switch relStr {
	case "cust":
		rel = policy.Customer
	case "peer":
		rel = policy.Peer
	case "prov":
		rel = policy.Provider
	default:
		return nil, fmt.Errorf("invalid relation %q in %q: want cust, peer or prov", relStr, descriptor)
	}

	return &router.Neighbor{Addr: addr, Relation: rel}, nil
}
