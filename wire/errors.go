package wire

import "errors"

// Error kinds per the router's error handling design. UnknownNeighbor and
// MalformedMessage are logged and the offending message discarded;
// UnreachableDestination is reported back on the wire as a "no route"
// reply; TransportFailure is fatal and terminates the process.
var (
	ErrUnknownNeighbor        = errors.New("unknown neighbor")
	ErrMalformedMessage       = errors.New("malformed message")
	ErrUnreachableDestination = errors.New("unreachable destination")
	ErrTransportFailure       = errors.New("transport failure")
)
