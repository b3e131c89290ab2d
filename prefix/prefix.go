// Package prefix implements IPv4 prefix algebra: parsing, CIDR containment,
// longest-common-prefix measurement and the adjacency test used by the
// aggregator to decide whether two prefixes may be coalesced.
package prefix

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix is an IPv4 network expressed as two unsigned 32-bit integers in
// host byte order. Network bits outside the mask are always zero.
type Prefix struct {
	Network uint32
	Netmask uint32
}

// ErrMalformedPrefix is returned for out-of-range octets or a non-contiguous
// netmask (one with a 0 bit followed by a 1 bit).
var ErrMalformedPrefix = fmt.Errorf("malformed prefix")

// ParseIP parses a dotted-quad IPv4 address into a big-endian uint32.
func ParseIP(s string) (uint32, error) {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return 0, fmt.Errorf("%w: %q is not a dotted quad", ErrMalformedPrefix, s)
	}
	var addr uint32
	for _, o := range octets {
		v, err := strconv.Atoi(o)
		if err != nil || v < 0 || v > 255 {
			return 0, fmt.Errorf("%w: bad octet %q in %q", ErrMalformedPrefix, o, s)
		}
		addr = addr<<8 | uint32(v)
	}
	return addr, nil
}

// ParseMask parses a dotted-quad netmask into a uint32 and rejects masks
// whose set bits are not a contiguous prefix (e.g. 255.0.255.0).
func ParseMask(s string) (uint32, error) {
	mask, err := ParseIP(s)
	if err != nil {
		return 0, err
	}
	if _, err := MaskLen(mask); err != nil {
		return 0, fmt.Errorf("%w: %q", err, s)
	}
	return mask, nil
}

// MaskLen counts the leading one-bits of mask and rejects a non-contiguous
// mask (a zero bit followed anywhere by a one bit).
func MaskLen(mask uint32) (uint8, error) {
	var length uint8
	seenZero := false
	for i := 31; i >= 0; i-- {
		bit := (mask >> uint(i)) & 1
		if bit == 1 {
			if seenZero {
				return 0, ErrMalformedPrefix
			}
			length++
		} else {
			seenZero = true
		}
	}
	return length, nil
}

// New builds a Prefix from a network/netmask pair, validating both the mask
// contiguity and the network & ~netmask == 0 invariant.
func New(network, netmask uint32) (Prefix, error) {
	if _, err := MaskLen(netmask); err != nil {
		return Prefix{}, err
	}
	if network&^netmask != 0 {
		return Prefix{}, fmt.Errorf("%w: network bits set outside netmask", ErrMalformedPrefix)
	}
	return Prefix{Network: network, Netmask: netmask}, nil
}

// Parse builds a Prefix from dotted-quad network/netmask strings.
func Parse(networkStr, netmaskStr string) (Prefix, error) {
	network, err := ParseIP(networkStr)
	if err != nil {
		return Prefix{}, err
	}
	netmask, err := ParseMask(netmaskStr)
	if err != nil {
		return Prefix{}, err
	}
	return New(network, netmask)
}

// Len reports the prefix length (count of leading one-bits in the netmask).
func (p Prefix) Len() uint8 {
	l, _ := MaskLen(p.Netmask)
	return l
}

// Contains reports whether addr falls inside p.
func (p Prefix) Contains(addr uint32) bool {
	return addr&p.Netmask == p.Network
}

// Equal reports whether two prefixes have the same network and netmask.
func (p Prefix) Equal(o Prefix) bool {
	return p.Network == o.Network && p.Netmask == o.Netmask
}

// String renders the network in dotted-quad form, e.g. "10.0.0.0".
func (p Prefix) String() string {
	return FormatIP(p.Network)
}

// NetmaskString renders the netmask in dotted-quad form.
func (p Prefix) NetmaskString() string {
	return FormatIP(p.Netmask)
}

// FormatIP renders a uint32 address as a dotted-quad string.
func FormatIP(addr uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		(addr>>24)&0xFF, (addr>>16)&0xFF, (addr>>8)&0xFF, addr&0xFF)
}

// CommonPrefixLen returns the number of leading bits in which a and b agree.
func CommonPrefixLen(a, b uint32) uint8 {
	x := a ^ b
	if x == 0 {
		return 32
	}
	var n uint8
	for i := 31; i >= 0; i-- {
		if (x>>uint(i))&1 != 0 {
			break
		}
		n++
	}
	return n
}

// Mergeable reports whether p1 and p2 may be coalesced into a single
// prefix one bit shorter: identical netmasks, non-zero length, and
// networks that differ only in the bit immediately above the mask
// boundary.
func Mergeable(p1, p2 Prefix) bool {
	if p1.Netmask != p2.Netmask {
		return false
	}
	length := p1.Len()
	if length == 0 {
		return false
	}
	bit := uint32(1) << uint(32-length)
	if p1.Network&^bit != p2.Network&^bit {
		return false
	}
	return p1.Network != p2.Network
}

// Merge returns the prefix one bit shorter than p1/p2's shared length,
// covering both. Callers must have checked Mergeable first.
func Merge(p1, p2 Prefix) Prefix {
	newMask := p1.Netmask << 1
	lower := p1.Network
	if p2.Network < lower {
		lower = p2.Network
	}
	return Prefix{Network: lower & newMask, Netmask: newMask}
}
