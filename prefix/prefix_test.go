package prefix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIP(t *testing.T) {
	addr, err := ParseIP("192.168.0.1")
	require.NoError(t, err)
	assert.Equal(t, uint32(192)<<24|uint32(168)<<16|uint32(0)<<8|uint32(1), addr)

	_, err = ParseIP("192.168.0")
	assert.ErrorIs(t, err, ErrMalformedPrefix)

	_, err = ParseIP("192.168.0.256")
	assert.ErrorIs(t, err, ErrMalformedPrefix)
}

func TestMaskLenRejectsNonContiguous(t *testing.T) {
	_, err := MaskLen(0xFF00FF00)
	assert.ErrorIs(t, err, ErrMalformedPrefix)

	l, err := MaskLen(0xFFFFFF00)
	require.NoError(t, err)
	assert.Equal(t, uint8(24), l)
}

func TestParseRejectsNetworkOutsideMask(t *testing.T) {
	_, err := Parse("192.168.0.1", "255.255.255.0")
	assert.ErrorIs(t, err, ErrMalformedPrefix)
}

func TestContains(t *testing.T) {
	p, err := Parse("10.0.0.0", "255.255.255.0")
	require.NoError(t, err)

	addr, _ := ParseIP("10.0.0.5")
	assert.True(t, p.Contains(addr))

	addr, _ = ParseIP("10.0.1.5")
	assert.False(t, p.Contains(addr))
}

func TestMergeableAdjacentSlash24s(t *testing.T) {
	a, _ := Parse("192.168.0.0", "255.255.255.0")
	b, _ := Parse("192.168.1.0", "255.255.255.0")
	assert.True(t, Mergeable(a, b))
	assert.True(t, Mergeable(b, a))

	merged := Merge(a, b)
	want, _ := Parse("192.168.0.0", "255.255.254.0")
	assert.True(t, merged.Equal(want))
}

func TestMergeableRejectsNonAdjacent(t *testing.T) {
	a, _ := Parse("192.168.0.0", "255.255.255.0")
	c, _ := Parse("192.168.2.0", "255.255.255.0")
	assert.False(t, Mergeable(a, c))
}

func TestMergeableRejectsDifferentLengths(t *testing.T) {
	a, _ := Parse("192.168.0.0", "255.255.255.0")
	b, _ := Parse("192.168.0.0", "255.255.254.0")
	assert.False(t, Mergeable(a, b))
}

func TestMergeableRejectsZeroLength(t *testing.T) {
	a, _ := Parse("0.0.0.0", "0.0.0.0")
	b, _ := Parse("0.0.0.0", "0.0.0.0")
	assert.False(t, Mergeable(a, b))
}

func TestCommonPrefixLen(t *testing.T) {
	a, _ := ParseIP("192.168.0.0")
	b, _ := ParseIP("192.168.1.0")
	assert.Equal(t, uint8(23), CommonPrefixLen(a, b))

	assert.Equal(t, uint8(32), CommonPrefixLen(a, a))
}
