package gid

import (
	"fmt"
	"strconv"
	"strings"

	"lukechampine.com/uint128"
)

// GID is a hierarchical identifier: a 3-bit depth followed by eight per-level hash fields.
//
// GIDs are plain values. They compare with ==, work as map keys, and carry no identity
// beyond their bits.
type GID uint128.Uint128

// Zero is the all-zero GID. No hashed path ever produces it, so it serves as "no tag".
var Zero GID

// New assembles a GID from its high and low 64-bit halves.
func New(hi, lo uint64) GID {
	return GID(uint128.New(lo, hi))
}

// FromUint128 converts a raw 128-bit value into a GID without validation.
func FromUint128(v uint128.Uint128) GID {
	return GID(v)
}

// Uint128 returns the raw 128-bit value.
func (g GID) Uint128() uint128.Uint128 {
	return g.u()
}

func (g GID) u() uint128.Uint128 {
	return uint128.Uint128(g)
}

// IsZero reports whether g is the zero GID.
func (g GID) IsZero() bool {
	return g == Zero
}

// Depth returns the depth embedded in g.
func (g GID) Depth() int {
	return DepthOf(g)
}

// Parent returns the parent GID, or false if g is a root.
func (g GID) Parent() (GID, bool) {
	return ParentOf(g)
}

// IsDescendantOf reports whether g is ancestor or lies below it.
func (g GID) IsDescendantOf(ancestor GID) bool {
	return IsDescendantOf(g, ancestor)
}

// IsSiblingOf reports whether g and other share a parent.
func (g GID) IsSiblingOf(other GID) bool {
	return IsSibling(g, other)
}

// Payload returns g with the depth field cleared.
func (g GID) Payload() uint128.Uint128 {
	return g.u().And(payloadMask)
}

// Level returns the raw hash field for the given level. Levels deeper than g's depth are 0.
func (g GID) Level(level int) uint64 {
	return g.u().And(fieldMasks[level]).Rsh(levelOffsets[level]).Lo
}

// Compare orders GIDs by their unsigned 128-bit value.
func Compare(a, b GID) int {
	return a.u().Cmp(b.u())
}

// String formats g as 0x followed by 32 lowercase hex digits.
func (g GID) String() string {
	return fmt.Sprintf("0x%016x%016x", g.Hi, g.Lo)
}

// MarshalText implements encoding.TextMarshaler.
func (g GID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Parse reads a GID in the form produced by String. The 0x prefix is optional and
// leading zeros may be omitted.
func Parse(s string) (GID, error) {
	digits := s
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}
	if digits == "" || len(digits) > 32 {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidGID, s)
	}
	digits = strings.Repeat("0", 32-len(digits)) + digits

	hi, err := strconv.ParseUint(digits[:16], 16, 64)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidGID, s)
	}
	lo, err := strconv.ParseUint(digits[16:], 16, 64)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidGID, s)
	}
	return New(hi, lo), nil
}
