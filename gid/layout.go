package gid

import (
	"fmt"

	"lukechampine.com/uint128"
)

const (
	// MaxDepth is the number of levels a GID can encode (depths 0 through 7).
	MaxDepth = 8

	// DepthBits is the width of the depth field at the top of the GID.
	DepthBits = 3

	// DepthShift is the bit position of the lowest depth bit.
	DepthShift = 128 - DepthBits

	// PayloadBits is the number of bits shared by the level fields.
	PayloadBits = DepthShift
)

// levelWidths is the per-level field width, widest at the root.
var levelWidths = [MaxDepth]uint{
	21, // level 0: ~2M top-level categories
	18, // level 1
	16, // level 2
	16, // level 3
	14, // level 4
	14, // level 5
	13, // level 6
	13, // level 7
}

var (
	depthMask   = uint128.From64(1<<DepthBits - 1).Lsh(DepthShift)
	payloadMask = depthMask.Xor(uint128.Max)

	levelOffsets [MaxDepth]uint
	fieldMasks   [MaxDepth]uint128.Uint128
	levelMasks   [MaxDepth]uint128.Uint128
)

func init() {
	var total uint
	for _, w := range levelWidths {
		total += w
	}
	if total != PayloadBits {
		panic(fmt.Sprintf("gid: level widths sum to %d bits, want %d", total, PayloadBits))
	}

	var used uint
	mask := depthMask
	for i, w := range levelWidths {
		used += w
		levelOffsets[i] = PayloadBits - used
		fieldMasks[i] = uint128.From64(uint64(1)<<w - 1).Lsh(levelOffsets[i])
		mask = mask.Or(fieldMasks[i])
		levelMasks[i] = mask
	}
}

// LevelWidth returns the bit width of the field for the given level.
func LevelWidth(level int) uint {
	return levelWidths[level]
}

// LevelOffset returns the bit position of the lowest bit of the given level's field.
// Level 7 sits at offset 0; level 0 sits directly below the depth field.
func LevelOffset(level int) uint {
	return levelOffsets[level]
}

// LevelMask returns the mask covering the depth field and the fields of levels 0..=depth.
func LevelMask(depth int) uint128.Uint128 {
	return levelMasks[depth]
}

// DepthOf extracts the depth (0-7) embedded in g.
func DepthOf(g GID) int {
	return int(g.u().Rsh(DepthShift).Lo)
}

// Encode combines a payload and a depth into a GID.
//
// It panics if depth is outside [0, MaxDepth) or if payload has bits set in the depth
// field; both indicate a programming error rather than bad input.
func Encode(payload uint128.Uint128, depth int) GID {
	if depth < 0 || depth >= MaxDepth {
		panic(fmt.Sprintf("gid: depth %d out of range [0, %d)", depth, MaxDepth))
	}
	if !payload.And(depthMask).IsZero() {
		panic("gid: payload overlaps the depth field")
	}
	return GID(payload.Or(uint128.From64(uint64(depth)).Lsh(DepthShift)))
}

// IsDescendantOf reports whether candidate lies in the subtree rooted at ancestor.
// A node is a descendant of itself.
//
// Only the payload fields of levels 0..=depth(ancestor) are compared, so the check is a
// single mask-and-compare and needs no registry.
func IsDescendantOf(candidate, ancestor GID) bool {
	d := DepthOf(ancestor)
	if d >= MaxDepth {
		return false
	}
	m := levelMasks[d].And(payloadMask)
	return candidate.u().And(m) == ancestor.u().And(m)
}

// ParentOf returns the GID of g's parent. It returns false for a root (depth 0).
func ParentOf(g GID) (GID, bool) {
	d := DepthOf(g)
	if d == 0 {
		return Zero, false
	}
	payload := g.u().And(levelMasks[d-1]).And(payloadMask)
	return Encode(payload, d-1), true
}

// IsSibling reports whether a and b share a parent. All roots are siblings of each other.
func IsSibling(a, b GID) bool {
	da, db := DepthOf(a), DepthOf(b)
	if da != db {
		return false
	}
	if da == 0 {
		return true
	}
	m := levelMasks[da-1]
	return a.u().And(m) == b.u().And(m)
}
