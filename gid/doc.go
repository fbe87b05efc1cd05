// Package gid implements hierarchical 128-bit identifiers for dot-separated tag paths.
//
// A GID packs the depth of a node and one hash field per tree level into a single
// 128-bit value. Because the depth travels with the identifier, testing whether one
// node lies in the subtree of another is a single mask comparison and needs no
// registry lookup.
//
// # Layout
//
//	┌─────────┬──────────┬──────────┬──────────┬──────────┬──────────┬──────────┬──────────┬──────────┐
//	│ Depth   │ Level 0  │ Level 1  │ Level 2  │ Level 3  │ Level 4  │ Level 5  │ Level 6  │ Level 7  │
//	│ 3 bits  │ 21 bits  │ 18 bits  │ 16 bits  │ 16 bits  │ 14 bits  │ 14 bits  │ 13 bits  │ 13 bits  │
//	│[127:125]│[124:104] │ [103:86] │ [85:70]  │ [69:54]  │ [53:40]  │ [39:26]  │ [25:13]  │ [12:0]   │
//	└─────────┴──────────┴──────────┴──────────┴──────────┴──────────┴──────────┴──────────┴──────────┘
//
// Shallow levels get wider fields because top-level categories are expected to be
// numerous; deep leaves are narrower. Fields for levels below the node's depth are zero,
// and every populated field is non-zero, so an absent level never aliases a present one.
//
// # Hashing
//
// Each path segment is hashed with 64-bit FNV-1a, mixed with h ^ h>>32 ^ h>>17 so that
// narrow fields do not depend only on the low bits of the raw hash, truncated to the
// level's width, and bumped to 1 if the truncated value is zero.
//
// The result depends only on the segment bytes. The same path produces the same GID in
// every process, regardless of definition order or which siblings exist.
//
// # Usage
//
//	idle := gid.MustTag("Movement.Idle")
//	movement := gid.MustTag("Movement")
//
//	if idle.GID.IsDescendantOf(movement.GID) {
//	    // Movement.Idle is in the Movement subtree
//	}
//
//	parent, ok := idle.GID.Parent() // parent == movement.GID, ok == true
//
// Collisions between distinct paths are possible and are detected by the namespace
// registry, not here.
package gid
