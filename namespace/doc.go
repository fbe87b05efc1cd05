// Package namespace maintains the set of known tag paths and their GIDs.
//
// A Registry is built once from a flat list of definitions, typically emitted by a code
// generator, and may then grow at runtime through Register. GIDs are never allocated:
// each one is the pure hash of its path (see package gid), so a path keeps its GID across
// builds, definition orders and sibling additions. The registry exists to detect
// collisions, map GIDs back to paths, enumerate subtrees and attach metadata.
//
// # Building
//
//	reg, err := namespace.Build([]namespace.Def{
//	    {Path: "Movement"},
//	    {Path: "Movement.Idle", Parent: "Movement"},
//	    {Path: "Combat"},
//	    {Path: "Combat.Attack", Parent: "Combat"},
//	})
//
// Entries come out in depth-first order with siblings sorted by path, regardless of the
// order of the input list.
//
// # Dynamic registration
//
// Register adds a path and any missing ancestors. It is idempotent, and a failed call
// leaves the registry exactly as it was.
//
// # Ancestry
//
// IsDescendantOf is a single mask-and-compare on two GIDs and never touches the tables.
// DescendantsOf scans every entry and is O(n).
//
// # Metadata
//
// Arbitrary byte values can be attached to any GID under string keys. SetMeta and
// GetMeta store fixed-size values in little-endian layout and refuse to decode a value
// whose stored length does not match the requested type.
//
// # Concurrency
//
// Registry is not safe for concurrent use. Wrap it in Shared when one writer and many
// readers need access from different goroutines.
package namespace
