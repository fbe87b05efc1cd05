// Package tagset holds the tags attached to one object.
//
// A Set is a plain set of GIDs. Exact membership is O(1); subtree questions such as
// "does this object carry any Combat tag" test every member with the GID prefix mask
// and need no registry.
package tagset

import (
	"iter"
	"maps"
	"slices"

	"github.com/zero-day-ai/tagtree/gid"
)

// PathResolver maps a GID back to its path. *namespace.Registry and *namespace.Shared
// implement it.
type PathResolver interface {
	PathOf(g gid.GID) (string, bool)
}

// Set is a set of GIDs. The zero value is an empty set ready to use.
// A Set is not safe for concurrent mutation.
type Set struct {
	tags map[gid.GID]struct{}
}

// New returns a set holding gids.
func New(gids ...gid.GID) *Set {
	s := &Set{tags: make(map[gid.GID]struct{}, len(gids))}
	for _, g := range gids {
		s.tags[g] = struct{}{}
	}
	return s
}

// With adds gids and returns s for chaining.
func (s *Set) With(gids ...gid.GID) *Set {
	for _, g := range gids {
		s.Insert(g)
	}
	return s
}

// Insert adds g and reports whether it was not already present.
func (s *Set) Insert(g gid.GID) bool {
	if s.tags == nil {
		s.tags = make(map[gid.GID]struct{})
	}
	if _, ok := s.tags[g]; ok {
		return false
	}
	s.tags[g] = struct{}{}
	return true
}

// Remove deletes g and reports whether it was present.
func (s *Set) Remove(g gid.GID) bool {
	if _, ok := s.tags[g]; !ok {
		return false
	}
	delete(s.tags, g)
	return true
}

// Has reports whether g itself is in the set. Descendants of g do not count; use
// HasDescendantOf for that.
func (s *Set) Has(g gid.GID) bool {
	_, ok := s.tags[g]
	return ok
}

// HasAny reports whether at least one of gids is in the set.
func (s *Set) HasAny(gids ...gid.GID) bool {
	for _, g := range gids {
		if s.Has(g) {
			return true
		}
	}
	return false
}

// HasAll reports whether every one of gids is in the set. It is true for no gids.
func (s *Set) HasAll(gids ...gid.GID) bool {
	for _, g := range gids {
		if !s.Has(g) {
			return false
		}
	}
	return true
}

// HasDescendantOf reports whether any member lies in the subtree of ancestor, ancestor
// included. It is O(n) in the size of the set.
func (s *Set) HasDescendantOf(ancestor gid.GID) bool {
	for g := range s.tags {
		if gid.IsDescendantOf(g, ancestor) {
			return true
		}
	}
	return false
}

// DescendantsOf returns the members in the subtree of ancestor, sorted.
func (s *Set) DescendantsOf(ancestor gid.GID) []gid.GID {
	var out []gid.GID
	for g := range s.tags {
		if gid.IsDescendantOf(g, ancestor) {
			out = append(out, g)
		}
	}
	slices.SortFunc(out, gid.Compare)
	return out
}

// All yields the members in ascending GID order.
func (s *Set) All() iter.Seq[gid.GID] {
	return slices.Values(slices.SortedFunc(maps.Keys(s.tags), gid.Compare))
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.tags)
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	return len(s.tags) == 0
}

// Clear removes every member.
func (s *Set) Clear() {
	clear(s.tags)
}

// Extend adds every GID yielded by seq.
func (s *Set) Extend(seq iter.Seq[gid.GID]) {
	for g := range seq {
		s.Insert(g)
	}
}

// Paths returns the sorted paths of the members known to r. Unknown GIDs are skipped.
func (s *Set) Paths(r PathResolver) []string {
	paths := make([]string, 0, len(s.tags))
	for g := range s.tags {
		if p, ok := r.PathOf(g); ok {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)
	return paths
}
