package gid

import (
	"fmt"
	"hash/fnv"
	"strings"

	"lukechampine.com/uint128"
)

// Separator joins path segments.
const Separator = "."

// FNV1a64 returns the 64-bit FNV-1a hash of b.
func FNV1a64(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}

// SegmentHash hashes one path segment into a non-zero value of at most width bits.
//
// The raw FNV-1a value is folded with h ^ h>>32 ^ h>>17 before truncation because level
// fields take the low bits directly. Zero is reserved for "no node at this level" and is
// replaced by 1.
//
// It panics if width is 0 or greater than 64.
func SegmentHash(segment []byte, width uint) uint64 {
	if width == 0 || width > 64 {
		panic(fmt.Sprintf("gid: segment width %d out of range [1, 64]", width))
	}
	h := FNV1a64(segment)
	mixed := h ^ (h >> 32) ^ (h >> 17)
	v := mixed & (uint64(1)<<width - 1)
	if v == 0 {
		return 1
	}
	return v
}

// Hierarchical computes the GID for a path given as raw segments, root first.
//
// It panics if segments is empty or longer than MaxDepth. Use FromPath for input that
// has not been validated.
func Hierarchical(segments ...[]byte) GID {
	if len(segments) == 0 {
		panic("gid: no segments")
	}
	if len(segments) > MaxDepth {
		panic(fmt.Sprintf("gid: %d segments exceeds MaxDepth (%d)", len(segments), MaxDepth))
	}

	payload := uint128.Zero
	for i, seg := range segments {
		field := uint128.From64(SegmentHash(seg, levelWidths[i])).Lsh(levelOffsets[i])
		payload = payload.Or(field)
	}
	return Encode(payload, len(segments)-1)
}

// Split breaks a dot-separated path into its segments and checks the depth limit.
func Split(path string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	segments := strings.Split(path, Separator)
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w in %q", ErrEmptySegment, path)
		}
	}
	if len(segments) > MaxDepth {
		return nil, fmt.Errorf("%w: %q has depth %d, limit is %d levels",
			ErrDepthExceeded, path, len(segments)-1, MaxDepth)
	}
	return segments, nil
}

// FromSegments computes the GID for already-split segments. It panics under the same
// conditions as Hierarchical.
func FromSegments(segments []string) GID {
	raw := make([][]byte, len(segments))
	for i, seg := range segments {
		raw[i] = []byte(seg)
	}
	return Hierarchical(raw...)
}

// FromPath computes the GID for a dot-separated path.
func FromPath(path string) (GID, error) {
	segments, err := Split(path)
	if err != nil {
		return Zero, err
	}
	return FromSegments(segments), nil
}

// MustFromPath is like FromPath but panics on error. It is intended for package-level
// variables computed once at startup.
func MustFromPath(path string) GID {
	g, err := FromPath(path)
	if err != nil {
		panic(err)
	}
	return g
}

// ParentPath returns the path with its last segment removed, or false for a root path.
func ParentPath(path string) (string, bool) {
	i := strings.LastIndex(path, Separator)
	if i < 0 {
		return "", false
	}
	return path[:i], true
}
