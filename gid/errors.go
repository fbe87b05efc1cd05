package gid

import "errors"

// Sentinel errors for path parsing and identifier decoding.
var (
	// ErrEmptyPath indicates that an empty string was given where a tag path is required.
	ErrEmptyPath = errors.New("empty path")

	// ErrEmptySegment indicates a path with an empty segment, such as "A..B", ".A" or "A.".
	ErrEmptySegment = errors.New("empty path segment")

	// ErrDepthExceeded indicates a path with more than MaxDepth segments.
	//
	// Example:
	//	_, err := gid.FromPath("A.B.C.D.E.F.G.H.I")
	//	if errors.Is(err, gid.ErrDepthExceeded) {
	//	    // flatten the hierarchy
	//	}
	ErrDepthExceeded = errors.New("path depth exceeds maximum")

	// ErrInvalidGID indicates a malformed textual GID.
	ErrInvalidGID = errors.New("invalid gid")
)
