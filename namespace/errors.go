package namespace

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/tagtree/gid"
)

// Sentinel errors for registry construction and mutation.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrEmptyPath is returned when a definition or registration names an empty path.
	// It is the same value as gid.ErrEmptyPath.
	ErrEmptyPath = gid.ErrEmptyPath

	// ErrEmptySegment is returned for paths such as "A..B". It is the same value as
	// gid.ErrEmptySegment.
	ErrEmptySegment = gid.ErrEmptySegment

	// ErrDepthExceeded is returned when a path is deeper than gid.MaxDepth levels, either
	// by segment count or by the depth assigned while walking the definition tree.
	// It is the same value as gid.ErrDepthExceeded.
	ErrDepthExceeded = gid.ErrDepthExceeded

	// ErrDuplicatePath indicates that the same path appears twice in a definition list.
	//
	// Example:
	//	_, err := namespace.Build([]namespace.Def{{Path: "A"}, {Path: "A"}})
	//	if errors.Is(err, namespace.ErrDuplicatePath) {
	//	    // fix the generator input
	//	}
	ErrDuplicatePath = errors.New("duplicate path")

	// ErrMissingParent indicates a definition whose parent is not itself defined.
	ErrMissingParent = errors.New("missing parent")

	// ErrParentMismatch indicates a definition whose declared parent is not the path with
	// its last segment removed. "A.B" must declare parent "A"; a root must declare none.
	ErrParentMismatch = errors.New("parent does not match path prefix")

	// ErrDisconnected indicates definitions that cannot be reached from any root, which
	// happens when parents form a cycle.
	ErrDisconnected = errors.New("definitions not reachable from a root")

	// ErrCollision indicates that two distinct paths hash to the same GID. The concrete
	// error is a *CollisionError naming both paths.
	//
	// Example:
	//	_, err := reg.Register("Combat.Dodge")
	//	var ce *namespace.CollisionError
	//	if errors.As(err, &ce) {
	//	    log.Printf("rename %s or %s", ce.Path, ce.Existing)
	//	}
	ErrCollision = errors.New("gid collision")

	// ErrUnknownPath indicates an operation that requires a registered path was given one
	// the registry does not contain.
	ErrUnknownPath = errors.New("unknown path")

	// ErrRedirectConflict indicates a redirect whose source is already a live entry or is
	// already redirected elsewhere.
	ErrRedirectConflict = errors.New("redirect conflict")

	// ErrMetaLayout indicates a metadata value whose type has no fixed-size binary layout
	// (for example int, string, or a struct containing a slice).
	ErrMetaLayout = errors.New("metadata type has no fixed layout")
)

// CollisionError reports two distinct paths that produced the same GID.
type CollisionError struct {
	// Path is the path being added.
	Path string
	// Existing is the path that already owns GID.
	Existing string
	// GID is the shared identifier.
	GID gid.GID
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %q and %q both hash to %s", ErrCollision, e.Existing, e.Path, e.GID)
}

// Unwrap returns ErrCollision so errors.Is works on collision failures.
func (e *CollisionError) Unwrap() error {
	return ErrCollision
}
