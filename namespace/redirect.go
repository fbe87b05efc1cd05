package namespace

import (
	"fmt"
	"maps"

	"github.com/zero-day-ai/tagtree/gid"
)

// AddRedirect makes the retired path from resolve to the registered path to.
//
// Redirects let data that still carries an old name find the entry that replaced it. The
// target must be registered. The source must be a valid path that is not itself an
// entry; re-adding the same redirect is a no-op, pointing an existing source somewhere
// else is ErrRedirectConflict. Redirects do not chain.
func (r *Registry) AddRedirect(from, to string) error {
	if _, err := gid.Split(from); err != nil {
		return fmt.Errorf("redirect source: %w", err)
	}
	if !r.Contains(to) {
		return fmt.Errorf("%w: redirect target %q", ErrUnknownPath, to)
	}
	if r.Contains(from) {
		return fmt.Errorf("%w: %q is a registered path", ErrRedirectConflict, from)
	}
	if cur, ok := r.redirects[from]; ok && cur != to {
		return fmt.Errorf("%w: %q already redirects to %q", ErrRedirectConflict, from, cur)
	}

	r.redirects[from] = to
	r.logger.Debug("redirect added", "from", from, "to", to)
	return nil
}

// Canonical returns the registered path for path, following a redirect if path is not
// itself an entry.
func (r *Registry) Canonical(path string) (string, bool) {
	if r.Contains(path) {
		return path, true
	}
	to, ok := r.redirects[path]
	if !ok || !r.Contains(to) {
		return "", false
	}
	return to, true
}

// Resolve is GIDOf with redirects applied.
func (r *Registry) Resolve(path string) (gid.GID, bool) {
	canonical, ok := r.Canonical(path)
	if !ok {
		return gid.Zero, false
	}
	return r.GIDOf(canonical)
}

// Redirects returns a copy of the redirect table, source to target.
func (r *Registry) Redirects() map[string]string {
	return maps.Clone(r.redirects)
}
