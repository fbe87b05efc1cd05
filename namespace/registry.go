package namespace

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/zero-day-ai/tagtree/gid"
)

// Def is one node of a namespace definition list.
type Def struct {
	// Path is the full dot-separated path, e.g. "Combat.Attack".
	Path string `json:"path" yaml:"path"`

	// Parent is the path of the parent node, or "" for a root.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// NewDef returns the Def for path with its parent derived from the path prefix.
func NewDef(path string) Def {
	parent, _ := gid.ParentPath(path)
	return Def{Path: path, Parent: parent}
}

// Entry is a registered path.
type Entry struct {
	GID  gid.GID `json:"gid" yaml:"gid"`
	Path string  `json:"path" yaml:"path"`

	// Dynamic is true for entries added by Register rather than Build.
	Dynamic bool `json:"dynamic,omitempty" yaml:"dynamic,omitempty"`
}

// Registry maps tag paths to GIDs and back.
//
// The zero value is not usable; create one with New or Build.
type Registry struct {
	entries []Entry
	byPath  map[string]int
	byGID   map[gid.GID]int
	dfs     []gid.GID

	// maxDepth is one more than the deepest entry's depth; 0 when empty.
	maxDepth int

	meta      map[gid.GID]map[string][]byte
	redirects map[string]string

	logger  *slog.Logger
	metrics *registryMetrics
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		byPath:    make(map[string]int),
		byGID:     make(map[gid.GID]int),
		meta:      make(map[gid.GID]map[string][]byte),
		redirects: make(map[string]string),
		logger:    cfg.logger,
	}

	metrics, err := newRegistryMetrics(cfg.meterProvider)
	if err != nil {
		r.logger.Warn("registry metrics disabled", "error", err)
	}
	r.metrics = metrics
	return r
}

// Build creates a registry from a flat definition list.
//
// The list may be in any order. Build rejects empty and duplicate paths, parents that are
// not defined, parents that do not match the path prefix, definitions unreachable from a
// root, paths deeper than gid.MaxDepth, and GID collisions. On error no registry is
// returned.
func Build(defs []Def, opts ...Option) (*Registry, error) {
	r := New(opts...)

	byPath := make(map[string]Def, len(defs))
	for _, d := range defs {
		if d.Path == "" {
			return nil, ErrEmptyPath
		}
		if _, dup := byPath[d.Path]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, d.Path)
		}
		byPath[d.Path] = d
	}

	var roots []string
	children := make(map[string][]string)
	for _, d := range defs {
		if d.Parent == "" {
			roots = append(roots, d.Path)
			continue
		}
		if _, ok := byPath[d.Parent]; !ok {
			return nil, fmt.Errorf("%w: %q references %q", ErrMissingParent, d.Path, d.Parent)
		}
		children[d.Parent] = append(children[d.Parent], d.Path)
	}

	depths, err := assignDepths(roots, children)
	if err != nil {
		return nil, err
	}
	if len(depths) != len(defs) {
		var unreachable []string
		for _, d := range defs {
			if _, ok := depths[d.Path]; !ok {
				unreachable = append(unreachable, d.Path)
			}
		}
		slices.Sort(unreachable)
		return nil, fmt.Errorf("%w: %s", ErrDisconnected, strings.Join(unreachable, ", "))
	}

	order := walkDFS(roots, children)
	r.entries = make([]Entry, 0, len(order))
	r.dfs = make([]gid.GID, 0, len(order))
	for _, path := range order {
		segments, err := gid.Split(path)
		if err != nil {
			return nil, err
		}
		if want, _ := gid.ParentPath(path); byPath[path].Parent != want {
			return nil, fmt.Errorf("%w: %q declares parent %q", ErrParentMismatch, path, byPath[path].Parent)
		}

		g := gid.FromSegments(segments)
		if err := r.checkCollision(path, g); err != nil {
			return nil, err
		}
		r.insert(Entry{GID: g, Path: path})
		r.dfs = append(r.dfs, g)
	}

	r.metrics.recordAdded(len(r.entries), false)
	r.logger.Debug("namespace built",
		"entries", len(r.entries),
		"roots", len(roots),
		"tree_depth", r.maxDepth)
	return r, nil
}

// Register adds path, creating any missing ancestors, and returns its GID.
//
// If path is already registered its existing GID is returned and nothing changes. The
// new entries are validated before any table is touched, so an error leaves the registry
// unchanged: no auto-created ancestor survives a failed call.
func (r *Registry) Register(path string) (gid.GID, error) {
	if i, ok := r.byPath[path]; ok {
		return r.entries[i].GID, nil
	}

	segments, err := gid.Split(path)
	if err != nil {
		return gid.Zero, err
	}

	var pending []Entry
	for n := 1; n <= len(segments); n++ {
		prefix := strings.Join(segments[:n], gid.Separator)
		if _, ok := r.byPath[prefix]; ok {
			continue
		}
		g := gid.FromSegments(segments[:n])
		if err := r.checkCollision(prefix, g); err != nil {
			return gid.Zero, err
		}
		pending = append(pending, Entry{GID: g, Path: prefix, Dynamic: true})
	}

	for _, e := range pending {
		r.insert(e)
		if e.Path != path {
			r.logger.Debug("auto-created ancestor", "path", e.Path, "gid", e.GID, "for", path)
		}
	}
	r.rebuildOrder()
	r.metrics.recordAdded(len(pending), true)

	leaf := pending[len(pending)-1]
	r.logger.Debug("registered tag", "path", path, "gid", leaf.GID, "created", len(pending))
	return leaf.GID, nil
}

func (r *Registry) checkCollision(path string, g gid.GID) error {
	i, taken := r.byGID[g]
	if !taken {
		return nil
	}
	existing := r.entries[i].Path
	r.metrics.recordCollision()
	r.logger.Warn("gid collision", "path", path, "existing", existing, "gid", g)
	return &CollisionError{Path: path, Existing: existing, GID: g}
}

func (r *Registry) insert(e Entry) {
	r.byPath[e.Path] = len(r.entries)
	r.byGID[e.GID] = len(r.entries)
	r.entries = append(r.entries, e)
	r.maxDepth = max(r.maxDepth, e.GID.Depth()+1)
}

// GIDOf returns the GID registered for path.
func (r *Registry) GIDOf(path string) (gid.GID, bool) {
	i, ok := r.byPath[path]
	if !ok {
		return gid.Zero, false
	}
	return r.entries[i].GID, true
}

// PathOf returns the path registered for g.
func (r *Registry) PathOf(g gid.GID) (string, bool) {
	i, ok := r.byGID[g]
	if !ok {
		return "", false
	}
	return r.entries[i].Path, true
}

// Contains reports whether path is registered. Redirect sources are not entries.
func (r *Registry) Contains(path string) bool {
	_, ok := r.byPath[path]
	return ok
}

// ContainsGID reports whether g belongs to a registered path.
func (r *Registry) ContainsGID(g gid.GID) bool {
	_, ok := r.byGID[g]
	return ok
}

// Entry returns the entry for path.
func (r *Registry) Entry(path string) (Entry, bool) {
	i, ok := r.byPath[path]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// IsEmpty reports whether the registry has no entries.
func (r *Registry) IsEmpty() bool {
	return len(r.entries) == 0
}

// Entries returns a copy of all entries in insertion order. For a freshly built registry
// that is depth-first order.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// DFSOrder returns all GIDs depth-first, parents before children, siblings sorted by path.
func (r *Registry) DFSOrder() []gid.GID {
	return slices.Clone(r.dfs)
}

// TreeDepth returns the number of levels in use: 0 when empty, 1 when only roots exist.
func (r *Registry) TreeDepth() int {
	return r.maxDepth
}

// IsDescendantOf reports whether candidate lies in the subtree of ancestor. It is a pure
// bit test and does not require either GID to be registered.
func (r *Registry) IsDescendantOf(candidate, ancestor gid.GID) bool {
	return gid.IsDescendantOf(candidate, ancestor)
}

// IsDescendantOfPath is IsDescendantOf for paths. ok is false if either path is unknown.
func (r *Registry) IsDescendantOfPath(candidate, ancestor string) (isDescendant, ok bool) {
	c, ok := r.GIDOf(candidate)
	if !ok {
		return false, false
	}
	a, ok := r.GIDOf(ancestor)
	if !ok {
		return false, false
	}
	return gid.IsDescendantOf(c, a), true
}

// DescendantsOf returns every registered GID in the subtree of ancestor, ancestor
// included, in depth-first order.
//
// This scans every entry and is O(n). To test a single candidate use IsDescendantOf.
func (r *Registry) DescendantsOf(ancestor gid.GID) []gid.GID {
	var out []gid.GID
	for _, g := range r.dfs {
		if gid.IsDescendantOf(g, ancestor) {
			out = append(out, g)
		}
	}
	return out
}
