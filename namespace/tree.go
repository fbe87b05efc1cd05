package namespace

import (
	"fmt"
	"slices"

	"github.com/zero-day-ai/tagtree/gid"
)

// assignDepths walks the tree breadth-first from roots and returns the depth of every
// reachable path. Paths missing from the result are unreachable.
func assignDepths(roots []string, children map[string][]string) (map[string]int, error) {
	depths := make(map[string]int, len(children)+len(roots))
	queue := make([]string, 0, len(roots))
	for _, root := range roots {
		depths[root] = 0
		queue = append(queue, root)
	}

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, child := range children[parent] {
			if _, seen := depths[child]; seen {
				continue
			}
			d := depths[parent] + 1
			if d >= gid.MaxDepth {
				return nil, fmt.Errorf("%w: %q has depth %d, limit is %d levels",
					ErrDepthExceeded, child, d, gid.MaxDepth)
			}
			depths[child] = d
			queue = append(queue, child)
		}
	}
	return depths, nil
}

// walkDFS returns every path reachable from roots, parents before children, with
// siblings visited in lexicographic order. It sorts roots and the child lists in place.
func walkDFS(roots []string, children map[string][]string) []string {
	slices.Sort(roots)
	for _, list := range children {
		slices.Sort(list)
	}

	order := make([]string, 0, len(roots)+len(children))
	stack := make([]string, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, path)

		kids := children[path]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return order
}

// rebuildOrder recomputes the depth-first order from the current entries.
func (r *Registry) rebuildOrder() {
	var roots []string
	children := make(map[string][]string)
	for _, e := range r.entries {
		parent, ok := gid.ParentPath(e.Path)
		if !ok {
			roots = append(roots, e.Path)
			continue
		}
		children[parent] = append(children[parent], e.Path)
	}

	order := walkDFS(roots, children)
	r.dfs = r.dfs[:0]
	for _, path := range order {
		r.dfs = append(r.dfs, r.entries[r.byPath[path]].GID)
	}
}
