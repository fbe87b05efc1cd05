package gid

// Tag binds a path to its GID. Generated code and hand-written tables declare tags as
// package-level variables:
//
//	var (
//	    Movement     = gid.MustTag("Movement")
//	    MovementIdle = gid.MustTag("Movement.Idle")
//	)
//
// The value is a pure function of the path, so a Tag computed at startup is
// interchangeable with one emitted as a constant by a code generator.
type Tag struct {
	Path string
	GID  GID
}

// NewTag computes the Tag for path.
func NewTag(path string) (Tag, error) {
	g, err := FromPath(path)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Path: path, GID: g}, nil
}

// MustTag is like NewTag but panics on error.
func MustTag(path string) Tag {
	t, err := NewTag(path)
	if err != nil {
		panic(err)
	}
	return t
}

// IsDescendantOf reports whether t lies in the subtree of ancestor.
func (t Tag) IsDescendantOf(ancestor Tag) bool {
	return IsDescendantOf(t.GID, ancestor.GID)
}

func (t Tag) String() string {
	return t.Path
}
