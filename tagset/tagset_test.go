package tagset

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/tagtree/gid"
	"github.com/zero-day-ai/tagtree/namespace"
)

var (
	combat      = gid.MustFromPath("Combat")
	attack      = gid.MustFromPath("Combat.Attack")
	melee       = gid.MustFromPath("Combat.Attack.Melee")
	movement    = gid.MustFromPath("Movement")
	movementRun = gid.MustFromPath("Movement.Run")
)

func TestZeroValue(t *testing.T) {
	var s Set
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Has(combat))
	assert.False(t, s.Remove(combat))
	assert.True(t, s.Insert(combat))
	assert.Equal(t, 1, s.Len())
}

func TestInsertRemove(t *testing.T) {
	s := New()
	assert.True(t, s.Insert(attack))
	assert.False(t, s.Insert(attack), "second insert is a no-op")
	assert.True(t, s.Has(attack))

	assert.True(t, s.Remove(attack))
	assert.False(t, s.Remove(attack))
	assert.False(t, s.Has(attack))
	assert.True(t, s.IsEmpty())
}

func TestHasIsExact(t *testing.T) {
	s := New(melee)
	assert.True(t, s.Has(melee))
	assert.False(t, s.Has(attack), "ancestor is not a member")
	assert.True(t, s.HasDescendantOf(attack))
	assert.True(t, s.HasDescendantOf(combat))
	assert.True(t, s.HasDescendantOf(melee), "a member is in its own subtree")
	assert.False(t, s.HasDescendantOf(movement))
}

func TestHasAnyHasAll(t *testing.T) {
	s := New(combat, movementRun)

	assert.True(t, s.HasAny(attack, combat))
	assert.False(t, s.HasAny(attack, melee))
	assert.False(t, s.HasAny())

	assert.True(t, s.HasAll(combat, movementRun))
	assert.False(t, s.HasAll(combat, movement))
	assert.True(t, s.HasAll())
}

func TestDescendantsOf(t *testing.T) {
	s := New().With(melee, attack, movementRun, combat)

	got := s.DescendantsOf(combat)
	want := []gid.GID{combat, attack, melee}
	slices.SortFunc(want, gid.Compare)
	assert.Equal(t, want, got)

	assert.Empty(t, s.DescendantsOf(gid.MustFromPath("Nothing")))
}

func TestAllIsSorted(t *testing.T) {
	s := New(movementRun, melee, combat, movement)
	all := slices.Collect(s.All())
	require.Len(t, all, 4)
	assert.True(t, slices.IsSortedFunc(all, gid.Compare))
}

func TestClearAndExtend(t *testing.T) {
	s := New(combat, attack)
	s.Clear()
	assert.True(t, s.IsEmpty())

	s.Extend(slices.Values([]gid.GID{melee, melee, movement}))
	assert.Equal(t, 2, s.Len())

	other := New(attack)
	other.Extend(s.All())
	assert.Equal(t, 3, other.Len())
}

func TestPaths(t *testing.T) {
	reg, err := namespace.Build([]namespace.Def{
		namespace.NewDef("Combat"),
		namespace.NewDef("Combat.Attack"),
		namespace.NewDef("Movement"),
	})
	require.NoError(t, err)

	s := New(attack, movement, gid.MustFromPath("Unregistered"))
	assert.Equal(t, []string{"Combat.Attack", "Movement"}, s.Paths(reg))
}
