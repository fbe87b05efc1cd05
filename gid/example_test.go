package gid_test

import (
	"fmt"

	"github.com/zero-day-ai/tagtree/gid"
)

func Example() {
	movement := gid.MustTag("Movement")
	idle := gid.MustTag("Movement.Idle")
	attack := gid.MustTag("Combat.Attack")

	fmt.Println(idle.GID.Depth())
	fmt.Println(idle.GID.IsDescendantOf(movement.GID))
	fmt.Println(attack.GID.IsDescendantOf(movement.GID))

	parent, _ := idle.GID.Parent()
	fmt.Println(parent == movement.GID)
	// Output:
	// 1
	// true
	// false
	// true
}

func ExampleFromPath() {
	_, err := gid.FromPath("A.B.C.D.E.F.G.H.I")
	fmt.Println(err)
	// Output:
	// path depth exceeds maximum: "A.B.C.D.E.F.G.H.I" has depth 8, limit is 8 levels
}
