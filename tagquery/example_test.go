package tagquery_test

import (
	"context"
	"fmt"

	"github.com/zero-day-ai/tagtree/gid"
	"github.com/zero-day-ai/tagtree/namespace"
	"github.com/zero-day-ai/tagtree/tagquery"
	"github.com/zero-day-ai/tagtree/tagset"
)

func ExampleQuery_Match() {
	reg := namespace.New()
	for _, p := range []string{"Combat.Attack.Melee", "Status.Stunned", "Movement.Run"} {
		if _, err := reg.Register(p); err != nil {
			panic(err)
		}
	}

	canFight, err := tagquery.Compile(`any_under(tags, "Combat") && !("Status.Stunned" in tags)`, reg)
	if err != nil {
		panic(err)
	}

	goblin := tagset.New(gid.MustFromPath("Combat.Attack.Melee"), gid.MustFromPath("Movement.Run"))
	ok, _ := canFight.Match(context.Background(), goblin)
	fmt.Println(ok)

	goblin.Insert(gid.MustFromPath("Status.Stunned"))
	ok, _ = canFight.Match(context.Background(), goblin)
	fmt.Println(ok)
	// Output:
	// true
	// false
}
