// Package tagquery evaluates boolean CEL expressions against a tag set.
//
// An expression sees one variable, tags, holding the paths of the set's members, and two
// functions that answer subtree questions with the GID prefix test:
//
//	under(path, ancestor)      true if path is ancestor or lies below it
//	any_under(list, ancestor)  true if any path in list is under ancestor
//
// Example:
//
//	q, err := tagquery.Compile(`any_under(tags, "Combat") && !("Status.Stunned" in tags)`, reg)
//	ok, err := q.Match(ctx, entityTags)
//
// Paths are resolved through the Resolver, so redirected names work in expressions.
// Unknown paths are never under anything.
package tagquery

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/tagtree/gid"
	"github.com/zero-day-ai/tagtree/tagset"
)

// ErrNotBoolean indicates an expression whose result type is not bool.
var ErrNotBoolean = errors.New("expression does not evaluate to bool")

// Resolver maps between paths and GIDs. *namespace.Registry and *namespace.Shared
// implement it.
type Resolver interface {
	PathOf(g gid.GID) (string, bool)
	Resolve(path string) (gid.GID, bool)
}

// Option configures a Query.
type Option func(*config)

type config struct {
	tracer trace.Tracer
}

// WithTracer records a span for every Match call.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// Query is a compiled expression. It is safe for concurrent Match calls when its
// Resolver is.
type Query struct {
	expr     string
	program  cel.Program
	resolver Resolver
	tracer   trace.Tracer
}

// Compile parses and type-checks expr.
func Compile(expr string, resolver Resolver, opts ...Option) (*Query, error) {
	cfg := config{tracer: noop.NewTracerProvider().Tracer("tagquery")}
	for _, opt := range opts {
		opt(&cfg)
	}

	env, err := newEnv(resolver)
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotBoolean, expr, ast.OutputType())
	}

	prg, err := env.Program(ast, cel.InterruptCheckFrequency(100))
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", expr, err)
	}

	return &Query{
		expr:     expr,
		program:  prg,
		resolver: resolver,
		tracer:   cfg.tracer,
	}, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expr
}

// Match evaluates the query against the members of set. Members the resolver does not
// know are left out of tags. A nil set matches as an empty one.
func (q *Query) Match(ctx context.Context, set *tagset.Set) (bool, error) {
	if set == nil {
		set = &tagset.Set{}
	}
	ctx, span := q.tracer.Start(ctx, "tagquery.Match",
		trace.WithAttributes(
			attribute.String("tagquery.expr", q.expr),
			attribute.Int("tagquery.tags", set.Len()),
		))
	defer span.End()

	out, _, err := q.program.ContextEval(ctx, map[string]any{
		"tags": set.Paths(q.resolver),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return false, fmt.Errorf("evaluate %q: %w", q.expr, err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		err := fmt.Errorf("%w: got %T", ErrNotBoolean, out.Value())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	span.SetAttributes(attribute.Bool("tagquery.matched", matched))
	span.SetStatus(codes.Ok, "")
	return matched, nil
}

func newEnv(resolver Resolver) (*cel.Env, error) {
	under := func(path, ancestor string) bool {
		a, ok := resolver.Resolve(ancestor)
		if !ok {
			return false
		}
		c, ok := resolver.Resolve(path)
		if !ok {
			return false
		}
		return gid.IsDescendantOf(c, a)
	}

	return cel.NewEnv(
		cel.Variable("tags", cel.ListType(cel.StringType)),
		cel.Function("under",
			cel.Overload("under_string_string",
				[]*cel.Type{cel.StringType, cel.StringType},
				cel.BoolType,
				cel.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
					path, ok1 := lhs.(types.String)
					ancestor, ok2 := rhs.(types.String)
					if !ok1 || !ok2 {
						return types.NewErr("under: expected string arguments")
					}
					return types.Bool(under(string(path), string(ancestor)))
				}),
			),
		),
		cel.Function("any_under",
			cel.Overload("any_under_list_string",
				[]*cel.Type{cel.ListType(cel.StringType), cel.StringType},
				cel.BoolType,
				cel.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
					list, ok1 := lhs.(traits.Lister)
					ancestor, ok2 := rhs.(types.String)
					if !ok1 || !ok2 {
						return types.NewErr("any_under: expected list and string arguments")
					}
					it := list.Iterator()
					for it.HasNext() == types.True {
						path, ok := it.Next().(types.String)
						if ok && under(string(path), string(ancestor)) {
							return types.True
						}
					}
					return types.False
				}),
			),
		),
	)
}
