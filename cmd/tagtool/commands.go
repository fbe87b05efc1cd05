package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/tagtree/gid"
	"github.com/zero-day-ai/tagtree/namespace"
	"github.com/zero-day-ai/tagtree/tagquery"
	"github.com/zero-day-ai/tagtree/tagset"
	"github.com/zero-day-ai/tagtree/tagsfile"
)

// FileOption selects the tags file.
type FileOption struct {
	File string `short:"f" long:"file" description:"tags file or directory containing one"`
}

func (o FileOption) load(e *env) (*tagsfile.Config, *namespace.Registry, error) {
	var (
		cfg *tagsfile.Config
		err error
	)
	if o.File == "" {
		cfg, err = tagsfile.LoadFromDir(".")
	} else {
		cfg, err = tagsfile.Load(o.File)
	}
	if err != nil {
		return nil, nil, err
	}

	reg, err := cfg.Build(namespace.WithLogger(e.logger()))
	if err != nil {
		return nil, nil, err
	}
	return cfg, reg, nil
}

// ListCommand prints the namespace in depth-first order.
type ListCommand struct {
	FileOption
	YAML bool `long:"yaml" description:"print YAML instead of a table"`

	env *env
}

type listing struct {
	Name      string            `yaml:"name"`
	Entries   []namespace.Entry `yaml:"entries"`
	Redirects map[string]string `yaml:"redirects,omitempty"`
}

// Execute implements flags.Commander.
func (c *ListCommand) Execute(args []string) error {
	cfg, reg, err := c.load(c.env)
	if err != nil {
		return err
	}

	entries := make([]namespace.Entry, 0, reg.Len())
	for _, g := range reg.DFSOrder() {
		path, _ := reg.PathOf(g)
		e, _ := reg.Entry(path)
		entries = append(entries, e)
	}

	if c.YAML {
		enc := yaml.NewEncoder(c.env.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(listing{Name: cfg.Name, Entries: entries, Redirects: reg.Redirects()}); err != nil {
			return fmt.Errorf("encode listing: %w", err)
		}
		return enc.Close()
	}

	w := tabwriter.NewWriter(c.env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GID\tDEPTH\tPATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.GID, e.GID.Depth(), e.Path)
	}
	return w.Flush()
}

// CheckCommand validates a tags file.
type CheckCommand struct {
	FileOption

	env *env
}

// Execute implements flags.Commander.
func (c *CheckCommand) Execute(args []string) error {
	cfg, reg, err := c.load(c.env)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.env.stdout, "ok: namespace %q, %d tags, %d levels, %d redirects\n",
		cfg.Name, reg.Len(), reg.TreeDepth(), len(reg.Redirects()))
	return nil
}

// GIDCommand computes GIDs without a tags file.
type GIDCommand struct {
	Args struct {
		Paths []string `positional-arg-name:"PATH" required:"1"`
	} `positional-args:"yes"`

	env *env
}

// Execute implements flags.Commander.
func (c *GIDCommand) Execute(args []string) error {
	for _, p := range c.Args.Paths {
		g, err := gid.FromPath(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.stdout, "%s %s\n", g, p)
	}
	return nil
}

// QueryCommand evaluates an expression against tags given on the command line.
type QueryCommand struct {
	FileOption
	Expr string `short:"e" long:"expr" description:"CEL expression" required:"true" unquote:"false"`

	Args struct {
		Tags []string `positional-arg-name:"TAG"`
	} `positional-args:"yes"`

	env *env
}

// Execute implements flags.Commander.
func (c *QueryCommand) Execute(args []string) error {
	_, reg, err := c.load(c.env)
	if err != nil {
		return err
	}

	set := tagset.New()
	for _, p := range c.Args.Tags {
		g, ok := reg.Resolve(p)
		if !ok {
			return fmt.Errorf("%w: %q", namespace.ErrUnknownPath, p)
		}
		set.Insert(g)
	}

	q, err := tagquery.Compile(c.Expr, reg)
	if err != nil {
		return err
	}
	matched, err := q.Match(context.Background(), set)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.env.stdout, matched)
	return nil
}
