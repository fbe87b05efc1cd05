// Package tagsfile loads namespace definitions from tags.yaml files.
//
// A tags file lists the paths of one namespace and, optionally, redirects from retired
// names to their replacements:
//
//	name: game
//	tags:
//	  paths:
//	    - Movement.Idle
//	    - Movement.Run
//	    - Combat.Attack.Melee
//	redirects:
//	  Combat.Strike: Combat.Attack
//
// Ancestors do not need to be listed; "Combat.Attack.Melee" implies "Combat" and
// "Combat.Attack".
package tagsfile

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/tagtree/gid"
	"github.com/zero-day-ai/tagtree/namespace"
)

// File names searched for when a directory is given.
const (
	FileName    = "tags.yaml"
	AltFileName = "tags.yml"
)

var (
	// ErrNotFound indicates that no tags file exists at the given location.
	ErrNotFound = errors.New("tags file not found")

	// ErrInvalidConfig indicates a tags file that parsed but failed validation. The
	// wrapped error lists every problem found.
	ErrInvalidConfig = errors.New("invalid tags file")
)

// Config represents a tags.yaml file.
type Config struct {
	// Name identifies the namespace, e.g. "game".
	Name string `json:"name" yaml:"name"`

	Tags TagsConfig `json:"tags" yaml:"tags"`

	// Redirects maps a retired path to the path that replaced it.
	Redirects map[string]string `json:"redirects,omitempty" yaml:"redirects,omitempty"`
}

// TagsConfig holds the tag paths of a namespace.
type TagsConfig struct {
	Paths []string `json:"paths" yaml:"paths"`
}

// Parse decodes and validates a tags file.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tags file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads a tags file from the operating system's filesystem. If path is a directory
// it looks for tags.yaml, then tags.yml, in that directory.
func Load(path string) (*Config, error) {
	return LoadFS(afero.NewOsFs(), path)
}

// LoadFS is Load on an arbitrary filesystem.
func LoadFS(fs afero.Fs, path string) (*Config, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat tags file: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath = ""
		for _, name := range []string{FileName, AltFileName} {
			candidate := filepath.Join(path, name)
			_, err := fs.Stat(candidate)
			if err == nil {
				configPath = candidate
				break
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to stat tags file: %w", err)
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("%w: no %s or %s in %s", ErrNotFound, FileName, AltFileName, path)
		}
	}

	data, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// LoadFromDir searches for a tags file starting from dir and walking up to parent
// directories until one is found or the root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	return LoadFromDirFS(afero.NewOsFs(), absDir)
}

// LoadFromDirFS is LoadFromDir on an arbitrary filesystem. dir should be absolute.
// A file that exists but fails to parse or validate stops the search.
func LoadFromDirFS(fs afero.Fs, dir string) (*Config, error) {
	current := filepath.Clean(dir)
	for {
		cfg, err := LoadFS(fs, current)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, fmt.Errorf("%w: in %s or parent directories", ErrNotFound, dir)
		}
		current = parent
	}
}

// AllPaths returns the listed paths plus every implied ancestor, sorted.
func (c *Config) AllPaths() []string {
	seen := make(map[string]struct{})
	for _, p := range c.Tags.Paths {
		for cur, ok := p, true; ok; cur, ok = gid.ParentPath(cur) {
			seen[cur] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Defs returns one definition per path in AllPaths.
func (c *Config) Defs() []namespace.Def {
	paths := c.AllPaths()
	defs := make([]namespace.Def, len(paths))
	for i, p := range paths {
		defs[i] = namespace.NewDef(p)
	}
	return defs
}

// Build creates a registry from the file's paths and applies its redirects.
func (c *Config) Build(opts ...namespace.Option) (*namespace.Registry, error) {
	reg, err := namespace.Build(c.Defs(), opts...)
	if err != nil {
		return nil, fmt.Errorf("build namespace %q: %w", c.Name, err)
	}

	for _, from := range slices.Sorted(maps.Keys(c.Redirects)) {
		if err := reg.AddRedirect(from, c.Redirects[from]); err != nil {
			return nil, fmt.Errorf("build namespace %q: %w", c.Name, err)
		}
	}
	return reg, nil
}
