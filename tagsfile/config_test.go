package tagsfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/tagtree/gid"
	"github.com/zero-day-ai/tagtree/namespace"
)

const gameYAML = `name: game
tags:
  paths:
    - Movement.Idle
    - Movement.Run
    - Combat.Attack.Melee
    - Combat.Block
redirects:
  Combat.Strike: Combat.Attack
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(gameYAML))
	require.NoError(t, err)

	assert.Equal(t, "game", cfg.Name)
	assert.Len(t, cfg.Tags.Paths, 4)
	assert.Equal(t, map[string]string{"Combat.Strike": "Combat.Attack"}, cfg.Redirects)
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestAllPathsAndDefs(t *testing.T) {
	cfg, err := Parse([]byte(gameYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Combat", "Combat.Attack", "Combat.Attack.Melee", "Combat.Block",
		"Movement", "Movement.Idle", "Movement.Run",
	}, cfg.AllPaths())

	defs := cfg.Defs()
	require.Len(t, defs, 7)
	assert.Equal(t, namespace.Def{Path: "Combat"}, defs[0])
	assert.Equal(t, namespace.Def{Path: "Combat.Attack.Melee", Parent: "Combat.Attack"}, defs[2])
}

func TestBuild(t *testing.T) {
	cfg, err := Parse([]byte(gameYAML))
	require.NoError(t, err)

	reg, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, 7, reg.Len())
	assert.Equal(t, 3, reg.TreeDepth())

	g, ok := reg.Resolve("Combat.Strike")
	require.True(t, ok)
	assert.Equal(t, gid.MustFromPath("Combat.Attack"), g)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	data := `name: Bad Name
tags:
  paths:
    - Movement.Idle
    - Movement.Idle
    - 9Lives
    - A..B
    - A.B.C.D.E.F.G.H.I
    - Fine.Path
redirects:
  Old.Name: Not.Listed
  Fine: Fine.Path
`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	msg := err.Error()
	for _, want := range []string{
		"name:",
		`tags.paths[1] "Movement.Idle": already listed at index 0`,
		`segment "9Lives" must be an identifier`,
		`"A..B": contains an empty segment`,
		"deeper than 8 levels",
		`target "Not.Listed" is not a defined path`,
		`redirects "Fine": source is a defined path`,
	} {
		assert.Contains(t, msg, want)
	}
}

func TestValidateRequiresName(t *testing.T) {
	_, err := Parse([]byte("tags:\n  paths: [A]\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "name: cannot be blank")
}

func TestLoadFS(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/tags.yml", []byte(gameYAML), 0o644))

	cfg, err := LoadFS(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "game", cfg.Name)

	cfg, err = LoadFS(fs, "/proj/tags.yml")
	require.NoError(t, err)
	assert.Equal(t, "game", cfg.Name)

	_, err = LoadFS(fs, "/missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, fs.MkdirAll("/empty", 0o755))
	_, err = LoadFS(fs, "/empty")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFSPrefersYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/tags.yaml", []byte("name: primary\ntags:\n  paths: [A]\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/tags.yml", []byte("name: secondary\ntags:\n  paths: [A]\n"), 0o644))

	cfg, err := LoadFS(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Name)
}

func TestLoadFromDirFSWalksUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/tags.yaml", []byte(gameYAML), 0o644))
	require.NoError(t, fs.MkdirAll("/repo/src/game/systems", 0o755))

	cfg, err := LoadFromDirFS(fs, "/repo/src/game/systems")
	require.NoError(t, err)
	assert.Equal(t, "game", cfg.Name)

	_, err = LoadFromDirFS(afero.NewMemMapFs(), "/nowhere/at/all")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFromDirFSStopsOnInvalidFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/tags.yaml", []byte(gameYAML), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/repo/sub/tags.yaml", []byte("name: \"\"\n"), 0o644))

	_, err := LoadFromDirFS(fs, "/repo/sub")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// deniedFs fails every Stat under prefix with a permission error.
type deniedFs struct {
	afero.Fs
	prefix string
}

func (d deniedFs) Stat(name string) (os.FileInfo, error) {
	if name == d.prefix || filepath.Dir(name) == d.prefix {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.Stat(name)
}

func TestLoadFSReportsStatErrors(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/repo/tags.yaml", []byte(gameYAML), 0o644))
	require.NoError(t, mem.MkdirAll("/repo/locked", 0o755))
	fs := deniedFs{Fs: mem, prefix: "/repo/locked"}

	_, err := LoadFS(fs, "/repo/locked")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = LoadFromDirFS(fs, "/repo/locked")
	require.Error(t, err, "unreadable directory stops the search")
	assert.True(t, errors.Is(err, os.ErrPermission))

	cfg, err := LoadFromDirFS(fs, "/repo")
	require.NoError(t, err)
	assert.Equal(t, "game", cfg.Name)
}

func TestLoadFromOSDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(gameYAML), 0o644))
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := LoadFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, "game", cfg.Name)

	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "game", cfg.Name)
}
