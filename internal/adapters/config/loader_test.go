package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/workbench/internal/adapters/config"
	"go.trai.ch/workbench/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sampleJSON = `{
  "properties": {
    "srcDir": "src",
    "binDir": "out",
    "appJs": "${srcDir}/app.js",
    "later": "${undefinedYet}x",
    "retries": 3
  },
  "resources": {
    "lib": ["${srcDir}/a.js", {"file": "${srcDir}/b.js", "license": "MIT"}]
  },
  "plugins": ["closure-compiler"],
  "targets": {
    "app": {"builder": "noop", "resources": ["lib", "${appJs}"], "outputs": "${binDir}/app.js"},
    "page-*": {"builder": "command", "match": "glob", "command": ["cat"]}
  }
}`

func TestLoader_LoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "build.json", sampleJSON)

	cfg, err := config.NewLoader(config.WithHomeDir(t.TempDir())).Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, []string{"srcDir", "binDir", "appJs", "later", "retries"}, cfg.Properties.Names())

	appJs, _ := cfg.Properties.Get("appJs")
	assert.Equal(t, "src/app.js", appJs)
	later, _ := cfg.Properties.Get("later")
	assert.Equal(t, "x", later)
	retries, _ := cfg.Properties.Get("retries")
	assert.Equal(t, "3", retries)

	assert.Equal(t, []string{"closure-compiler"}, cfg.Plugins)
	assert.Equal(t, []string{"app", "page-*"}, cfg.Targets.Names())

	app, ok := cfg.Targets.Get("app")
	require.True(t, ok)
	assert.Equal(t, "noop", app.Builder)
	assert.Equal(t, domain.MatchExact, app.Mode())

	want := []domain.Resource{
		{File: "src/a.js"},
		{File: "src/b.js", Meta: map[string]any{"license": "MIT"}},
		{File: "src/app.js"},
	}
	if diff := cmp.Diff(want, app.Resources); diff != "" {
		t.Errorf("resources mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]any{"outputs": "${binDir}/app.js"}, app.Data)

	page, ok := cfg.Targets.Get("page-*")
	require.True(t, ok)
	assert.Equal(t, domain.MatchGlob, page.Mode())
	assert.True(t, page.Matches("page-home"))
}

func TestLoader_LoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "build.yaml", `
properties:
  zeta: z
  alpha: ${zeta}a
resources:
  lib:
    - lib/a.js
plugins:
  closure-compiler: {}
targets:
  app:
    builder: noop
    resources: [lib]
    suffix: .out.js
`)

	cfg, err := config.NewLoader(config.WithHomeDir(t.TempDir())).Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha"}, cfg.Properties.Names())
	alpha, _ := cfg.Properties.Get("alpha")
	assert.Equal(t, "za", alpha)
	assert.Equal(t, []string{"closure-compiler"}, cfg.Plugins)

	app, ok := cfg.Targets.Get("app")
	require.True(t, ok)
	assert.Equal(t, []domain.Resource{{File: "lib/a.js"}}, app.Resources)
	assert.Equal(t, ".out.js", app.Data["suffix"])
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{
			name:    "malformed json",
			file:    "build.json",
			content: `{"targets": `,
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "duplicate target",
			file:    "build.json",
			content: `{"targets": {"app": {"builder": "noop"}, "app": {"builder": "noop"}}}`,
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "missing builder",
			file:    "build.json",
			content: `{"targets": {"app": {"resources": []}}}`,
			wantErr: domain.ErrInvalidTarget,
		},
		{
			name:    "bad match mode",
			file:    "build.json",
			content: `{"targets": {"app": {"builder": "noop", "match": "fuzzy"}}}`,
			wantErr: domain.ErrInvalidMatchMode,
		},
		{
			name:    "resource without file",
			file:    "build.json",
			content: `{"targets": {"app": {"builder": "noop", "resources": [{"license": "MIT"}]}}}`,
			wantErr: domain.ErrInvalidResource,
		},
		{
			name:    "targets not an object",
			file:    "build.yaml",
			content: "targets: [a, b]\n",
			wantErr: domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			cfg, err := config.NewLoader(config.WithHomeDir(t.TempDir())).Load(path)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
			assert.Nil(t, cfg)
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "build.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestLoader_Locals(t *testing.T) {
	home := t.TempDir()
	dir := t.TempDir()
	writeFile(t, home, ".workbenchrc", `{"user": "alice", "shared": "home"}`)
	writeFile(t, dir, ".workbenchrc", `{"shared": "project"}`)
	path := writeFile(t, dir, "build.json", `{"targets": {}}`)
	t.Chdir(dir)

	cfg, err := config.NewLoader(config.WithHomeDir(home)).Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"user": "alice", "shared": "project"}, cfg.Locals)
	assert.Equal(t, 0, cfg.Properties.Len())
}

func TestLoader_LocalsRelocatedAndBroken(t *testing.T) {
	home := t.TempDir()
	dir := t.TempDir()
	writeFile(t, home, ".workbenchrc", `{not json`)
	writeFile(t, dir, "conf/local.json", `{"key": "value"}`)
	path := writeFile(t, dir, "build.json", `{"properties": {"localConfigFile": "conf/local.json"}}`)
	t.Chdir(dir)

	cfg, err := config.NewLoader(config.WithHomeDir(home)).Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"key": "value"}, cfg.Locals)
}

func TestLoader_LocalsResolvedFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".workbenchrc", `{"from": "root"}`)
	writeFile(t, dir, "sub/.workbenchrc", `{"from": "sub"}`)
	writeFile(t, dir, "sub/build.json", `{}`)
	t.Chdir(dir)

	cfg, err := config.NewLoader(config.WithHomeDir(t.TempDir())).Load(filepath.Join("sub", "build.json"))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"from": "root"}, cfg.Locals)
}

func TestLoader_LocalsAbsent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "build.json", `{}`)

	cfg, err := config.NewLoader(config.WithHomeDir(t.TempDir())).Load(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.Locals)
	assert.Equal(t, 0, cfg.Targets.Len())
}
