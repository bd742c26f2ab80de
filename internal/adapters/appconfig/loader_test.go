package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFS_SingleApp(t *testing.T) {
	fsys := fstest.MapFS{
		"blog.yml": {Data: []byte("description: Personal blog\naliases: [b, journal]\nroot: /src/blog\ncmd: bundle exec jekyll serve\nport: 4000\n")},
	}
	apps, err := LoadFS(fsys)
	require.NoError(t, err)
	require.Len(t, apps, 1)

	app := apps[0]
	assert.Equal(t, "blog", app.Name, "name defaults to file name")
	assert.Equal(t, "Personal blog", app.Description)
	assert.Equal(t, []string{"b", "journal"}, app.Aliases)
	assert.Equal(t, "/src/blog", app.Root)
	assert.Equal(t, "bundle exec jekyll serve", app.Command)
	assert.Equal(t, 4000, app.Port)
	assert.Equal(t, "blog.yml", app.FilePath)
	assert.False(t, app.MultiService())
}

func TestLoadFS_ExplicitNameWins(t *testing.T) {
	fsys := fstest.MapFS{
		"whatever.yaml": {Data: []byte("name: android-assistant\ncmd: npm start\n")},
	}
	apps, err := LoadFS(fsys)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "android-assistant", apps[0].Name)
}

func TestLoadFS_MultiService(t *testing.T) {
	fsys := fstest.MapFS{
		"shop.yml": {Data: []byte(`root: /src/shop
services:
  - name: web
    cmd: bin/rails server
    default: true
  - name: worker
    dir: /src/shop/jobs
    cmd: bin/jobs
`)},
	}
	apps, err := LoadFS(fsys)
	require.NoError(t, err)
	require.Len(t, apps, 1)

	app := apps[0]
	require.True(t, app.MultiService())
	require.Len(t, app.Services, 2)
	assert.Equal(t, "/src/shop", app.Services[0].Dir, "service dir defaults to app root")
	assert.True(t, app.Services[0].Default)
	assert.Equal(t, "/src/shop/jobs", app.Services[1].Dir)
}

func TestLoadFS_SkipsNonDefinitions(t *testing.T) {
	fsys := fstest.MapFS{
		"config.json":     {Data: []byte(`{"tld":"test"}`)},
		".hidden.yml":     {Data: []byte("cmd: x\n")},
		"notes.txt":       {Data: []byte("hello")},
		"certs/ca.pem":    {Data: []byte("pem")},
		"nested/app.yml":  {Data: []byte("cmd: x\n")},
		"real-app.yml":    {Data: []byte("cmd: npm start\n")},
		"other_app.yaml":  {Data: []byte("cmd: npm start\n")},
		".roost/roost.db": {Data: []byte{0}},
	}
	apps, err := LoadFS(fsys)
	require.NoError(t, err)

	var names []string
	for _, a := range apps {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"other_app", "real-app"}, names)
}

func TestLoadFS_MalformedFileNamesFile(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.yml": {Data: []byte("cmd: [unterminated\n")},
	}
	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yml")
}

func TestLoadFS_DuplicateName(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yml": {Data: []byte("name: dup\n")},
		"b.yml": {Data: []byte("name: dup\n")},
	}
	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate app name")
}

func TestLoadFS_InvalidServices(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{
		"x.yml": {Data: []byte("services:\n  - cmd: run\n")},
	})
	assert.ErrorContains(t, err, "name required")

	_, err = LoadFS(fstest.MapFS{
		"y.yml": {Data: []byte("services:\n  - name: a\n    default: true\n  - name: b\n    default: true\n")},
	})
	assert.ErrorContains(t, err, "default")
}

func TestLoadFS_InvalidName(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{
		"x.yml": {Data: []byte("name: a.b\n")},
	})
	assert.ErrorContains(t, err, "invalid app name")
}

func TestLoader_MissingDir(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "nope"))
	apps, err := l.Load()
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestLoader_AbsoluteFilePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.yml"), []byte("cmd: go run .\n"), 0644))

	apps, err := NewLoader(dir).Load()
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, filepath.Join(dir, "api.yml"), apps[0].FilePath)
}

func TestListNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.yml", "alpha.yaml", "config.json", ".swp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "certs"), 0755))

	names, err := ListNames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)

	names, err = ListNames(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestIsDefinition(t *testing.T) {
	assert.True(t, IsDefinition("app.yml"))
	assert.True(t, IsDefinition("app.yaml"))
	assert.False(t, IsDefinition("app.yml.swp"))
	assert.False(t, IsDefinition(".app.yml"))
	assert.False(t, IsDefinition("config.json"))
	assert.False(t, IsDefinition("certs"))
}
