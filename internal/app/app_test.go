package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/corey/roost/internal/adapters/web"
	"github.com/corey/roost/internal/config"
	"github.com/corey/roost/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testSettings(dir string) *config.Config {
	return &config.Config{Dir: dir, TLD: "test", HTTPPort: 0, RateLimit: 100, LogLevel: "info"}
}

func writeApp(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

type failingSource struct{}

func (failingSource) Load() ([]ports.App, error) { return nil, errors.New("broken yaml") }

func TestNew_RequiresSettings(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Settings: &config.Config{}})
	assert.ErrorContains(t, err, "config directory")
}

func TestNew_LoadsAppsAndCreatesStateDir(t *testing.T) {
	dir := t.TempDir()
	writeApp(t, dir, "blog.yml", "description: My blog\nport: 4000\n")
	writeApp(t, dir, "android-assistant.yaml", "aliases: [assist]\ncmd: npm start\n")

	a, err := New(Config{Settings: testSettings(dir)})
	require.NoError(t, err)
	defer a.Stop()

	assert.Equal(t, 2, a.Catalog.Len())
	all := a.Catalog.All()
	assert.Equal(t, "android-assistant", all[0].Name)
	assert.Equal(t, "blog", all[1].Name)

	info, err := os.Stat(a.Paths.RunDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_BrokenSourceStillStarts(t *testing.T) {
	a, err := New(Config{Settings: testSettings(t.TempDir()), Source: failingSource{}})
	require.NoError(t, err)
	defer a.Stop()
	assert.Equal(t, 0, a.Catalog.Len())
}

func TestApp_ServesFilteredApps(t *testing.T) {
	dir := t.TempDir()
	writeApp(t, dir, "android-assistant.yml", "description: Voice helper\n")
	writeApp(t, dir, "blog.yml", "port: 4000\n")

	a, err := New(Config{Settings: testSettings(dir)})
	require.NoError(t, err)
	require.NoError(t, a.Start())
	defer a.Stop()

	c, err := web.ClientFromPortFile(a.Paths.PortFile)
	require.NoError(t, err)
	require.True(t, c.Ping())

	apps, err := c.Status(t.Context(), "Android Assist")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "android-assistant", apps[0].Name)
	assert.Equal(t, "http://android-assistant.test", apps[0].URL)

	state, err := c.SaveFilter(t.Context(), "blog")
	require.NoError(t, err)
	assert.Equal(t, "blog", state.Normalized)
}

func TestApp_ReloadsOnConfigChange(t *testing.T) {
	dir := t.TempDir()
	writeApp(t, dir, "blog.yml", "port: 4000\n")

	a, err := New(Config{Settings: testSettings(dir)})
	require.NoError(t, err)
	require.NoError(t, a.Start())
	defer a.Stop()
	require.Equal(t, 1, a.Catalog.Len())

	writeApp(t, dir, "shop.yml", "port: 4100\n")
	assert.Eventually(t, func() bool { return a.Catalog.Len() == 2 }, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(filepath.Join(dir, "blog.yml")))
	assert.Eventually(t, func() bool {
		_, ok := a.Catalog.Get("blog")
		return !ok && a.Catalog.Len() == 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestApp_StopRemovesPortFileAndIsIdempotent(t *testing.T) {
	a, err := New(Config{Settings: testSettings(t.TempDir())})
	require.NoError(t, err)
	require.NoError(t, a.Start())

	_, err = os.Stat(a.Paths.PortFile)
	require.NoError(t, err)

	require.NoError(t, a.Stop())
	require.NoError(t, a.Stop())

	_, err = os.Stat(a.Paths.PortFile)
	assert.True(t, os.IsNotExist(err))
}

func TestApp_StartStopNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	writeApp(t, dir, "blog.yml", "port: 4000\n")
	a, err := New(Config{Settings: testSettings(dir)})
	require.NoError(t, err)
	require.NoError(t, a.Start())
	require.NoError(t, a.Stop())
}

func TestApp_DBLockedBySecondInstance(t *testing.T) {
	dir := t.TempDir()
	a, err := New(Config{Settings: testSettings(dir)})
	require.NoError(t, err)
	defer a.Stop()

	_, err = New(Config{Settings: testSettings(dir)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open store")
}
