// FILE: lixenwraith/petmaster/discovery_test.go
package petmaster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverDataDir(t *testing.T) {
	t.Run("ExplicitWins", func(t *testing.T) {
		t.Setenv("PETMASTER_DATA_DIR", "/from/env")
		opts := DefaultDiscoveryOptions("petmaster")
		opts.Explicit = "/from/flag"
		assert.Equal(t, "/from/flag", DiscoverDataDir(opts))
	})

	t.Run("EnvironmentVariable", func(t *testing.T) {
		t.Setenv("PETMASTER_DATA_DIR", "/from/env")
		assert.Equal(t, "/from/env", DiscoverDataDir(DefaultDiscoveryOptions("petmaster")))
	})

	t.Run("FirstSearchPathWithSettings", func(t *testing.T) {
		t.Setenv("PETMASTER_DATA_DIR", "")
		empty, found := t.TempDir(), t.TempDir()
		writeFile(t, filepath.Join(found, DefaultSettingsFile), "chatMessage: true\n")

		opts := DefaultDiscoveryOptions("petmaster")
		opts.UseXDG = false
		opts.Paths = []string{empty, found}
		assert.Equal(t, found, DiscoverDataDir(opts))
	})

	t.Run("XDGConfigHome", func(t *testing.T) {
		t.Setenv("PETMASTER_DATA_DIR", "")
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		dir := filepath.Join(home, "petmaster")
		require.NoError(t, os.MkdirAll(dir, 0755))
		writeFile(t, filepath.Join(dir, DefaultSettingsFile), "")

		assert.Equal(t, dir, DiscoverDataDir(DefaultDiscoveryOptions("petmaster")))
	})

	t.Run("FallsBackToWorkingDirectory", func(t *testing.T) {
		t.Setenv("PETMASTER_DATA_DIR", "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("XDG_CONFIG_DIRS", t.TempDir())

		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, cwd, DiscoverDataDir(DefaultDiscoveryOptions("petmaster")))
	})
}

func TestXDGConfigPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/home")
	t.Setenv("XDG_CONFIG_DIRS", "/a"+string(os.PathListSeparator)+"/b")
	assert.Equal(t, []string{"/xdg/home/app", "/a/app", "/b/app"}, getXDGConfigPaths("app"))

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_DIRS", "")
	t.Setenv("HOME", "/home/u")
	assert.Equal(t, []string{"/home/u/.config/app", "/etc/xdg/app"}, getXDGConfigPaths("app"))
}
