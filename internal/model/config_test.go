package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))

	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, "default", cfg.Display.Theme)
	assert.Equal(t, []string{"general", "deadline"}, cfg.Display.BayOrder)
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	in := &AppConfig{
		Storage: StorageConfig{Path: "/tmp/custom/tasks.db"},
		Display: DisplayConfig{Theme: "mono", BayOrder: []string{"deadline", "general"}},
		Log:     LogConfig{Path: "/tmp/custom/tasx.log"},
	}
	require.NoError(t, SaveConfig(path, in))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in.Storage.Path, out.Storage.Path)
	assert.Equal(t, in.Display.Theme, out.Display.Theme)
	assert.Equal(t, in.Display.BayOrder, out.Display.BayOrder)
	assert.Equal(t, in.Log.Path, out.Log.Path)
}

func TestLoadConfig_EnvOverridesStoragePath(t *testing.T) {
	t.Setenv("TASX_DB_PATH", "/tmp/override/tasks.db")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "/tmp/override/tasks.db", cfg.Storage.Path)
}
