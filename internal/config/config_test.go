package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8081", cfg.Listen)
	assert.Equal(t, "./public", cfg.PublicDir)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, ":memory:", cfg.Storage.SQLite.Path)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("LISTEN", "127.0.0.1:9000")
	t.Setenv("STORAGE_TYPE", "SQLite")
	t.Setenv("STORAGE_SQLITE_PATH", "submissions.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, StorageSQLite, cfg.Storage.Type)
	assert.True(t, strings.HasSuffix(cfg.Storage.SQLite.Path, "instance/submissions.db"), cfg.Storage.SQLite.Path)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "log_level: debug\nmetrics: false\nstorage:\n  type: sqlite\n  sqlite:\n    path: /tmp/intake.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, StorageSQLite, cfg.Storage.Type)
	assert.Equal(t, "/tmp/intake.db", cfg.Storage.SQLite.Path)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Listen: ":1", Storage: Storage{Type: "redis"}}
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownStorage)

	cfg = &Config{Listen: ":1", Storage: Storage{Type: StorageSQLite}}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingDBPath)

	cfg = &Config{Storage: Storage{Type: StorageMemory}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8081", cfg.Listen)
}
