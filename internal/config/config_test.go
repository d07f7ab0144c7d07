package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: dashboard
server:
  port: 9000
database:
  driver: sqlite
  database: ":memory:"
table:
  max_per_page: 50
views:
  store: database
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", cfg.App.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Table.DefaultPerPage)
	assert.Equal(t, 50, cfg.Table.MaxPerPage)
	assert.Equal(t, StoreDatabase, cfg.Views.Store)
	assert.Equal(t, StoreMemory, cfg.Documents.Store)
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, DefaultConfigPath, Path(""))
	t.Setenv(EnvConfigPath, "/etc/kacamerah.yml")
	assert.Equal(t, "/etc/kacamerah.yml", Path(""))
	assert.Equal(t, "local.yml", Path("local.yml"))
}
