package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
  mode: debug
database:
  driver: postgres
  host: db
  port: 5432
jwt:
  secret: test-secret
  expire_hours: 2
storage:
  type: local
  local_path: `+filepath.Join(t.TempDir(), "uploads")+`
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "aldudu_token", cfg.JWT.CookieName)
	assert.Equal(t, int64(32), cfg.Upload.MaxSizeMB)
	assert.DirExists(t, cfg.Storage.LocalPath)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Mode: "debug"},
			Database: DatabaseConfig{Driver: "mysql"},
			JWT:      JWTConfig{Secret: "short"},
			Storage:  StorageConfig{Type: "local"},
		}
	}

	t.Run("Debug", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("ReleaseShortSecret", func(t *testing.T) {
		cfg := base()
		cfg.Server.Mode = "release"
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "sqlserver"
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownStorage", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Type = "ftp"
		assert.Error(t, cfg.Validate())
	})
}
