package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:8317", cfg.Server.Addr())
	assert.Equal(t, "crane_pro.db", cfg.Database.Path)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
database:
  path: /tmp/test.db
auth:
  session_ttl: 2h
logging:
  level: debug
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL.Std())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Values the file omits keep their defaults.
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644))

	t.Setenv("CRANEPRO_SERVER_PORT", "9100")
	t.Setenv("CRANEPRO_DATABASE_PATH", "/tmp/env.db")
	t.Setenv("CRANEPRO_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Auth.SessionTTL = Duration(-time.Hour)
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}
