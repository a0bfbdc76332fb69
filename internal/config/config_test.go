package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ATELIER_CONFIG_PATH", "ATELIER_SERVER_HOST", "ATELIER_SERVER_PORT",
		"ATELIER_TRANSPORT", "ATELIER_DB_PATH", "ATELIER_DOCUMENTS_DIR",
		"ATELIER_LOG_LEVEL", "ATELIER_LOG_PATH",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "atelier.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
transport:
  mode: http
db:
  path: /var/lib/atelier/data.db
log:
  level: debug
`), 0o644))

	t.Setenv("ATELIER_CONFIG_PATH", path)
	t.Setenv("ATELIER_DB_PATH", "override.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, "override.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "documents", cfg.Documents.Dir)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("ATELIER_DOCUMENTS_DIR=files\nATELIER_LOG_LEVEL=WARN\n"), 0o644))
	os.Unsetenv("ATELIER_DOCUMENTS_DIR")
	os.Unsetenv("ATELIER_LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "files", cfg.Documents.Dir)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ATELIER_SERVER_PORT", "eighty")
	_, err := Load()
	require.ErrorContains(t, err, "ATELIER_SERVER_PORT")

	t.Setenv("ATELIER_SERVER_PORT", "")
	t.Setenv("ATELIER_TRANSPORT", "carrier-pigeon")
	_, err = Load()
	require.ErrorContains(t, err, "invalid transport mode")
}
