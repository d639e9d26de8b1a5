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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  dsn: "storage/test.db"
http_server:
  address: "localhost:8082"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "storage/test.db", cfg.Storage.DSN)
	assert.Equal(t, "localhost:8082", cfg.HTTPServer.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.ShutdownTimeout)
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
env: "prod"
storage:
  driver: "postgres"
  dsn: "postgres://u:p@localhost:5432/db"
http_server:
  address: "0.0.0.0:9000"
  read_timeout: 3s
  shutdown_timeout: 1s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 3*time.Second, cfg.HTTPServer.ReadTimeout)
	assert.Equal(t, time.Second, cfg.HTTPServer.ShutdownTimeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
storage:
  dsn: "from-file.db"
http_server:
  address: "localhost:8082"
`)
	t.Setenv("STORAGE_DSN", "from-env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Storage.DSN)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing address",
			body: "storage:\n  dsn: \"x.db\"\n",
		},
		{
			name: "unknown driver",
			body: "storage:\n  driver: \"mongo\"\n  dsn: \"x\"\nhttp_server:\n  address: \":1\"\n",
		},
		{
			name: "unknown env",
			body: "env: \"qa\"\nstorage:\n  dsn: \"x.db\"\nhttp_server:\n  address: \":1\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
