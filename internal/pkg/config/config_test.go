package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestNewMemoryStorage(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
db:
  storage: memory
auth:
  secret: topsecret
  ttl: 2h
rdb:
  addr: localhost:6379
`)

	cfg, err := New(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, StorageMemory, cfg.PostgresDB.Storage)
	require.Equal(t, 2*time.Hour, cfg.Auth.TTL)
	require.Equal(t, 12, cfg.Auth.BcryptCost)
	require.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
}

func TestNewPostgresRequiresCredentials(t *testing.T) {
	path := writeConfig(t, `
db:
  storage: postgres
auth:
  secret: topsecret
`)

	_, err := New(path)
	require.Error(t, err)
}

func TestNewUnknownStorage(t *testing.T) {
	path := writeConfig(t, `
db:
  storage: sqlite
auth:
  secret: topsecret
`)

	_, err := New(path)
	require.ErrorContains(t, err, "unknown storage")
}

func TestConnString(t *testing.T) {
	p := PostgresDB{
		Addr:     "localhost:5432",
		Username: "u",
		Password: "p",
		DB:       "feedback",
		SSLmode:  "disable",
		MaxConns: "4",
	}

	require.Equal(t, "postgres://u:p@localhost:5432/feedback", p.MigrationConnString())
	require.Equal(t, "postgres://u:p@localhost:5432/feedback?sslmode=disable&pool_max_conns=4", p.ConnString())
}
