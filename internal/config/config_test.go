package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
env: prod
http_server:
  addresshttp: ":9090"
  timeouthttp: 30s
  idle_timeout: 90s
redis_connection:
  addressredis: "localhost:6379"
  password: "redis_pass"
  db: 2
table:
  page_size: 25
  user_count: 40
  load_delay: 250ms
theme:
  key: "ui-theme"
  prefers_dark: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":9090", cfg.AddressHTTP)
	assert.Equal(t, 30*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, 90*time.Second, cfg.IdleTimeout)
	assert.Equal(t, "localhost:6379", cfg.AddressRedis)
	assert.Equal(t, "redis_pass", cfg.Password)
	assert.Equal(t, 2, cfg.DB)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 40, cfg.UserCount)
	assert.Equal(t, 250*time.Millisecond, cfg.LoadDelay)
	assert.Equal(t, "ui-theme", cfg.Key)
	assert.True(t, cfg.PrefersDark)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "env: local\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AddressHTTP)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 100, cfg.UserCount)
	assert.Equal(t, float64(5000), cfg.MaxBalance)
	assert.Equal(t, time.Second, cfg.LoadDelay)
	assert.Equal(t, "theme", cfg.Key)
	assert.Equal(t, "users-table", cfg.Exchange)
	assert.Empty(t, cfg.AddressRedis)
	assert.Empty(t, cfg.URL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.yaml")
			},
		},
		{
			name: "broken yaml",
			path: func(t *testing.T) string {
				return writeConfig(t, "env: [unterminated\n")
			},
		},
		{
			name: "negative page size",
			path: func(t *testing.T) string {
				return writeConfig(t, "table:\n  page_size: -1\n")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path(t))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestMustLoad_FromEnv(t *testing.T) {
	path := writeConfig(t, "env: dev\n")
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad()
	assert.Equal(t, "dev", cfg.Env)
	assert.Contains(t, cfg.String(), "PageSize: 10")
}
