package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "admin123", cfg.Auth.Password)
	assert.Equal(t, time.Hour, cfg.Auth.Window())
	assert.Equal(t, 2*time.Second, cfg.Sync.PollInterval())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// 目录存在但没有 config.yaml：同样回落到默认值
	cfg, err = LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
baseurl: https://chat.example.com
storage:
  backend: sqlite
  sqlitepath: /tmp/chat.db
auth:
  windowseconds: 120
sync:
  pollintervalms: 500
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://chat.example.com", cfg.BaseURL)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 2*time.Minute, cfg.Auth.Window())
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.PollInterval())
	// 未覆盖的字段保持默认
	assert.Equal(t, "admin123", cfg.Auth.Password)
}
