package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ivsremote/internal/shared/types"
)

func writeTempIni(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rcmd.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadIni(t *testing.T) {
	path := writeTempIni(t, `
[endpoint]
host = 192.168.1.102
port = 5101

[client]
recv_timeout_ms = 3000

[log]
level = debug
`)

	cfg := types.NewDefaultConfig()
	require.NoError(t, LoadIni(cfg, path))

	assert.Equal(t, "192.168.1.102", cfg.EndpointConf.Host)
	assert.Equal(t, 5101, cfg.EndpointConf.Port)
	assert.Equal(t, 3000, cfg.ClientConf.RecvTimeoutMs)
	assert.Equal(t, "debug", cfg.LogConf.Level)

	// Keys missing from the file keep their defaults.
	assert.Equal(t, "tcp", cfg.EndpointConf.Scheme)
	assert.Equal(t, "Swing", cfg.ClientConf.Command)
	assert.Equal(t, 512, cfg.ClientConf.MaxReplyBytes)
}

func TestLoadIniMissingFile(t *testing.T) {
	cfg := types.NewDefaultConfig()
	err := LoadIni(cfg, filepath.Join(t.TempDir(), "does-not-exist.ini"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("IVS_RCMD_HOST", "solar.example.com")
	t.Setenv("IVS_RCMD_PORT", "5200")
	t.Setenv("IVS_RCMD_COMMAND", "Swing")

	cfg := types.NewDefaultConfig()
	ApplyEnv(cfg)

	assert.Equal(t, "solar.example.com", cfg.EndpointConf.Host)
	assert.Equal(t, 5200, cfg.EndpointConf.Port)
	assert.Equal(t, "Swing", cfg.ClientConf.Command)
}

func TestEnvOverridesBeatIniFile(t *testing.T) {
	path := writeTempIni(t, `
[endpoint]
host = from-file
`)
	t.Setenv("IVS_RCMD_HOST", "from-env")

	cfg := types.NewDefaultConfig()
	require.NoError(t, LoadIni(cfg, path))
	assert.Equal(t, "from-env", cfg.EndpointConf.Host)
}

func TestEnvOverrideIgnoresBadInt(t *testing.T) {
	t.Setenv("IVS_RCMD_PORT", "not-a-port")

	cfg := types.NewDefaultConfig()
	ApplyEnv(cfg)
	assert.Equal(t, 5100, cfg.EndpointConf.Port)
}

func TestDefaultsMatchOriginalSample(t *testing.T) {
	cfg := types.NewDefaultConfig()
	assert.Equal(t, "tcp", cfg.EndpointConf.Scheme)
	assert.Equal(t, "localhost", cfg.EndpointConf.Host)
	assert.Equal(t, 5100, cfg.EndpointConf.Port)
	assert.Equal(t, "Swing", cfg.ClientConf.Command)
	assert.Equal(t, 512, cfg.ClientConf.MaxReplyBytes)
}
