package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "https://app.thenvoi.com", cfg.API.BaseURL)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, 8941, cfg.Server.Port)
	assert.Equal(t, "loopback", cfg.Server.Bind)
	assert.Equal(t, 32, cfg.Server.MaxPending)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "stdio", cfg.Server.Transport)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thenvoi.yaml")
	data := `
api:
  key: tv_agent_abc123
  baseUrl: https://staging.thenvoi.com
server:
  transport: sse
  port: 9000
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tv_agent_abc123", cfg.API.Key)
	assert.Equal(t, "https://staging.thenvoi.com", cfg.API.BaseURL)
	assert.Equal(t, "sse", cfg.Server.Transport)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// unspecified fields still get defaults
	assert.Equal(t, "loopback", cfg.Server.Bind)
	assert.Equal(t, 32, cfg.Server.MaxPending)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thenvoi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [not closed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("THENVOI_API_KEY", "tv_user_xyz")
	t.Setenv("THENVOI_BASE_URL", "http://localhost:3000")
	t.Setenv("THENVOI_TRANSPORT", "WS")
	t.Setenv("THENVOI_PORT", "8080")
	t.Setenv("THENVOI_LOG_LEVEL", "WARN")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "tv_user_xyz", cfg.API.Key)
	assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
	assert.Equal(t, "ws", cfg.Server.Transport)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MY_SECRET", "tv_agent_secret")

	assert.Equal(t, "tv_agent_secret", expandEnvVars("${MY_SECRET}"))
	assert.Equal(t, "prefix-tv_agent_secret", expandEnvVars("prefix-${MY_SECRET}"))
	// unset variables are left untouched
	assert.Equal(t, "${UNSET_VAR_12345}", expandEnvVars("${UNSET_VAR_12345}"))
	assert.Equal(t, "plain", expandEnvVars("plain"))
}

func TestExpandEnvVarsInKey(t *testing.T) {
	t.Setenv("TEST_KEY_VALUE", "tv_agent_fromenv")
	path := filepath.Join(t.TempDir(), "thenvoi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  key: ${TEST_KEY_VALUE}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tv_agent_fromenv", cfg.API.Key)
}

func TestValidateValid(t *testing.T) {
	cfg := Defaults()
	cfg.API.Key = "tv_agent_abc"
	assert.Empty(t, Validate(cfg))
}

func TestValidateMissingKey(t *testing.T) {
	cfg := Defaults()
	issues := Validate(cfg)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Error(), "api.key")
}

func TestValidateBadBaseURL(t *testing.T) {
	cfg := Defaults()
	cfg.API.Key = "tv_agent_abc"
	cfg.API.BaseURL = "app.thenvoi.com"
	issues := Validate(cfg)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Error(), "baseUrl")
}

func TestValidateBadTransport(t *testing.T) {
	cfg := Defaults()
	cfg.API.Key = "tv_agent_abc"
	cfg.Server.Transport = "grpc"
	assert.NotEmpty(t, Validate(cfg))
}

func TestValidateBadPort(t *testing.T) {
	cfg := Defaults()
	cfg.API.Key = "tv_agent_abc"

	cfg.Server.Port = 0
	assert.NotEmpty(t, Validate(cfg))

	cfg.Server.Port = 70000
	assert.NotEmpty(t, Validate(cfg))
}

func TestValidateBadBind(t *testing.T) {
	cfg := Defaults()
	cfg.API.Key = "tv_agent_abc"
	cfg.Server.Bind = "everywhere"
	assert.NotEmpty(t, Validate(cfg))
}

func TestValidateBadMaxPending(t *testing.T) {
	cfg := Defaults()
	cfg.API.Key = "tv_agent_abc"
	cfg.Server.MaxPending = 0
	assert.NotEmpty(t, Validate(cfg))
}

func TestValidateMultipleIssues(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Transport = "grpc"
	cfg.Server.Port = -1
	issues := Validate(cfg)
	assert.GreaterOrEqual(t, len(issues), 3)
}
