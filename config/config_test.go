package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DevMate: DevMateConfig{
			Token:   "valid-token",
			BaseURL: "https://public-api.devmate.com",
			Timeout: 30 * time.Second,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "Valid config",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "Missing token",
			mutate:  func(cfg *Config) { cfg.DevMate.Token = "" },
			wantErr: "devmate.token must be set",
		},
		{
			name:    "Placeholder token",
			mutate:  func(cfg *Config) { cfg.DevMate.Token = "your-token-here" },
			wantErr: "devmate.token must be set",
		},
		{
			name:    "Missing base URL",
			mutate:  func(cfg *Config) { cfg.DevMate.BaseURL = "" },
			wantErr: "devmate.base_url is required",
		},
		{
			name:    "Negative timeout",
			mutate:  func(cfg *Config) { cfg.DevMate.Timeout = -time.Second },
			wantErr: "devmate.timeout must not be negative",
		},
		{
			name: "Empty preset expression",
			mutate: func(cfg *Config) {
				cfg.Filter.Presets = map[string]PresetFilter{"broken": {Description: "nothing"}}
			},
			wantErr: "filter.presets.broken.expression is required",
		},
		{
			name:    "Invalid output format",
			mutate:  func(cfg *Config) { cfg.Output.Format = "xml" },
			wantErr: "invalid output format: xml",
		},
		{
			name:    "Invalid logging level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "Invalid logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "logfmt" },
			wantErr: "invalid logging format: logfmt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
devmate:
  token: file-token
  timeout: 5s
filter:
  presets:
    licensed:
      description: Customers holding at least one license
      expression: hasLicense()
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.DevMate.Token)
	assert.Equal(t, "https://public-api.devmate.com", cfg.DevMate.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.DevMate.Timeout)
	assert.False(t, cfg.DevMate.FollowRedirects)
	assert.Equal(t, "hasLicense()", cfg.Filter.Presets["licensed"].Expression)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Output.ShowDetails)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
devmate:
  token: file-token
`)
	t.Setenv("DEVMATE_TOKEN", "env-token")
	t.Setenv("DEVMATE_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.DevMate.Token)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_DevMateEnvKeys(t *testing.T) {
	path := writeConfig(t, `
devmate:
  token: file-token
`)
	t.Setenv("DEVMATE_BASE_URL", "https://devmate.test")
	t.Setenv("DEVMATE_TIMEOUT", "5s")
	t.Setenv("DEVMATE_USER_AGENT", "env-agent")
	t.Setenv("DEVMATE_FOLLOW_REDIRECTS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://devmate.test", cfg.DevMate.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.DevMate.Timeout)
	assert.Equal(t, "env-agent", cfg.DevMate.UserAgent)
	assert.True(t, cfg.DevMate.FollowRedirects)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})

	t.Run("missing token", func(t *testing.T) {
		path := writeConfig(t, "logging:\n  level: info\n")
		t.Setenv("DEVMATE_TOKEN", "")

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "devmate.token must be set")
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("sets unset variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("DEVMATE_TEST_DOTENV=from-file\n"), 0o600))
		t.Setenv("DEVMATE_TEST_DOTENV", "")
		require.NoError(t, os.Unsetenv("DEVMATE_TEST_DOTENV"))

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "from-file", os.Getenv("DEVMATE_TEST_DOTENV"))
	})
}
