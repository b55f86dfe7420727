package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DEVMATE_TOKEN
const EnvPrefix = "DEVMATE"

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".devmate"))
		}

		// Check /etc
		v.AddConfigPath("/etc/devmate/")
	}

	// A config file is optional when the token comes from the environment
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set win, and a missing file is not an error
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// bindEnv maps DEVMATE_TOKEN to devmate.token, DEVMATE_USER_AGENT to
// devmate.user_agent, DEVMATE_LOGGING_LEVEL to logging.level and so on
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The devmate section is the prefix itself
	for _, key := range devmateKeys {
		_ = v.BindEnv("devmate."+key, EnvPrefix+"_"+strings.ToUpper(key))
	}
}

// devmateKeys lists the devmate section keys reachable as DEVMATE_<KEY>
var devmateKeys = []string{"token", "base_url", "timeout", "user_agent", "follow_redirects"}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// DevMate defaults
	v.SetDefault("devmate.base_url", "https://public-api.devmate.com")
	v.SetDefault("devmate.timeout", "30s")
	v.SetDefault("devmate.user_agent", "devmate-cli")
	v.SetDefault("devmate.follow_redirects", false)

	// Output defaults
	v.SetDefault("output.show_details", true)
	v.SetDefault("output.format", "text")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.DevMate.Token == "" || cfg.DevMate.Token == "your-token-here" {
		return fmt.Errorf("devmate.token must be set to a valid API token")
	}

	if cfg.DevMate.BaseURL == "" {
		return fmt.Errorf("devmate.base_url is required")
	}

	if cfg.DevMate.Timeout < 0 {
		return fmt.Errorf("devmate.timeout must not be negative")
	}

	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter.presets.%s.expression is required", name)
		}
	}

	// Validate output format
	validOutputs := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
