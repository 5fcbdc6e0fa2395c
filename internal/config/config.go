package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API      APIConfig
	Database DatabaseConfig
	UI       UIConfig
}

// APIConfig holds moderation backend settings. The token itself is read from
// the environment variable named by TokenEnv; it is never written to disk.
type APIConfig struct {
	BaseURL  string
	TokenEnv string
}

// DatabaseConfig holds sqlite settings for the local audit log.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize   int
	DateFormat string
}

// Load reads configuration from file and env. Env var overrides use prefix
// MODCONSOLE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.token_env", "MODCONSOLE_TOKEN")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "modconsole", "audit.db"))
	v.SetDefault("ui.page_size", 25)
	v.SetDefault("ui.date_format", "02/01 15:04")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MODCONSOLE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "modconsole"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MODCONSOLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Token resolves the API token from the configured environment variable.
func (c Config) Token() string {
	return os.Getenv(c.API.TokenEnv)
}
