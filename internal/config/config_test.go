package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MODCONSOLE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	require.Equal(t, "MODCONSOLE_TOKEN", cfg.API.TokenEnv)
	require.Equal(t, 25, cfg.UI.PageSize)
	require.NotEmpty(t, cfg.Database.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "https://moderation.campus-media.example"
token_env = "CAMPUS_MOD_TOKEN"

[ui]
page_size = 50
`), 0o644))
	t.Setenv("MODCONSOLE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://moderation.campus-media.example", cfg.API.BaseURL)
	require.Equal(t, "CAMPUS_MOD_TOKEN", cfg.API.TokenEnv)
	require.Equal(t, 50, cfg.UI.PageSize)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MODCONSOLE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("MODCONSOLE_API_BASE_URL", "https://override.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://override.example", cfg.API.BaseURL)
}

func TestTokenResolution(t *testing.T) {
	t.Setenv("CAMPUS_MOD_TOKEN", "secret-token")

	cfg := Config{API: APIConfig{TokenEnv: "CAMPUS_MOD_TOKEN"}}
	require.Equal(t, "secret-token", cfg.Token())
}
