package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	// t.Setenv also restores any pre-existing values after the test.
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_API_URL", "")
	t.Setenv("PORT", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.GitHubToken)
	assert.Equal(t, "https://api.github.com", cfg.GitHubAPIURL)
	assert.Equal(t, 8000, cfg.Port)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_realtoken")
	t.Setenv("GITHUB_API_URL", "https://github.internal/api/v3")
	t.Setenv("PORT", "9001")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ghp_realtoken", cfg.GitHubToken)
	assert.Equal(t, "https://github.internal/api/v3", cfg.GitHubAPIURL)
	assert.Equal(t, 9001, cfg.Port)
}

func TestLoadRejectsNonNumericPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, err := Load()

	assert.Error(t, err)
}
