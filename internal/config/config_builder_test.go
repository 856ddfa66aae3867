package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestBuild_EmptyBuilderUsesDefaults verifies that building with no sources
// fills the defaults but still fails validation: there is no default token
// sign key.
func TestBuild_EmptyBuilderUsesDefaults(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result and that the first source wins.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenSignKey: "first"}},
		&StructuredConfig{App: App{TokenSignKey: "second", TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

// TestBuild_DefaultsFillGaps verifies the built-in defaults land where no
// source provided a value.
func TestBuild_DefaultsFillGaps(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{TokenSignKey: "secret"}})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Limits.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Limits.BlockDuration)
	assert.Equal(t, 12, cfg.App.HashCost)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Minute, cfg.Workers.JanitorInterval)
}

// TestBuild_SourceOverridesDefaults verifies explicit limits beat defaults.
func TestBuild_SourceOverridesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App:    App{TokenSignKey: "secret"},
		Limits: Limits{MaxAttempts: 3, BlockDuration: time.Minute},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Limits.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Limits.BlockDuration)
}

// TestWithJSON_MergesFile verifies that a JSON file referenced by an earlier
// source is loaded and merged.
func TestWithJSON_MergesFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{
			"token_sign_key": "from-json",
			"base_url":       "https://letters.example.org",
		},
		"limits": map[string]any{
			"max_attempts":   7,
			"block_duration": "10m",
		},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "from-json", cfg.App.TokenSignKey)
	assert.Equal(t, "https://letters.example.org", cfg.App.BaseURL)
	assert.Equal(t, 7, cfg.Limits.MaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Limits.BlockDuration)
}

// TestWithJSON_MissingFile verifies that a bad JSON path surfaces as a build
// error.
func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})

	_, err := b.withJSON().build()
	assert.Error(t, err)
}

func TestValidate_RejectsBadLimits(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.TokenSignKey = "secret"
	cfg.Limits.MaxAttempts = 0

	assert.ErrorIs(t, cfg.validate(), ErrInvalidLimitConfigs)
}

func TestValidate_RejectsMissingAddress(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.TokenSignKey = "secret"
	cfg.Server.HTTPAddress = ""

	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
}
