package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "text-embedding-v3", cfg.Embedding.Model)
	assert.Equal(t, 1024, cfg.Embedding.Dimensions)
	assert.InDelta(t, 1.0, cfg.Scoring.Weights.Sum(), 1e-9)
	assert.InDelta(t, 80.0, cfg.Scoring.Thresholds.Excellent, 1e-9)
	assert.Equal(t, 50, cfg.MinTextLength)
	assert.Equal(t, 60, cfg.CacheTTLMinutes)

	require.NoError(t, cfg.Scoring.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
  api_key: "secret"
embedding:
  model: "custom-model"
min_text_length: 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.Equal(t, "custom-model", cfg.Embedding.Model)
	assert.Equal(t, 100, cfg.MinTextLength)

	// untouched sections keep their defaults
	assert.InDelta(t, 0.45, cfg.Scoring.Weights.Skills, 1e-9)
	assert.Equal(t, 60, cfg.CacheTTLMinutes)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidWeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
scoring:
  weights:
    skills: 0.9
    experience: 0.9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights must sum to 1.0")
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("EMBEDDING_API_KEY", "sk-from-env")
	t.Setenv("EMBEDDING_BASE_URL", "https://example.com/v1/embeddings")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
embedding:
  api_key: "sk-from-file"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Embedding.APIKey)
	assert.Equal(t, "https://example.com/v1/embeddings", cfg.Embedding.BaseURL)
}

func TestScoringValidateThresholds(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Thresholds = TierThresholds{Excellent: 50, Good: 65, Average: 80}

	err := cfg.Scoring.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strictly decreasing")
}
