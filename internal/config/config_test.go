package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDefaultConfig(t *testing.T) {
	cfg := createDefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, "feature", cfg.AI.Backend)
	assert.Equal(t, 0.3, cfg.Search.SimilarityThreshold)
	assert.Equal(t, 20, cfg.Search.MaxResults)
	assert.Equal(t, 10000, cfg.Processing.MaxTextLength)
	assert.Equal(t, 30*time.Second, cfg.Processing.DownloadTimeout())
	assert.False(t, cfg.MinIO.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
environment: production
server:
  host: 127.0.0.1
  port: 9100
ai:
  backend: dense
  base_url: http://localhost:11434/v1
  embedding_model: all-minilm
  dimensions: 384
search:
  similarity_threshold: 0.5
  max_results: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "127.0.0.1:9100", cfg.Server.Addr())
	assert.Equal(t, "dense", cfg.AI.Backend)
	assert.Equal(t, 384, cfg.AI.Dimensions)
	assert.Equal(t, 0.5, cfg.Search.SimilarityThreshold)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	// 未出现在文件中的字段保持默认值
	assert.Equal(t, 10000, cfg.Processing.MaxTextLength)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("PORT", "9000")
	t.Setenv("AI_API_KEY", "test-key")
	t.Setenv("SIMILARITY_THRESHOLD", "0.7")
	t.Setenv("MAX_RESULTS", "5")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
	assert.Equal(t, 0.7, cfg.Search.SimilarityThreshold)
	assert.Equal(t, 5, cfg.Search.MaxResults)
}

func TestGroqKeyFallback(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-key")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "groq-key", cfg.AI.APIKey)

	// 显式的AI_API_KEY优先
	t.Setenv("AI_API_KEY", "explicit-key")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "explicit-key", cfg.AI.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := createDefaultConfig()
	cfg.AI.Backend = "quantum"
	assert.Error(t, cfg.Validate())

	cfg = createDefaultConfig()
	cfg.Search.SimilarityThreshold = 1.5
	assert.Error(t, cfg.Validate())

	cfg = createDefaultConfig()
	cfg.Search.MaxResults = 0
	assert.Error(t, cfg.Validate())
}
