package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 5000, cfg.CatalogScanWarnThreshold)
	assert.Equal(t, EmbeddingProviderHTTP, cfg.Embedding.Provider)
	assert.Equal(t, "all-MiniLM-L6-v2", cfg.Embedding.Model)
	assert.Equal(t, 384, cfg.Embedding.Dimension)
	assert.Equal(t, 64, cfg.Embedding.BatchSize)
	assert.Equal(t, 10*time.Minute, cfg.Embedding.QueryCacheTTL)
	assert.Equal(t, uint32(5), cfg.Embedding.BreakerFailures)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("EMBEDDING_PROVIDER", EmbeddingProviderDeterministic)
	t.Setenv("EMBEDDING_BASE_URL", "http://embedder:9000/v1/")
	t.Setenv("EMBEDDING_BATCH_SIZE", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://embedder:9000/v1", cfg.Embedding.BaseURL)
	assert.Equal(t, 1, cfg.Embedding.BatchSize)
}

func TestLoad_ProductionRequirements(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	_, err := Load()
	assert.ErrorContains(t, err, "CORS_ALLOWED_ORIGINS")

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example")
	t.Setenv("EMBEDDING_PROVIDER", EmbeddingProviderHTTP)
	t.Setenv("EMBEDDING_BASE_URL", "")
	require.NoError(t, os.Unsetenv("EMBEDDING_BASE_URL"))
	_, err = Load()
	assert.ErrorContains(t, err, "EMBEDDING_BASE_URL")

	t.Setenv("EMBEDDING_BASE_URL", "https://embedder.example/v1")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_UnknownProvider(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("EMBEDDING_PROVIDER", "magic")
	_, err := Load()
	assert.Error(t, err)
}
