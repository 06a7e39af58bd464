package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.CompletionHost)
		assert.Equal(t, 256, cfg.MaxTokens)
	})

	t.Run("options override defaults", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("https://api.openai.com"),
			WithEmbeddingModel("text-embedding-ada-002"),
			WithCompletionModel("gpt-4"),
			WithMaxTokens(512),
		)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
		assert.Equal(t, "https://api.openai.com/v1", cfg.CompletionHost)
		assert.Equal(t, "gpt-4", cfg.CompletionModel)
		assert.Equal(t, 512, cfg.MaxTokens)
	})

	t.Run("separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed.local"),
			WithCompletionHost("http://complete.local"),
		)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://embed.local/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://complete.local/v1", cfg.CompletionHost)
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:11434", CompletionHost: "http://localhost:11434/"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.CompletionHost)
	})

	t.Run("keeps existing v1 suffix", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:11434/v1"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing completion host", func(c *Config) { c.CompletionHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"missing completion model", func(c *Config) { c.CompletionModel = "" }},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
