package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/feedback"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "feeds.txt", cfg.FeedsFile)
	assert.Equal(t, 100, cfg.Scoring.TopK)
	assert.Equal(t, 20, cfg.Scoring.DossierSize)
	assert.Equal(t, feedback.DefaultThreshold, cfg.Scoring.Threshold)
	assert.Equal(t, core.OperatorOr, cfg.Operator())
	assert.Equal(t, feedback.CompareTitleOnly, cfg.CompareMode())
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.True(t, cfg.Reembed.Normalize)
	assert.Empty(t, cfg.Filter.OptIn)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeFile(t, "hemeroteca.yaml", `
log_level: debug
root: /tmp/dossiers
threads: 4
filter:
  opt_in: [Política, Economía]
  operator: and
scoring:
  top_k: 50
  compare_mode: matched
fetch:
  timeout: 5s
ai:
  embedding_model: nomic-embed-text
`)

	t.Setenv("HEMEROTECA_SCORING_DOSSIER_SIZE", "10")
	t.Setenv("HEMEROTECA_AI_API_KEY", "secret")
	t.Setenv("HEMEROTECA_REEMBED_RETRY_DELAY", "250ms")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/dossiers", cfg.Root)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, []string{"política", "economía"}, cfg.Filter.OptIn)
	assert.Equal(t, core.OperatorAnd, cfg.Operator())
	assert.Equal(t, 50, cfg.Scoring.TopK)
	assert.Equal(t, feedback.CompareMatched, cfg.CompareMode())
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "nomic-embed-text", cfg.AI.EmbeddingModel)

	assert.Equal(t, 10, cfg.Scoring.DossierSize)
	assert.Equal(t, "secret", cfg.AI.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Reembed.RetryDelay)

	aiCfg := cfg.ToAI()
	assert.Equal(t, "nomic-embed-text", aiCfg.EmbeddingModel)
	assert.Equal(t, "secret", aiCfg.APIKey)
	assert.NoError(t, aiCfg.Validate())
}

func TestLoad_OptInFromEnv(t *testing.T) {
	t.Setenv("HEMEROTECA_FILTER_OPT_IN", "Madrid, deportes ,,")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"madrid", "deportes"}, cfg.Filter.OptIn)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"log level", "log_level: loud\n"},
		{"operator", "filter:\n  operator: xor\n"},
		{"compare mode", "scoring:\n  compare_mode: bag\n"},
		{"threshold", "scoring:\n  threshold: 1.5\n"},
		{"top k", "scoring:\n  top_k: 0\n"},
		{"host", "ai:\n  embedding_host: not a url\n"},
		{"breaker", "ai:\n  breaker_failures: 3\n  breaker_timeout: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.yaml", tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"HEMEROTECA_LOG_LEVEL":          "log_level",
		"HEMEROTECA_FEEDS_FILE":         "feeds_file",
		"HEMEROTECA_AI_API_KEY":         "ai.api_key",
		"HEMEROTECA_SCORING_TOP_K":      "scoring.top_k",
		"HEMEROTECA_DATABASE_PATH":      "database.path",
		"HEMEROTECA_REEMBED_BATCH_SIZE": "reembed.batch_size",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "HEMEROTECA_TEST_DOTENV=from-file\n")
	t.Setenv("HEMEROTECA_TEST_DOTENV", "")
	os.Unsetenv("HEMEROTECA_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("HEMEROTECA_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
