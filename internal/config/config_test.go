package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[llm]
provider = "openai"
model = "gpt-4o-mini"

[matching]
fuzzy_threshold = 0.7

[extraction]
chunk_size = 400
chunk_method = "sentence"

[server]
port = "9090"
debug = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 0.7, cfg.Matching.FuzzyThreshold)
	assert.Equal(t, 400, cfg.Extraction.ChunkSize)
	assert.Equal(t, "sentence", cfg.Extraction.ChunkMethod)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
[llm]
provider = "claude"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.Matching.FuzzyThreshold)
	assert.Equal(t, 900, cfg.Extraction.ChunkSize)
	assert.Equal(t, "word", cfg.Extraction.ChunkMethod)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeClampsThreshold(t *testing.T) {
	path := writeConfig(t, `
[matching]
fuzzy_threshold = 1.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.Matching.FuzzyThreshold)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("SOCIOTYPER_FUZZY_THRESHOLD", "0.65")
	t.Setenv("PORT", "3001")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 0.65, cfg.Matching.FuzzyThreshold)
	assert.Equal(t, "3001", cfg.Server.Port)
}

func TestApplyEnvIgnoresInvalidThreshold(t *testing.T) {
	t.Setenv("SOCIOTYPER_FUZZY_THRESHOLD", "nope")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, 0.8, cfg.Matching.FuzzyThreshold)
}
