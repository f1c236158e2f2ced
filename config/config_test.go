package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira_defect_writer/generator"
)

// isolate runs the test from an empty directory with no config env set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	names := []string{"OPENROUTER_API_KEY", "OPENAI_API_KEY"}
	for _, key := range keys {
		names = append(names, envName(key))
	}
	for _, name := range names {
		if old, ok := os.LookupEnv(name); ok {
			require.NoError(t, os.Unsetenv(name))
			t.Cleanup(func() { _ = os.Setenv(name, old) })
		}
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("DEFECT_LLM_PROVIDER", "mock")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ProviderMock, cfg.LLM.Provider)
	assert.Equal(t, generator.DefaultModel, cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, generator.StyleDefectType, cfg.ReportStyle)
	assert.Equal(t, 12*time.Hour, cfg.SessionLifetime)
}

func TestLoad_OpenRouterKeyFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenRouter, cfg.LLM.Provider)
	assert.Equal(t, "or-key", cfg.LLM.APIKey)
	assert.Equal(t, generator.OpenRouterBaseURL, cfg.LLM.BaseURL)

	t.Setenv("DEFECT_LLM_API_KEY", "explicit")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.LLM.APIKey)
}

func TestLoad_OpenAIProvider(t *testing.T) {
	isolate(t)
	t.Setenv("DEFECT_LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "oa-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "oa-key", cfg.LLM.APIKey)
	assert.Equal(t, openAIBaseURL, cfg.LLM.BaseURL)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9090"
llm:
  provider: openrouter
  api_key: file-key
  model: meta-llama/llama-3-8b-instruct
  timeout: 15s
report:
  style: navigation-path
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "file-key", cfg.LLM.APIKey)
	assert.Equal(t, "meta-llama/llama-3-8b-instruct", cfg.LLM.Model)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, generator.StyleNavigationPath, cfg.ReportStyle)

	t.Setenv("DEFECT_HTTP_ADDR", ":7070")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
}

func TestLoad_DefaultFileName(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defect-writer.yaml"), []byte("llm:\n  provider: mock\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, cfg.LLM.Provider)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENROUTER_API_KEY=dotenv-key\nDEFECT_LLM_MODEL=from-dotenv\nDEFECT_HTTP_ADDR=:1111\n"), 0o600))
	t.Setenv("DEFECT_HTTP_ADDR", ":2222")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.LLM.APIKey)
	assert.Equal(t, "from-dotenv", cfg.LLM.Model)
	assert.Equal(t, ":2222", cfg.HTTP.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"DEFECT_LLM_PROVIDER":     "bard",
		"DEFECT_REPORT_STYLE":     "haiku",
		"DEFECT_LLM_TIMEOUT":      "soon",
		"DEFECT_SESSION_LIFETIME": "forever",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			t.Setenv("DEFECT_LLM_PROVIDER", "mock")
			t.Setenv(name, value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		dir := isolate(t)
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
