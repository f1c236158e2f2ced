package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira_defect_writer/config"
	"jira_defect_writer/generator"
)

func TestBuildLLM(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.Provider = config.ProviderMock
	llm, err := buildLLM(cfg)
	require.NoError(t, err)
	assert.IsType(t, &generator.MockLLM{}, llm)

	cfg.LLM = config.LLMConfig{Provider: config.ProviderOpenRouter, Model: generator.DefaultModel, BaseURL: generator.OpenRouterBaseURL}
	_, err = buildLLM(cfg)
	assert.ErrorContains(t, err, "api key")

	cfg.LLM.APIKey = "k"
	llm, err = buildLLM(cfg)
	require.NoError(t, err)
	assert.IsType(t, &generator.OpenAILLM{}, llm)

	cfg.LLM.Provider = "bard"
	_, err = buildLLM(cfg)
	assert.Error(t, err)
}

func TestRunGenerate(t *testing.T) {
	llm := &generator.MockLLM{Reply: "TITLE: Sprint 5 - Enrollment - Slider bug\nACTUAL RESULT: slider hidden\n"}
	agent, err := generator.NewAgent(llm, generator.StyleDefectType)
	require.NoError(t, err)

	dir := t.TempDir()
	storyPath := filepath.Join(dir, "story.txt")
	require.NoError(t, os.WriteFile(storyPath, []byte("Dependent slider missing"), 0o600))

	var out bytes.Buffer
	err = runGenerate(context.Background(), agent, generateOpts{
		sprint:    5.4,
		module:    "Enrollment",
		env:       "UAT",
		storyFile: storyPath,
		style:     "navigation-path",
		outDir:    filepath.Join(dir, "out"),
	}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "TITLE: Sprint 5 - Enrollment - Slider bug")
	assert.Contains(t, llm.Last().User, "Dependent slider missing")
	assert.Contains(t, llm.Last().System, "in UAT environment")
	info, err := os.Stat(filepath.Join(dir, "out", "sprint_5_jira_defect.docx"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunGenerate_Validation(t *testing.T) {
	llm := &generator.MockLLM{}
	agent, err := generator.NewAgent(llm, "")
	require.NoError(t, err)

	dir := t.TempDir()
	err = runGenerate(context.Background(), agent, generateOpts{sprint: 1, module: "Enrollment", env: "QA", outDir: dir}, &bytes.Buffer{})
	var verr *generator.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, llm.Calls())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
