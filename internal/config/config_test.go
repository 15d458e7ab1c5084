package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"candidate_id": "cand-42",
		"model": "gemini-2.5-flash",
		"concurrency": 3,
		"timeout_seconds": 120,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "cand-42", cfg.CandidateID)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 120, cfg.TimeoutSeconds)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_TemperatureRange(t *testing.T) {
	cfg := &Config{Temperature: 2.5}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
}

func TestValidate_NegativeValues(t *testing.T) {
	assert.Error(t, (&Config{Concurrency: -1}).Validate())
	assert.Error(t, (&Config{TimeoutSeconds: -5}).Validate())
}

func TestValidate_MissingResumeFile(t *testing.T) {
	cfg := &Config{Resume: "/nonexistent/resume.txt"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "resume file not found")
}

func TestValidate_ExistingFiles(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resume, []byte("resume"), 0644))

	cfg := &Config{Resume: resume, PersonasDir: dir, Temperature: 0.2}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Model:       "gemini-2.5-pro",
		Concurrency: 2,
	}
	defaults := Config{
		Model:          "gemini-2.5-flash",
		CandidateID:    "cand-default",
		Concurrency:    4,
		TimeoutSeconds: 240,
		APIKey:         "key-from-file",
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Explicit values win
	assert.Equal(t, "gemini-2.5-pro", merged.Model)
	assert.Equal(t, 2, merged.Concurrency)
	// Missing values fall back
	assert.Equal(t, "cand-default", merged.CandidateID)
	assert.Equal(t, 240, merged.TimeoutSeconds)
	assert.Equal(t, "key-from-file", merged.APIKey)
}
