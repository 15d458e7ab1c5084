package personas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	reg, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, 5, reg.Len())

	sum := 0.0
	for _, p := range reg.Enabled() {
		assert.NotEmpty(t, p.Key)
		assert.NotEmpty(t, p.DisplayName)
		assert.NotEmpty(t, p.Criteria)
		sum += p.Weight
	}
	assert.InDelta(t, 1.0, sum, 0.001)
}

func TestLoadDefault_DeclarationOrder(t *testing.T) {
	reg, err := LoadDefault()
	require.NoError(t, err)

	keys := make([]string, 0, reg.Len())
	for _, p := range reg.Enabled() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"technical_lead", "engineering_manager", "hr_recruiter", "domain_expert", "executive"}, keys)
}

func TestGet(t *testing.T) {
	reg, err := LoadDefault()
	require.NoError(t, err)

	assert.NotNil(t, reg.Get("technical_lead"))
	assert.Nil(t, reg.Get("unknown_persona"))
}

func TestLoadDir_WeightSumMismatch(t *testing.T) {
	dir := t.TempDir()
	writePersonaFile(t, dir, "bad.json", `[
		{"key": "a", "display_name": "A", "weight": 0.5, "criteria": [{"name": "x"}]},
		{"key": "b", "display_name": "B", "weight": 0.3, "criteria": [{"name": "y"}]}
	]`)

	_, err := LoadDir(dir)
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "weights sum")
}

func TestLoadDir_DuplicateKey(t *testing.T) {
	dir := t.TempDir()
	writePersonaFile(t, dir, "dup.json", `[
		{"key": "a", "display_name": "A", "weight": 0.5, "criteria": [{"name": "x"}]},
		{"key": "a", "display_name": "A again", "weight": 0.5, "criteria": [{"name": "y"}]}
	]`)

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate persona key")
}

func TestLoadDir_MissingCriteria(t *testing.T) {
	dir := t.TempDir()
	writePersonaFile(t, dir, "empty.json", `{"key": "a", "display_name": "A", "weight": 1.0, "criteria": []}`)

	_, err := LoadDir(dir)
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadDir_DisabledPersonaExcluded(t *testing.T) {
	dir := t.TempDir()
	writePersonaFile(t, dir, "personas.json", `[
		{"key": "a", "display_name": "A", "weight": 1.0, "criteria": [{"name": "x"}]},
		{"key": "b", "display_name": "B", "weight": 0.9, "criteria": [{"name": "y"}], "disabled": true}
	]`)

	reg, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Nil(t, reg.Get("b"))
}

func TestLoadDir_SinglePersonaObject(t *testing.T) {
	dir := t.TempDir()
	writePersonaFile(t, dir, "solo.json", `{"key": "solo", "display_name": "Solo", "weight": 1.0, "criteria": [{"name": "x"}]}`)

	reg, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}

func TestLoadDir_EmptyDir(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no persona files")
}

func writePersonaFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
