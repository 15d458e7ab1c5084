package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ExistingPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("evaluation.json", "persona-evaluation")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.PersonaName}}")
	assert.Contains(t, prompt, "{{.CriteriaList}}")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("evaluation.json", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "anything")
	require.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("evaluation.json", "does-not-exist")
	})
}

func TestFormat(t *testing.T) {
	result := Format("Hello {{.Name}}, scoring {{.Count}} criteria", map[string]string{
		"Name":  "Technical Lead",
		"Count": "4",
	})
	assert.Equal(t, "Hello Technical Lead, scoring 4 criteria", result)
}

func TestFormat_UnreplacedPlaceholderSurvives(t *testing.T) {
	result := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x and {{.Unknown}}", result)
}
