package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoreSchema = `{
	"type": "object",
	"required": ["score", "reasoning"],
	"properties": {
		"score": {"type": "integer", "minimum": 1, "maximum": 10},
		"reasoning": {"type": "string"}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(scoreSchema, `{"score": 7, "reasoning": "solid evidence"}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_MissingRequiredField(t *testing.T) {
	err := ValidateJSONString(scoreSchema, `{"score": 7}`)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, err.Error(), "reasoning")
}

func TestValidateJSONString_OutOfRange(t *testing.T) {
	err := ValidateJSONString(scoreSchema, `{"score": 11, "reasoning": "x"}`)
	require.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": nonsense`, `{}`)
	require.Error(t, err)

	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}
