// Package evaluation builds persona evaluation prompts, enforces the
// criterion-shaped response contract, and orchestrates the per-persona model
// calls for a run.
package evaluation

import (
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/persona-evaluator/internal/types"
)

// ResponseSchema derives the genai response schema from a persona's declared
// criteria. Embedding it in the outbound request constrains the backend to
// return criterion-shaped JSON.
func ResponseSchema(p *types.Persona) *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"criterion_scores", "overall_average", "recommendation"},
		Properties: map[string]*genai.Schema{
			"criterion_scores": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"name", "score", "reasoning"},
					Properties: map[string]*genai.Schema{
						"name": {
							Type: genai.TypeString,
							Enum: p.CriterionNames(),
						},
						"score": {
							Type:        genai.TypeInteger,
							Description: "Integer score from 1 to 10",
						},
						"reasoning": {
							Type: genai.TypeString,
						},
					},
				},
			},
			"overall_average": {
				Type: genai.TypeNumber,
			},
			"recommendation": {
				Type: genai.TypeString,
			},
		},
	}
}

// JSONSchema derives the JSON Schema document used to post-validate the raw
// response payload. The backend-side constraint is advisory; this one is
// authoritative.
func JSONSchema(p *types.Persona) (string, error) {
	doc := map[string]any{
		"type":     "object",
		"required": []string{"criterion_scores", "recommendation"},
		"properties": map[string]any{
			"criterion_scores": map[string]any{
				"type":     "array",
				"minItems": len(p.Criteria),
				"items": map[string]any{
					"type":     "object",
					"required": []string{"name", "score", "reasoning"},
					"properties": map[string]any{
						"name":      map[string]any{"type": "string"},
						"score":     map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
						"reasoning": map[string]any{"type": "string"},
					},
				},
			},
			"overall_average": map[string]any{"type": "number"},
			"recommendation":  map[string]any{"type": "string"},
		},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response schema for persona %s: %w", p.Key, err)
	}
	return string(data), nil
}
