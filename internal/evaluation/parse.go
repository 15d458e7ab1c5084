package evaluation

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/persona-evaluator/internal/llm"
	"github.com/jonathan/persona-evaluator/internal/schemas"
	"github.com/jonathan/persona-evaluator/internal/types"
)

// rawPayload mirrors the JSON contract the model is constrained to.
type rawPayload struct {
	CriterionScores []types.CriterionScore `json:"criterion_scores"`
	OverallAverage  *float64               `json:"overall_average"`
	Recommendation  string                 `json:"recommendation"`
}

// ParseEvaluation parses and validates a raw model payload against the
// persona's criterion contract. Failures are typed: MalformedJSON when the
// payload does not parse, SchemaViolation when it parses but breaks the
// contract.
func ParseEvaluation(p *types.Persona, raw string) (*types.PersonaEvaluation, error) {
	var payload rawPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &llm.EvalError{
			Kind:   llm.KindMalformedJSON,
			Detail: fmt.Sprintf("response is not valid JSON (content: %s)", truncate(raw, 200)),
			Cause:  err,
		}
	}

	schemaDoc, err := JSONSchema(p)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateJSONString(schemaDoc, raw); err != nil {
		return nil, &llm.EvalError{
			Kind:   llm.KindSchemaViolation,
			Detail: "response violates the criterion schema",
			Cause:  err,
		}
	}

	// The JSON schema checks shape and ranges; criterion coverage needs an
	// explicit pass because the declared names are dynamic per persona.
	seen := make(map[string]bool, len(payload.CriterionScores))
	for _, cs := range payload.CriterionScores {
		seen[cs.Name] = true
	}
	for _, c := range p.Criteria {
		if !seen[c.Name] {
			return nil, llm.NewEvalError(llm.KindSchemaViolation,
				fmt.Sprintf("response is missing required criterion %q", c.Name))
		}
	}

	// Keep only declared criteria, in declaration order, so downstream
	// aggregation and report tables are deterministic.
	byName := make(map[string]types.CriterionScore, len(payload.CriterionScores))
	for _, cs := range payload.CriterionScores {
		byName[cs.Name] = cs
	}
	ordered := make([]types.CriterionScore, 0, len(p.Criteria))
	for _, c := range p.Criteria {
		ordered = append(ordered, byName[c.Name])
	}

	return &types.PersonaEvaluation{
		Persona:              p,
		PersonaKey:           p.Key,
		CriterionScores:      ordered,
		ModelReportedAverage: payload.OverallAverage,
		ModelRecommendation:  payload.Recommendation,
	}, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
