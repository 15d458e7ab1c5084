// Package types defines the shared data structures passed between the
// evaluation engine's components.
package types

// Criterion is one named dimension a persona scores a candidate on.
type Criterion struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Persona is a named evaluator viewpoint with its own scoring criteria and
// relative weight. Personas are immutable configuration, loaded once per run.
type Persona struct {
	Key         string `json:"key" validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`
	// Weight is the persona's share of the composite score. Weights across
	// enabled personas must sum to 1 (within a small tolerance).
	Weight float64 `json:"weight" validate:"gte=0,lte=1"`
	// Criteria is the ordered list of dimensions this persona scores.
	// Any persona may declare any criteria; the response schema and the
	// report table are both derived from this list at runtime.
	Criteria []Criterion `json:"criteria" validate:"required,min=1,dive"`
	// DomainKeywords is the reference keyword set used by the domain
	// classifier to route candidate priority keywords to this persona.
	DomainKeywords []string `json:"domain_keywords"`
	// PromptFragment is an optional persona-authored instruction block
	// appended to the evaluation prompt.
	PromptFragment string `json:"prompt_fragment"`
	Disabled       bool   `json:"disabled,omitempty"`
}

// CriterionNames returns the ordered criterion names for schema construction
// and report tables.
func (p *Persona) CriterionNames() []string {
	names := make([]string, 0, len(p.Criteria))
	for _, c := range p.Criteria {
		names = append(names, c.Name)
	}
	return names
}
