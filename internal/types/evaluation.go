package types

// EvaluationRequest carries everything needed for one persona's model call.
// Created per persona per run; consumed once.
type EvaluationRequest struct {
	Persona          *Persona
	CandidateProfile string
	JobPosting       string
	// DomainContext is the classifier-produced snippet of priority keywords
	// routed to this persona's domain. Empty when nothing matched.
	DomainContext string
	ModelName     string
	Temperature   float32
}

// CriterionScore is the model's score and reasoning for one criterion.
type CriterionScore struct {
	Name      string `json:"name"`
	Score     int    `json:"score"` // 1..10
	Reasoning string `json:"reasoning"`
}

// PersonaEvaluation is the validated result of one persona's model call.
// Immutable after creation. CriterionScores is non-empty on success.
type PersonaEvaluation struct {
	Persona         *Persona         `json:"-"`
	PersonaKey      string           `json:"persona_key"`
	CriterionScores []CriterionScore `json:"criterion_scores"`
	// ModelReportedAverage is the model's own arithmetic, retained for
	// display and audit only. Composite math never uses it.
	ModelReportedAverage *float64 `json:"model_reported_average,omitempty"`
	ModelRecommendation  string   `json:"model_recommendation"`
}

// EvaluationOutcome is the tagged union the orchestrator produces per enabled
// persona: exactly one of Evaluation or Err is set.
type EvaluationOutcome struct {
	PersonaKey string             `json:"persona_key"`
	Evaluation *PersonaEvaluation `json:"evaluation,omitempty"`
	Err        *OutcomeError      `json:"error,omitempty"`
}

// OutcomeError is the serializable failure half of an EvaluationOutcome.
type OutcomeError struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Succeeded reports whether the outcome carries a validated evaluation.
func (o *EvaluationOutcome) Succeeded() bool {
	return o.Evaluation != nil && o.Err == nil
}

// RunStatus summarizes an orchestrator run across all enabled personas.
type RunStatus string

const (
	// RunSuccess means every enabled persona produced a validated evaluation.
	RunSuccess RunStatus = "success"
	// RunPartialSuccess means at least one persona succeeded and at least one failed.
	RunPartialSuccess RunStatus = "partial_success"
	// RunFailure means no persona produced a usable evaluation.
	RunFailure RunStatus = "failure"
)

// ProcessedPersonaResult is the aggregator's derived view of one successful
// evaluation. Never model-authored.
type ProcessedPersonaResult struct {
	Persona *Persona `json:"-"`

	PersonaKey  string `json:"persona_key"`
	DisplayName string `json:"display_name"`
	// RecomputedAverage is the arithmetic mean of the criterion scores,
	// rounded to two decimals. The model's self-reported average is ignored.
	RecomputedAverage float64          `json:"recomputed_average"`
	CriterionScores   []CriterionScore `json:"criterion_scores"`
	Weight            float64          `json:"weight"`
	Recommendation    string           `json:"recommendation"`
}

// CompositeResult is the single aggregated result of a completed run.
// Created once from all successful ProcessedPersonaResults; read-only after.
type CompositeResult struct {
	WeightedScore    float64 `json:"weighted_score"`
	AssessmentTier   string  `json:"assessment_tier"`
	Recommendation   string  `json:"recommendation"`
	StrongestPersona string  `json:"strongest_persona"`
	WeakestPersona   string  `json:"weakest_persona"`
	// VarianceAcrossPersonas is the spread between the highest and lowest
	// recomputed persona averages.
	VarianceAcrossPersonas float64 `json:"variance_across_personas"`
	ConsensusLevel         string  `json:"consensus_level"`
	// MissingPersonas lists enabled personas that produced no evaluation,
	// with the failure kind that excluded them.
	MissingPersonas []MissingPersona     `json:"missing_personas,omitempty"`
	Insights        *QualitativeInsights `json:"insights,omitempty"`
}

// MissingPersona records a persona absent from aggregation and why.
type MissingPersona struct {
	PersonaKey string `json:"persona_key"`
	Reason     string `json:"reason"`
}
