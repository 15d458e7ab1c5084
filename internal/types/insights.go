package types

// ThemedInsight is one qualitative observation mined from a criterion's
// reasoning text, tagged with its coarse theme and origin persona.
type ThemedInsight struct {
	Theme   string  `json:"theme"`
	Insight string  `json:"insight"`
	Persona string  `json:"persona"`
	Score   float64 `json:"score"`
}

// ThemeConsensus is a theme mentioned by enough personas to count as a
// cross-persona signal.
type ThemeConsensus struct {
	Theme        string  `json:"theme"`
	PersonaCount int     `json:"persona_count"`
	AverageScore float64 `json:"average_score"`
	Consensus    string  `json:"consensus"`
}

// QualitativeInsights is the insight extractor's output for one run.
type QualitativeInsights struct {
	Strengths        []ThemedInsight  `json:"strengths"`
	Concerns         []ThemedInsight  `json:"concerns"`
	SpecificExamples []string         `json:"specific_examples"`
	ConsensusThemes  []ThemeConsensus `json:"consensus_themes"`
}
