// Package scoring turns raw persona evaluations into a single weighted
// composite score with an assessment tier and consensus analysis. All math
// here is deterministic and recomputed from criterion scores; the model's
// self-reported averages are never used.
package scoring

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/jonathan/persona-evaluator/internal/personas"
	"github.com/jonathan/persona-evaluator/internal/types"
)

// ErrNoSuccessfulEvaluations is returned when aggregation has nothing to
// aggregate: a run where every persona failed produces a typed error, not a
// zero score.
var ErrNoSuccessfulEvaluations = errors.New("no successful persona evaluations to aggregate")

// Options controls aggregation behavior.
type Options struct {
	// RenormalizeWeights divides the composite by the surviving weight mass
	// when personas are missing. Off by default: a missing persona lowers the
	// achievable maximum rather than inflating the survivors.
	RenormalizeWeights bool
}

// Consensus level thresholds on the persona-average spread.
const (
	highConsensusSpread   = 0.5
	mediumConsensusSpread = 1.0
)

// ProcessOutcomes derives a ProcessedPersonaResult from every successful
// outcome and records the failed personas with their failure kind.
func ProcessOutcomes(outcomes []types.EvaluationOutcome, registry *personas.Registry) ([]types.ProcessedPersonaResult, []types.MissingPersona) {
	var processed []types.ProcessedPersonaResult
	var missing []types.MissingPersona

	for i := range outcomes {
		outcome := &outcomes[i]
		if !outcome.Succeeded() {
			reason := "unknown failure"
			if outcome.Err != nil {
				reason = outcome.Err.Kind
			}
			missing = append(missing, types.MissingPersona{PersonaKey: outcome.PersonaKey, Reason: reason})
			continue
		}

		persona := outcome.Evaluation.Persona
		if persona == nil {
			persona = registry.Get(outcome.PersonaKey)
		}
		if persona == nil {
			missing = append(missing, types.MissingPersona{PersonaKey: outcome.PersonaKey, Reason: "persona not in registry"})
			continue
		}

		processed = append(processed, types.ProcessedPersonaResult{
			Persona:           persona,
			PersonaKey:        persona.Key,
			DisplayName:       persona.DisplayName,
			RecomputedAverage: RecomputeAverage(outcome.Evaluation.CriterionScores),
			CriterionScores:   outcome.Evaluation.CriterionScores,
			Weight:            persona.Weight,
			Recommendation:    outcome.Evaluation.ModelRecommendation,
		})
	}

	return processed, missing
}

// RecomputeAverage is the arithmetic mean of the criterion scores, rounded
// to two decimals.
func RecomputeAverage(scores []types.CriterionScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	values := make([]float64, 0, len(scores))
	for _, s := range scores {
		values = append(values, float64(s.Score))
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return round2(mean)
}

// Aggregate computes the composite result from all successful persona
// results. Weights are taken as configured; see Options.RenormalizeWeights
// for the partial-failure behavior.
func Aggregate(processed []types.ProcessedPersonaResult, missing []types.MissingPersona, opts Options) (*types.CompositeResult, error) {
	if len(processed) == 0 {
		return nil, fmt.Errorf("aggregation aborted: %w", ErrNoSuccessfulEvaluations)
	}

	weighted := 0.0
	weightMass := 0.0
	averages := make([]float64, 0, len(processed))
	strongest := &processed[0]
	weakest := &processed[0]

	for i := range processed {
		r := &processed[i]
		weighted += r.RecomputedAverage * r.Weight
		weightMass += r.Weight
		averages = append(averages, r.RecomputedAverage)
		if r.RecomputedAverage > strongest.RecomputedAverage {
			strongest = r
		}
		if r.RecomputedAverage < weakest.RecomputedAverage {
			weakest = r
		}
	}

	if opts.RenormalizeWeights && weightMass > 0 {
		weighted /= weightMass
	}
	composite := round2(weighted)

	maxAvg, err := stats.Max(averages)
	if err != nil {
		return nil, fmt.Errorf("failed to compute persona average spread: %w", err)
	}
	minAvg, err := stats.Min(averages)
	if err != nil {
		return nil, fmt.Errorf("failed to compute persona average spread: %w", err)
	}
	spread := round2(maxAvg - minAvg)

	tier := TierFor(composite)

	return &types.CompositeResult{
		WeightedScore:          composite,
		AssessmentTier:         tier.Name,
		Recommendation:         tier.Recommendation,
		StrongestPersona:       strongest.DisplayName,
		WeakestPersona:         weakest.DisplayName,
		VarianceAcrossPersonas: spread,
		ConsensusLevel:         consensusLevel(spread),
		MissingPersonas:        missing,
	}, nil
}

// consensusLevel labels the persona-average spread.
func consensusLevel(spread float64) string {
	switch {
	case spread <= highConsensusSpread:
		return "High"
	case spread <= mediumConsensusSpread:
		return "Medium"
	default:
		return "Low"
	}
}

func round2(v float64) float64 {
	rounded, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return rounded
}
