package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/persona-evaluator/internal/types"
)

func scores(values ...int) []types.CriterionScore {
	out := make([]types.CriterionScore, 0, len(values))
	for _, v := range values {
		out = append(out, types.CriterionScore{Name: "criterion", Score: v, Reasoning: "r"})
	}
	return out
}

func processedResult(key string, weight float64, criterionScores ...int) types.ProcessedPersonaResult {
	cs := scores(criterionScores...)
	return types.ProcessedPersonaResult{
		PersonaKey:        key,
		DisplayName:       key,
		RecomputedAverage: RecomputeAverage(cs),
		CriterionScores:   cs,
		Weight:            weight,
	}
}

func TestRecomputeAverage(t *testing.T) {
	assert.Equal(t, 7.5, RecomputeAverage(scores(7, 8)))
	assert.Equal(t, 7.67, RecomputeAverage(scores(7, 8, 8)))
	assert.Equal(t, 0.0, RecomputeAverage(nil))
}

func TestRecomputeAverage_IgnoresModelReportedAverage(t *testing.T) {
	// The model claims 9.5; the recomputed mean of 6 and 7 is 6.5.
	claimed := 9.5
	eval := types.PersonaEvaluation{
		CriterionScores:      scores(6, 7),
		ModelReportedAverage: &claimed,
	}

	recomputed := RecomputeAverage(eval.CriterionScores)
	assert.Equal(t, 6.5, recomputed)
	assert.NotEqual(t, *eval.ModelReportedAverage, recomputed)
}

func TestAggregate_WeightedComposite(t *testing.T) {
	processed := []types.ProcessedPersonaResult{
		processedResult("alpha", 0.5, 8, 8),   // avg 8.0
		processedResult("beta", 0.3, 6, 6),    // avg 6.0
		processedResult("gamma", 0.2, 10, 10), // avg 10.0
	}

	composite, err := Aggregate(processed, nil, Options{})
	require.NoError(t, err)

	// 8.0*0.5 + 6.0*0.3 + 10.0*0.2 = 7.8
	assert.Equal(t, 7.8, composite.WeightedScore)
	assert.Equal(t, "Below-Viable", composite.AssessmentTier)
	assert.Equal(t, "gamma", composite.StrongestPersona)
	assert.Equal(t, "beta", composite.WeakestPersona)
	assert.Equal(t, 4.0, composite.VarianceAcrossPersonas)
	assert.Equal(t, "Low", composite.ConsensusLevel)
}

func TestAggregate_UniformSevens(t *testing.T) {
	processed := []types.ProcessedPersonaResult{
		processedResult("alpha", 0.4, 7, 7, 7),
		processedResult("beta", 0.35, 7, 7),
		processedResult("gamma", 0.25, 7, 7, 7, 7),
	}

	composite, err := Aggregate(processed, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, 7.0, composite.WeightedScore)
	assert.Equal(t, "Below-Viable", composite.AssessmentTier)
	assert.Equal(t, 0.0, composite.VarianceAcrossPersonas)
	assert.Equal(t, "High", composite.ConsensusLevel)
}

func TestAggregate_MissingPersonaWeightsNotRenormalized(t *testing.T) {
	processed := []types.ProcessedPersonaResult{
		processedResult("alpha", 0.5, 8, 8),
		processedResult("beta", 0.3, 8, 8),
	}
	missing := []types.MissingPersona{{PersonaKey: "gamma", Reason: "timeout"}}

	composite, err := Aggregate(processed, missing, Options{})
	require.NoError(t, err)

	// 8.0*0.5 + 8.0*0.3 = 6.4: the missing 0.2 weight is simply absent,
	// lowering the achievable maximum.
	assert.Equal(t, 6.4, composite.WeightedScore)
	require.Len(t, composite.MissingPersonas, 1)
	assert.Equal(t, "gamma", composite.MissingPersonas[0].PersonaKey)
	assert.Equal(t, "timeout", composite.MissingPersonas[0].Reason)
}

func TestAggregate_RenormalizeOption(t *testing.T) {
	processed := []types.ProcessedPersonaResult{
		processedResult("alpha", 0.5, 8, 8),
		processedResult("beta", 0.3, 8, 8),
	}

	composite, err := Aggregate(processed, nil, Options{RenormalizeWeights: true})
	require.NoError(t, err)

	// 6.4 / 0.8 = 8.0 when renormalization is explicitly requested.
	assert.Equal(t, 8.0, composite.WeightedScore)
}

func TestAggregate_CompositeMonotonicity(t *testing.T) {
	base := []types.ProcessedPersonaResult{
		processedResult("alpha", 0.5, 6, 6),
		processedResult("beta", 0.5, 7, 7),
	}
	baseComposite, err := Aggregate(base, nil, Options{})
	require.NoError(t, err)

	// Raise a single persona's scores, holding the other fixed.
	raised := []types.ProcessedPersonaResult{
		processedResult("alpha", 0.5, 8, 8),
		processedResult("beta", 0.5, 7, 7),
	}
	raisedComposite, err := Aggregate(raised, nil, Options{})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, raisedComposite.WeightedScore, baseComposite.WeightedScore)
}

func TestAggregate_NoSuccesses(t *testing.T) {
	_, err := Aggregate(nil, []types.MissingPersona{{PersonaKey: "alpha", Reason: "backend_unreachable"}}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSuccessfulEvaluations)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		composite float64
		tier      string
	}{
		{9.2, "Exceptional"},
		{8.5, "Exceptional"},
		{8.49, "Viable"},
		{8.0, "Viable"},
		{7.0, "Below-Viable"},
		{6.99, "Weak"},
		{5.0, "Weak"},
		{4.99, "Poor"},
		{1.0, "Poor"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tier, TierFor(tt.composite).Name, "composite %.2f", tt.composite)
	}
}

func TestConsensusLevel(t *testing.T) {
	assert.Equal(t, "High", consensusLevel(0.0))
	assert.Equal(t, "High", consensusLevel(0.5))
	assert.Equal(t, "Medium", consensusLevel(0.51))
	assert.Equal(t, "Medium", consensusLevel(1.0))
	assert.Equal(t, "Low", consensusLevel(1.01))
}
