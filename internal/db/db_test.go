package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactStepConstants(t *testing.T) {
	// Verify step constants are defined
	steps := []string{
		StepCandidateProfile,
		StepJobPosting,
		StepKeywordAssignments,
		StepOutcomes,
		StepComposite,
		StepInsights,
		StepReport,
	}

	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
	}
}

func TestRunType(t *testing.T) {
	// Verify Run struct can be instantiated
	run := Run{
		CandidateID: "cand-42",
		Model:       "gemini-2.5-flash",
		Status:      "running",
	}

	assert.Equal(t, "cand-42", run.CandidateID)
	assert.Equal(t, "gemini-2.5-flash", run.Model)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
}
