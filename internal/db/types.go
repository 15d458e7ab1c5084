package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents an evaluation run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	CandidateID string     `json:"candidate_id"`
	Model       string     `json:"model"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ArtifactStep constants for known artifact types
const (
	StepCandidateProfile   = "candidate_profile"
	StepJobPosting         = "job_posting"
	StepKeywordAssignments = "keyword_assignments"
	StepOutcomes           = "outcomes"
	StepComposite          = "composite"
	StepInsights           = "insights"
	StepReport             = "report"
)

// Artifact categories group steps by what produced them.
const (
	CategoryInput    = "input"
	CategoryDerived  = "derived"
	CategoryModel    = "model"
	CategoryRendered = "rendered"
)
