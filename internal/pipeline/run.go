// Package pipeline provides the high-level orchestration for the candidate evaluation process.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/persona-evaluator/internal/classify"
	"github.com/jonathan/persona-evaluator/internal/db"
	"github.com/jonathan/persona-evaluator/internal/evaluation"
	"github.com/jonathan/persona-evaluator/internal/insights"
	"github.com/jonathan/persona-evaluator/internal/llm"
	"github.com/jonathan/persona-evaluator/internal/observability"
	"github.com/jonathan/persona-evaluator/internal/personas"
	"github.com/jonathan/persona-evaluator/internal/report"
	"github.com/jonathan/persona-evaluator/internal/scoring"
	"github.com/jonathan/persona-evaluator/internal/types"
)

// ErrRunFailed is returned when every persona evaluation failed. No report is
// produced in that case.
var ErrRunFailed = errors.New("evaluation run failed: no persona produced a usable evaluation")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath   string
	JobPath      string
	KeywordsPath string // Optional: ranked keywords JSON for domain routing
	PersonasDir  string // Optional: overrides the built-in persona set
	CandidateID  string

	Model          string
	Temperature    float32
	Concurrency    int
	TimeoutSeconds int

	APIKey      string
	Verbose     bool
	DatabaseURL string

	// RenormalizeWeights rescales the composite by the surviving weight mass
	// when personas fail. Off by default.
	RenormalizeWeights bool

	// Client overrides the Gemini client; used by tests. When nil a real
	// client is built from APIKey.
	Client llm.Client

	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Result holds everything a completed pipeline run produced.
type Result struct {
	Status    types.RunStatus
	Outcomes  []types.EvaluationOutcome
	Processed []types.ProcessedPersonaResult
	Composite *types.CompositeResult
	Report    string
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// RunPipeline orchestrates the full evaluation pipeline
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			log.Warn("failed to connect to database, continuing without persistence", zap.Error(err))
		} else {
			defer database.Close()
		}
	}

	// Step 1: Load persona registry
	var registry *personas.Registry
	var err error
	if opts.PersonasDir != "" {
		fmt.Printf("Step 1/6: Loading personas from %s...\n", opts.PersonasDir)
		registry, err = personas.LoadDir(opts.PersonasDir)
	} else {
		fmt.Printf("Step 1/6: Loading built-in personas...\n")
		registry, err = personas.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("loading personas failed: %w", err)
	}

	// Step 2: Read candidate and job inputs
	fmt.Printf("Step 2/6: Reading candidate and job inputs...\n")
	resume, err := os.ReadFile(opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("reading resume failed: %w", err)
	}
	job, err := os.ReadFile(opts.JobPath)
	if err != nil {
		return nil, fmt.Errorf("reading job posting failed: %w", err)
	}

	if database != nil {
		runID, err = database.CreateRun(ctx, opts.CandidateID, opts.Model)
		if err != nil {
			log.Warn("failed to create database run", zap.Error(err))
		} else {
			_ = database.SaveTextArtifact(ctx, runID, db.StepCandidateProfile, db.CategoryInput, string(resume))
			_ = database.SaveTextArtifact(ctx, runID, db.StepJobPosting, db.CategoryInput, string(job))
		}
	}

	// Step 3: Route priority keywords to persona domains
	domainContexts := map[string]string{}
	if opts.KeywordsPath != "" {
		fmt.Printf("Step 3/6: Routing priority keywords to persona domains...\n")
		keywords, err := loadKeywords(opts.KeywordsPath)
		if err != nil {
			return nil, fmt.Errorf("loading keywords failed: %w", err)
		}
		assignments := classify.AssignKeywords(keywords, registry)
		domainContexts = classify.BuildDomainContexts(assignments)
		if opts.Verbose {
			printer.PrintKeywordAssignments(assignments)
		}
		emitProgress(&opts, db.StepKeywordAssignments, db.CategoryDerived,
			fmt.Sprintf("Routed %d of %d keywords", len(assignments), len(keywords)), assignments)
		if database != nil && runID != uuid.Nil {
			_ = database.SaveArtifact(ctx, runID, db.StepKeywordAssignments, db.CategoryDerived, assignments)
		}
	} else {
		fmt.Printf("Step 3/6: No keywords file provided, skipping domain routing...\n")
	}

	// Step 4: Evaluate the candidate with every enabled persona
	fmt.Printf("Step 4/6: Evaluating candidate with %d personas...\n", registry.Len())
	client := opts.Client
	if client == nil {
		client, err = llm.NewClient(ctx, opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("creating model client failed: %w", err)
		}
		defer client.Close()
	}

	orchestrator := evaluation.New(client, registry, log)
	runResult, err := orchestrator.Run(ctx, evaluation.RunParams{
		CandidateID:      opts.CandidateID,
		CandidateProfile: string(resume),
		JobPosting:       string(job),
		DomainContexts:   domainContexts,
		Model:            opts.Model,
		Temperature:      opts.Temperature,
		Concurrency:      opts.Concurrency,
		CallTimeout:      callTimeout(opts.TimeoutSeconds),
	})
	if err != nil {
		return nil, fmt.Errorf("evaluation run failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintOutcomes(runResult.Outcomes)
	}
	emitProgress(&opts, db.StepOutcomes, db.CategoryModel,
		fmt.Sprintf("Evaluation finished with status %s", runResult.Status), runResult.Outcomes)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepOutcomes, db.CategoryModel, runResult.Outcomes)
	}

	if runResult.Status == types.RunFailure {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, string(types.RunFailure))
		}
		return nil, ErrRunFailed
	}

	// Step 5: Aggregate scores and extract insights
	fmt.Printf("Step 5/6: Aggregating scores and extracting insights...\n")
	processed, missing := scoring.ProcessOutcomes(runResult.Outcomes, registry)
	composite, err := scoring.Aggregate(processed, missing, scoring.Options{
		RenormalizeWeights: opts.RenormalizeWeights,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}
	composite.Insights = insights.Extract(processed)
	if opts.Verbose {
		printer.PrintComposite(composite)
		printer.PrintInsights(composite.Insights)
	}
	emitProgress(&opts, db.StepComposite, db.CategoryDerived,
		fmt.Sprintf("Composite score %.2f (%s)", composite.WeightedScore, composite.AssessmentTier), composite)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepComposite, db.CategoryDerived, composite)
		_ = database.SaveArtifact(ctx, runID, db.StepInsights, db.CategoryDerived, composite.Insights)
	}

	// Step 6: Render the report
	fmt.Printf("Step 6/6: Rendering evaluation report...\n")
	rendered := report.Render(opts.CandidateID, composite, processed)
	emitProgress(&opts, db.StepReport, db.CategoryRendered, "Rendered markdown report", nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveTextArtifact(ctx, runID, db.StepReport, db.CategoryRendered, rendered)
		_ = database.CompleteRun(ctx, runID, string(runResult.Status))
	}

	return &Result{
		Status:    runResult.Status,
		Outcomes:  runResult.Outcomes,
		Processed: processed,
		Composite: composite,
		Report:    rendered,
	}, nil
}

// callTimeout converts the configured per-call timeout to a duration. Zero
// lets the orchestrator apply its default.
func callTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// loadKeywords reads a ranked keywords JSON file: an array of objects with
// "keyword" and "score" fields.
func loadKeywords(path string) ([]classify.RankedKeyword, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file %s: %w", path, err)
	}

	var keywords []classify.RankedKeyword
	if err := json.Unmarshal(data, &keywords); err != nil {
		return nil, fmt.Errorf("failed to parse keywords JSON: %w", err)
	}
	return keywords, nil
}
