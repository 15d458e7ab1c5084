package evaluation

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/persona-evaluator/internal/llm"
	"github.com/jonathan/persona-evaluator/internal/logger"
	"github.com/jonathan/persona-evaluator/internal/personas"
	"github.com/jonathan/persona-evaluator/internal/types"
)

// DefaultConcurrency bounds simultaneous in-flight model calls. The bound
// exists because the inference backend has finite memory and throughput.
const DefaultConcurrency = 4

// logDetailLimit bounds error excerpts in log lines; failure details can
// embed response payload dumps.
const logDetailLimit = 200

// ErrRunInProgress is returned when a second run is started for a candidate
// that already has one in flight.
var ErrRunInProgress = errors.New("an evaluation run is already in progress for this candidate")

// RunParams configures one orchestrator run. Model selection and temperature
// apply uniformly to all personas in the run.
type RunParams struct {
	CandidateID      string
	CandidateProfile string
	JobPosting       string
	// DomainContexts maps persona key to the classifier's context snippet.
	DomainContexts map[string]string
	Model          string
	Temperature    float32
	Concurrency    int
	CallTimeout    time.Duration
}

// RunResult is the orchestrator's output: always one outcome per enabled
// persona, in registry declaration order, regardless of failures.
type RunResult struct {
	Status   types.RunStatus
	Outcomes []types.EvaluationOutcome
}

// Orchestrator fans one model call out per enabled persona under a bounded
// worker pool and collects every outcome. It is not reentrant across
// overlapping runs for the same candidate.
type Orchestrator struct {
	client   llm.Client
	registry *personas.Registry
	log      *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates an orchestrator. A nil logger disables logging.
func New(client llm.Client, registry *personas.Registry, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		client:   client,
		registry: registry,
		log:      log,
		inFlight: make(map[string]struct{}),
	}
}

// Run evaluates the candidate against every enabled persona. Per-persona
// failures are captured in their outcomes, never returned as the run error;
// the only run-level errors are the reentrance rejection and a completely
// unusable parameter set.
func (o *Orchestrator) Run(ctx context.Context, params RunParams) (*RunResult, error) {
	if params.Concurrency < 1 {
		params.Concurrency = DefaultConcurrency
	}
	if params.CallTimeout <= 0 {
		params.CallTimeout = llm.DefaultCallTimeout
	}
	if params.Model == "" {
		params.Model = llm.DefaultModel
	}

	lockKey := params.CandidateID
	if lockKey == "" {
		lockKey = "default"
	}
	if !o.acquire(lockKey) {
		return nil, ErrRunInProgress
	}
	defer o.release(lockKey)

	enabled := o.registry.Enabled()
	outcomes := make([]types.EvaluationOutcome, len(enabled))

	o.log.Info("starting evaluation run",
		zap.String("candidate", lockKey),
		zap.String("model", params.Model),
		zap.Int("personas", len(enabled)),
		zap.Int("concurrency", params.Concurrency))

	var g errgroup.Group
	g.SetLimit(params.Concurrency)
	for i, p := range enabled {
		i, p := i, p
		g.Go(func() error {
			outcomes[i] = o.evaluatePersona(ctx, p, params)
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	result := &RunResult{
		Status:   statusFor(outcomes),
		Outcomes: outcomes,
	}

	o.log.Info("evaluation run finished",
		zap.String("candidate", lockKey),
		zap.String("status", string(result.Status)))

	return result, nil
}

// evaluatePersona drives one persona from prompt construction through
// validated success or a typed failure. Every exit path yields an outcome;
// nothing is silently dropped.
func (o *Orchestrator) evaluatePersona(ctx context.Context, p *types.Persona, params RunParams) types.EvaluationOutcome {
	outcome := types.EvaluationOutcome{PersonaKey: p.Key}

	if err := ctx.Err(); err != nil {
		outcome.Err = &types.OutcomeError{
			Kind:   string(llm.KindCancelled),
			Detail: "run cancelled before the persona was dispatched",
		}
		return outcome
	}

	req := types.EvaluationRequest{
		Persona:          p,
		CandidateProfile: params.CandidateProfile,
		JobPosting:       params.JobPosting,
		DomainContext:    params.DomainContexts[p.Key],
		ModelName:        params.Model,
		Temperature:      params.Temperature,
	}
	prompt := BuildPrompt(&req)

	callCtx, cancel := context.WithTimeout(ctx, params.CallTimeout)
	defer cancel()

	start := time.Now()
	raw, err := o.client.GenerateJSON(callCtx, llm.Request{
		Prompt:      prompt,
		Schema:      ResponseSchema(p),
		Model:       params.Model,
		Temperature: params.Temperature,
	})
	if err != nil {
		o.log.Warn("persona model call failed",
			zap.String("persona", p.Key),
			zap.String("kind", string(llm.KindOf(err))),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logger.TruncateForLog(err.Error(), logDetailLimit)))
		outcome.Err = &types.OutcomeError{Kind: string(llm.KindOf(err)), Detail: err.Error()}
		return outcome
	}

	eval, err := ParseEvaluation(p, raw)
	if err != nil {
		o.log.Warn("persona response rejected",
			zap.String("persona", p.Key),
			zap.String("kind", string(llm.KindOf(err))),
			zap.String("error", logger.TruncateForLog(err.Error(), logDetailLimit)))
		outcome.Err = &types.OutcomeError{Kind: string(llm.KindOf(err)), Detail: err.Error()}
		return outcome
	}

	o.log.Info("persona evaluated",
		zap.String("persona", p.Key),
		zap.Int("criteria", len(eval.CriterionScores)),
		zap.Duration("elapsed", time.Since(start)))

	outcome.Evaluation = eval
	return outcome
}

// statusFor derives the run status from the outcome set: Success when every
// persona succeeded, Failure when none did, PartialSuccess otherwise.
func statusFor(outcomes []types.EvaluationOutcome) types.RunStatus {
	successes := 0
	for i := range outcomes {
		if outcomes[i].Succeeded() {
			successes++
		}
	}
	switch successes {
	case len(outcomes):
		return types.RunSuccess
	case 0:
		return types.RunFailure
	default:
		return types.RunPartialSuccess
	}
}

func (o *Orchestrator) acquire(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inFlight[key]; busy {
		return false
	}
	o.inFlight[key] = struct{}{}
	return true
}

func (o *Orchestrator) release(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, key)
}
