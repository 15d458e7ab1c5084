// Package llm - errors.go defines the typed failure taxonomy for model calls.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed persona evaluation. Per-persona failures are
// captured, never thrown past the orchestrator boundary.
type ErrorKind string

const (
	// KindBackendUnreachable is a network or connection failure. Retryable by
	// the caller, not by this subsystem.
	KindBackendUnreachable ErrorKind = "backend_unreachable"
	// KindTimeout means the call exceeded its deadline. Counted as a failed
	// persona, not retried automatically.
	KindTimeout ErrorKind = "timeout"
	// KindMalformedJSON means the backend returned non-parseable output.
	KindMalformedJSON ErrorKind = "malformed_json"
	// KindSchemaViolation means the response parsed but is missing required
	// criterion fields or carries out-of-range values.
	KindSchemaViolation ErrorKind = "schema_violation"
	// KindCancelled means run-level cancellation propagated to the call.
	KindCancelled ErrorKind = "cancelled"
)

// EvalError is a typed model-call failure.
type EvalError struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

func (e *EvalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *EvalError) Unwrap() error {
	return e.Cause
}

// NewEvalError builds an EvalError without a cause.
func NewEvalError(kind ErrorKind, detail string) *EvalError {
	return &EvalError{Kind: kind, Detail: detail}
}

// KindOf extracts the ErrorKind from err, defaulting to BackendUnreachable
// for untyped failures.
func KindOf(err error) ErrorKind {
	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Kind
	}
	return KindBackendUnreachable
}

// classifyTransportError maps a transport-level failure to the taxonomy,
// consulting the call context to distinguish timeouts and cancellation from
// plain connectivity failures.
func classifyTransportError(ctx context.Context, err error) *EvalError {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &EvalError{Kind: KindTimeout, Detail: "model call exceeded its deadline", Cause: err}
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &EvalError{Kind: KindCancelled, Detail: "model call cancelled", Cause: err}
	default:
		return &EvalError{Kind: KindBackendUnreachable, Detail: "model backend request failed", Cause: err}
	}
}
