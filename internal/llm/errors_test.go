package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &EvalError{Kind: KindBackendUnreachable, Detail: "request failed", Cause: cause}

	assert.Contains(t, err.Error(), "backend_unreachable")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindTimeout, KindOf(NewEvalError(KindTimeout, "deadline")))

	wrapped := fmt.Errorf("call failed: %w", NewEvalError(KindSchemaViolation, "missing criterion"))
	assert.Equal(t, KindSchemaViolation, KindOf(wrapped))

	assert.Equal(t, KindBackendUnreachable, KindOf(errors.New("plain error")))
}

func TestClassifyTransportError_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := classifyTransportError(ctx, ctx.Err())
	require.NotNil(t, err)
	assert.Equal(t, KindTimeout, err.Kind)
}

func TestClassifyTransportError_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := classifyTransportError(ctx, ctx.Err())
	require.NotNil(t, err)
	assert.Equal(t, KindCancelled, err.Kind)
}

func TestClassifyTransportError_Unreachable(t *testing.T) {
	err := classifyTransportError(context.Background(), errors.New("dial tcp: connection refused"))
	require.NotNil(t, err)
	assert.Equal(t, KindBackendUnreachable, err.Kind)
}
