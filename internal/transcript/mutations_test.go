package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	apperrors "github.com/callscope/callscope/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitTranscribeEvent(t *testing.T) {
	var capturedVariables map[string]any
	executor := &mockExecutor{
		execFunc: func(_ context.Context, _ string, _ any, variables map[string]any) error {
			capturedVariables = variables
			return nil
		},
	}

	item := json.RawMessage(`{"CallId": "call-1", "UtteranceEvent": {"Transcript": "hello"}}`)

	submitted, err := SubmitTranscribeEvent(context.Background(), executor, item)
	require.NoError(t, err)

	// The item passes through unchanged; the mutation takes it as its input.
	assert.Equal(t, item, submitted)
	require.Contains(t, capturedVariables, "input")
	assert.Equal(t, item, capturedVariables["input"])
}

func TestSubmitTranscribeEventExecutorError(t *testing.T) {
	executor := &mockExecutor{
		execFunc: func(context.Context, string, any, map[string]any) error {
			return apperrors.ErrUpstreamError("AppSync mutation failed", fmt.Errorf("unauthorized"))
		},
	}

	_, err := SubmitTranscribeEvent(context.Background(), executor, json.RawMessage(`{"CallId": "call-1"}`))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstreamError, apperrors.GetErrorCode(err))
}

func TestSubmitContactLensEvent(t *testing.T) {
	executor := &mockExecutor{}

	item := json.RawMessage(`{"CallId": "call-1", "CategoryEvent": {"MatchedCategories": []}}`)

	submitted, err := SubmitContactLensEvent(context.Background(), executor, item)
	require.NoError(t, err)
	assert.Equal(t, item, submitted)

	require.Len(t, executor.mutations, 1)
	assert.Contains(t, executor.mutations[0], "addContactLensSegment")
}
