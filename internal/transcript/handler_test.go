package transcript

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/callscope/callscope/internal/api"
	"github.com/callscope/callscope/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(executor *mockExecutor, repo *mockStateRepository) *Handler {
	return &Handler{
		executor:   executor,
		mutationFn: SubmitTranscribeEvent,
		stateRepo:  repo,
		logger:     testutil.SilentLogger(),
	}
}

func TestHandle(t *testing.T) {
	handler := newTestHandler(&mockExecutor{}, &mockStateRepository{})

	event := windowEvent(nil,
		testutil.TranscriptItem("call-1", "hello", "AGENT", false),
		testutil.TranscriptItem("call-1", "hi", "CUSTOMER", false),
		testutil.TranscriptItem("call-2", "good morning", "AGENT", false),
	)

	response, err := handler.Handle(context.Background(), event)
	require.NoError(t, err)

	state := response.State
	assert.NotEmpty(t, state[windowIDStateKey])

	var aggregate api.CallAggregate
	require.NoError(t, json.Unmarshal([]byte(state["call-1"]), &aggregate))
	assert.Equal(t, 2, aggregate.SegmentCount)

	require.NoError(t, json.Unmarshal([]byte(state["call-2"]), &aggregate))
	assert.Equal(t, 1, aggregate.SegmentCount)
}

func TestHandleBadRecordDoesNotAffectState(t *testing.T) {
	handler := newTestHandler(&mockExecutor{}, &mockStateRepository{})

	event := windowEvent(nil,
		testutil.TranscriptItem("call-1", "hello", "AGENT", false),
		json.RawMessage("not json"),
	)

	response, err := handler.Handle(context.Background(), event)

	// Processing errors are logged, never returned.
	require.NoError(t, err)

	var aggregate api.CallAggregate
	require.NoError(t, json.Unmarshal([]byte(response.State["call-1"]), &aggregate))
	assert.Equal(t, 1, aggregate.SegmentCount)

	// Only the window id and the successful call appear in the state.
	assert.Len(t, response.State, 2)
}

func TestHandleCarriesStateAcrossWindows(t *testing.T) {
	handler := newTestHandler(&mockExecutor{}, &mockStateRepository{})

	first, err := handler.Handle(context.Background(), windowEvent(nil,
		testutil.TranscriptItem("call-1", "hello", "AGENT", false)))
	require.NoError(t, err)

	second, err := handler.Handle(context.Background(), windowEvent(first.State,
		testutil.TranscriptItem("call-1", "still talking", "AGENT", false)))
	require.NoError(t, err)

	assert.Equal(t, first.State[windowIDStateKey], second.State[windowIDStateKey])

	var aggregate api.CallAggregate
	require.NoError(t, json.Unmarshal([]byte(second.State["call-1"]), &aggregate))
	assert.Equal(t, 2, aggregate.SegmentCount)
}

func TestHandleSnapshotFailureDoesNotFailInvocation(t *testing.T) {
	repo := &mockStateRepository{
		putCallAggregateFunc: func(context.Context, string, *api.CallAggregate) error {
			return assert.AnError
		},
	}
	handler := newTestHandler(&mockExecutor{}, repo)

	response, err := handler.Handle(context.Background(), windowEvent(nil,
		testutil.TranscriptItem("call-1", "hello", "AGENT", false)))

	require.NoError(t, err)
	assert.Contains(t, response.State, "call-1")
}

func TestHandleEmptyBatch(t *testing.T) {
	handler := newTestHandler(&mockExecutor{}, &mockStateRepository{})

	response, err := handler.Handle(context.Background(), windowEvent(nil))
	require.NoError(t, err)

	// A fresh window still gets its id assigned.
	assert.Len(t, response.State, 1)
	assert.NotEmpty(t, response.State[windowIDStateKey])
}
