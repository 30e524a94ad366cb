package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/callscope/callscope/internal/api"
	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStateRepository is a mock implementation of database.StateRepository.
type mockStateRepository struct {
	putCallAggregateFunc func(ctx context.Context, windowID string, aggregate *api.CallAggregate) error
	stored               map[string]*api.CallAggregate
}

func (m *mockStateRepository) PutCallAggregate(
	ctx context.Context, windowID string, aggregate *api.CallAggregate) error {
	if m.putCallAggregateFunc != nil {
		return m.putCallAggregateFunc(ctx, windowID, aggregate)
	}
	if m.stored == nil {
		m.stored = make(map[string]*api.CallAggregate)
	}
	m.stored[aggregate.CallID] = aggregate
	return nil
}

func TestNewStateManagerFreshWindow(t *testing.T) {
	manager := NewStateManager(nil, nil, testutil.SilentLogger())

	assert.NotEmpty(t, manager.WindowID())
	assert.Equal(t, manager.WindowID(), manager.State()[windowIDStateKey])
}

func TestNewStateManagerCarriesWindowID(t *testing.T) {
	incoming := map[string]string{windowIDStateKey: "window-42"}

	manager := NewStateManager(incoming, nil, testutil.SilentLogger())

	assert.Equal(t, "window-42", manager.WindowID())
}

func TestNewStateManagerCopiesIncomingState(t *testing.T) {
	incoming := map[string]string{windowIDStateKey: "window-1", "call-1": `{"CallId":"call-1","SegmentCount":2}`}

	manager := NewStateManager(incoming, nil, testutil.SilentLogger())
	manager.State()["call-2"] = "added"

	// The platform's copy of the incoming state is untouched.
	assert.NotContains(t, incoming, "call-2")
}

func TestUpdateState(t *testing.T) {
	manager := NewStateManager(nil, nil, testutil.SilentLogger())

	item := json.RawMessage(`{
		"CallId": "call-1",
		"UtteranceEvent": {"Sentiment": "POSITIVE", "EndOffsetMillis": 12000}
	}`)
	require.NoError(t, manager.UpdateState(item))
	require.NoError(t, manager.UpdateState(item))

	encoded, ok := manager.State()["call-1"]
	require.True(t, ok)

	var aggregate api.CallAggregate
	require.NoError(t, json.Unmarshal([]byte(encoded), &aggregate))

	assert.Equal(t, "call-1", aggregate.CallID)
	assert.Equal(t, 2, aggregate.SegmentCount)
	assert.Equal(t, int64(12000), aggregate.LastEndOffsetMs)
	assert.Equal(t, "POSITIVE", aggregate.LastSentiment)
	assert.Equal(t, 2, aggregate.SentimentCounts["POSITIVE"])
}

func TestUpdateStateResumesCarriedAggregate(t *testing.T) {
	incoming := map[string]string{
		windowIDStateKey: "window-1",
		"call-1":         `{"CallId":"call-1","SegmentCount":5,"LastEndOffsetMillis":30000}`,
	}
	manager := NewStateManager(incoming, nil, testutil.SilentLogger())

	item := json.RawMessage(`{"CallId": "call-1", "UtteranceEvent": {"EndOffsetMillis": 31000}}`)
	require.NoError(t, manager.UpdateState(item))

	var aggregate api.CallAggregate
	require.NoError(t, json.Unmarshal([]byte(manager.State()["call-1"]), &aggregate))

	assert.Equal(t, 6, aggregate.SegmentCount)
	assert.Equal(t, int64(31000), aggregate.LastEndOffsetMs)
}

func TestUpdateStateKeepsMaxEndOffset(t *testing.T) {
	manager := NewStateManager(nil, nil, testutil.SilentLogger())

	require.NoError(t, manager.UpdateState(
		json.RawMessage(`{"CallId": "call-1", "UtteranceEvent": {"EndOffsetMillis": 20000}}`)))
	require.NoError(t, manager.UpdateState(
		json.RawMessage(`{"CallId": "call-1", "UtteranceEvent": {"EndOffsetMillis": 15000}}`)))

	var aggregate api.CallAggregate
	require.NoError(t, json.Unmarshal([]byte(manager.State()["call-1"]), &aggregate))

	assert.Equal(t, int64(20000), aggregate.LastEndOffsetMs)
}

func TestUpdateStateMissingCallID(t *testing.T) {
	manager := NewStateManager(nil, nil, testutil.SilentLogger())

	err := manager.UpdateState(json.RawMessage(`{"UtteranceEvent": {}}`))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidEvent, apperrors.GetErrorCode(err))
}

func TestClose(t *testing.T) {
	repo := &mockStateRepository{}
	manager := NewStateManager(nil, repo, testutil.SilentLogger())

	require.NoError(t, manager.UpdateState(
		json.RawMessage(`{"CallId": "call-1", "UtteranceEvent": {"EndOffsetMillis": 1000}}`)))
	require.NoError(t, manager.UpdateState(
		json.RawMessage(`{"CallId": "call-2", "UtteranceEvent": {"EndOffsetMillis": 2000}}`)))

	require.NoError(t, manager.Close(context.Background()))

	require.Len(t, repo.stored, 2)
	assert.Equal(t, 1, repo.stored["call-1"].SegmentCount)
	assert.Equal(t, int64(2000), repo.stored["call-2"].LastEndOffsetMs)
}

func TestCloseRepositoryError(t *testing.T) {
	repo := &mockStateRepository{
		putCallAggregateFunc: func(context.Context, string, *api.CallAggregate) error {
			return apperrors.ErrDatabaseError("put failed", fmt.Errorf("throttled"))
		},
	}
	manager := NewStateManager(nil, repo, testutil.SilentLogger())

	require.NoError(t, manager.UpdateState(json.RawMessage(`{"CallId": "call-1"}`)))

	err := manager.Close(context.Background())
	require.Error(t, err)
	testutil.AssertErrorType(t, err, &apperrors.AppError{Code: apperrors.ErrCodeDatabaseError})
}

func TestCloseWithoutRepository(t *testing.T) {
	manager := NewStateManager(nil, nil, testutil.SilentLogger())
	assert.NoError(t, manager.Close(context.Background()))
}
