package transcript

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/callscope/callscope/internal/api"
	"github.com/callscope/callscope/internal/constants"
	"github.com/callscope/callscope/internal/database"
	apperrors "github.com/callscope/callscope/internal/errors"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// windowIDStateKey is the state entry carrying the window identity; every
// other key is a call id.
const windowIDStateKey = "WindowId"

// StateManager folds successful per-record results into the running
// tumbling-window state. It operates strictly in memory for one invocation;
// the platform serializes invocations per shard, so no locking is needed.
type StateManager struct {
	state      api.TranscriptState
	aggregates map[string]*api.CallAggregate
	stateRepo  database.StateRepository
	logger     *slog.Logger
	windowID   string
}

// NewStateManager creates a state manager seeded with the incoming window
// state. A fresh window gets a generated window id.
func NewStateManager(
	incoming map[string]string,
	stateRepo database.StateRepository,
	log *slog.Logger,
) *StateManager {
	state := make(api.TranscriptState, len(incoming)+1)
	for k, v := range incoming {
		state[k] = v
	}

	windowID := state[windowIDStateKey]
	if windowID == "" {
		windowID = uuid.NewString()
		state[windowIDStateKey] = windowID
	}

	return &StateManager{
		state:      state,
		aggregates: make(map[string]*api.CallAggregate),
		stateRepo:  stateRepo,
		logger:     log,
		windowID:   windowID,
	}
}

// WindowID returns the identity of the window this manager folds into.
func (m *StateManager) WindowID() string {
	return m.windowID
}

// UpdateState folds a single successful item into the per-call aggregate.
func (m *StateManager) UpdateState(item json.RawMessage) error {
	callID := gjson.GetBytes(item, pathCallID).String()
	if callID == "" {
		return apperrors.ErrInvalidEvent("state update item has no CallId", nil)
	}

	aggregate, err := m.aggregateForCall(callID)
	if err != nil {
		return err
	}

	aggregate.SegmentCount++

	if end := gjson.GetBytes(item, "UtteranceEvent.EndOffsetMillis"); end.Exists() {
		if ms := end.Int(); ms > aggregate.LastEndOffsetMs {
			aggregate.LastEndOffsetMs = ms
		}
	}

	if sentiment := gjson.GetBytes(item, pathSentiment).String(); sentiment != "" {
		if aggregate.SentimentCounts == nil {
			aggregate.SentimentCounts = make(map[string]int)
		}
		aggregate.SentimentCounts[sentiment]++
		aggregate.LastSentiment = sentiment
	}

	aggregate.LastUpdatedAt = time.Now().UTC().Format(constants.EmittedTimestampLayout)

	encoded, err := json.Marshal(aggregate)
	if err != nil {
		return apperrors.ErrInternalError("failed to encode call aggregate", err)
	}
	m.state[callID] = string(encoded)

	return nil
}

// aggregateForCall returns the fold target for a call, decoding it from the
// incoming state the first time the call appears in this invocation.
func (m *StateManager) aggregateForCall(callID string) (*api.CallAggregate, error) {
	if aggregate, ok := m.aggregates[callID]; ok {
		return aggregate, nil
	}

	aggregate := &api.CallAggregate{CallID: callID}
	if encoded, ok := m.state[callID]; ok {
		if err := json.Unmarshal([]byte(encoded), aggregate); err != nil {
			return nil, apperrors.ErrInternalError("failed to decode carried call aggregate", err)
		}
	}

	m.aggregates[callID] = aggregate
	return aggregate, nil
}

// State returns the outgoing window state for the platform to persist.
func (m *StateManager) State() api.TranscriptState {
	return m.state
}

// Close persists a snapshot of the touched aggregates. Snapshot failures are
// reported but must not affect the state returned to the platform.
func (m *StateManager) Close(ctx context.Context) error {
	if m.stateRepo == nil {
		return nil
	}

	for callID, aggregate := range m.aggregates {
		if err := m.stateRepo.PutCallAggregate(ctx, m.windowID, aggregate); err != nil {
			m.logger.Error("failed to snapshot call aggregate",
				"error", err,
				"callID", callID,
				"windowID", m.windowID,
			)
			return err
		}
	}

	return nil
}
