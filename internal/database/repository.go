// Package database defines repository interfaces for data persistence.
// It provides abstractions for call records, voice task mappings, and
// tumbling-window state snapshots.
package database

import (
	"context"

	"github.com/callscope/callscope/internal/api"
)

// CallRepository defines the interface for call-related database operations.
// This abstraction allows for different implementations without changing the
// business logic layer.
type CallRepository interface {
	// GetCallRecord retrieves the call detail item for a call id.
	// Returns a NOT_FOUND application error if the call does not exist.
	GetCallRecord(ctx context.Context, callID string) (*api.CallRecord, error)
}

// VoiceTaskRepository defines the interface for voice tone analysis task
// mapping operations.
type VoiceTaskRepository interface {
	// PutVoiceTask records the mapping from a voice tone analysis task id to
	// the call it analyzes. Writing the same mapping twice is harmless.
	PutVoiceTask(ctx context.Context, taskID, callID string) error

	// GetCallIDForVoiceTask resolves a voice tone analysis task id to its
	// call id. Returns a TASK_UNMAPPED application error if no mapping exists.
	GetCallIDForVoiceTask(ctx context.Context, taskID string) (string, error)

	// ListVoiceTasksForCall returns every task mapping recorded for a call.
	ListVoiceTasksForCall(ctx context.Context, callID string) ([]*api.VoiceTaskMapping, error)
}

// StateRepository defines the interface for persisting per-call aggregate
// snapshots produced by the transcript state merge.
type StateRepository interface {
	// PutCallAggregate stores the aggregate snapshot for a call within a window.
	PutCallAggregate(ctx context.Context, windowID string, aggregate *api.CallAggregate) error
}
