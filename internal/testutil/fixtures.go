package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/callscope/callscope/internal/api"
	"github.com/callscope/callscope/internal/constants"
)

// SilentLogger creates a logger that discards all output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CallRecordWithStart builds a call record whose CallData carries the given
// streaming start timestamp (already formatted).
func CallRecordWithStart(callID, startTime string) *api.CallRecord {
	return &api.CallRecord{
		CallID:   callID,
		CallData: fmt.Sprintf(`{"callId":%q,"callStreamingStartTime":%q}`, callID, startTime),
	}
}

// VoiceToneDetailBuilder provides a fluent interface for building voice tone
// event details.
type VoiceToneDetailBuilder struct {
	detail *api.VoiceToneEventDetail
}

// NewVoiceToneDetailBuilder creates a builder with sensible defaults.
func NewVoiceToneDetailBuilder() *VoiceToneDetailBuilder {
	return &VoiceToneDetailBuilder{
		detail: &api.VoiceToneEventDetail{
			DetailStatus:     constants.VoiceToneAnalyticsReady,
			VoiceConnectorID: "vc1",
			TransactionID:    "tx1",
			CallID:           "call1",
		},
	}
}

// WithStatus sets the detail status.
func (b *VoiceToneDetailBuilder) WithStatus(status constants.VoiceToneDetailStatus) *VoiceToneDetailBuilder {
	b.detail.DetailStatus = status
	return b
}

// WithCallID sets the call id.
func (b *VoiceToneDetailBuilder) WithCallID(callID string) *VoiceToneDetailBuilder {
	b.detail.CallID = callID
	return b
}

// WithTaskID sets the task id.
func (b *VoiceToneDetailBuilder) WithTaskID(taskID string) *VoiceToneDetailBuilder {
	b.detail.TaskID = taskID
	return b
}

// AsCaller marks the event as caller-channel.
func (b *VoiceToneDetailBuilder) AsCaller() *VoiceToneDetailBuilder {
	b.detail.IsCaller = true
	return b
}

// WithVoiceTone attaches analysis details for a successful event.
func (b *VoiceToneDetailBuilder) WithVoiceTone(label, startTime, endTime string) *VoiceToneDetailBuilder {
	b.detail.VoiceToneAnalysisDetails = &api.VoiceToneAnalysisDetails{
		CurrentAverageVoiceTone: api.VoiceToneAverage{
			VoiceToneLabel: label,
			StartTime:      startTime,
			EndTime:        endTime,
		},
	}
	return b
}

// Build returns the constructed detail.
func (b *VoiceToneDetailBuilder) Build() *api.VoiceToneEventDetail {
	return b.detail
}

// BuildJSON returns the constructed detail serialized for an EventBridge event.
func (b *VoiceToneDetailBuilder) BuildJSON() json.RawMessage {
	data, err := json.Marshal(b.detail)
	if err != nil {
		panic(err)
	}
	return data
}

// TranscriptItem builds a raw transcript item for batch processor tests.
func TranscriptItem(callID, transcript, role string, isPartial bool) json.RawMessage {
	item := map[string]any{
		"EventType": constants.EventTypeAddTranscriptSegment,
		"CallId":    callID,
		"UtteranceEvent": map[string]any{
			"Transcript":      transcript,
			"ParticipantRole": role,
			"isPartial":       isPartial,
		},
	}
	data, err := json.Marshal(item)
	if err != nil {
		panic(err)
	}
	return data
}
