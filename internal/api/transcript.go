package api

import "encoding/json"

// TranscriptState is the tumbling-window state carried between successive
// invocations of the transcript processor. Keys are call ids (plus a window
// id entry); values are serialized per-call aggregates. The hosting platform
// persists it between invocations, not this code.
type TranscriptState map[string]string

// RecordResult holds the outcome of processing a single batch record. Each
// record can fan out into several submitted items, so successes and errors
// are both lists.
type RecordResult struct {
	Successes []json.RawMessage
	Errors    []error
}

// ProcessorResults accumulates per-record results across one batch. The
// nesting mirrors the shape consumed by the state merge: each success is
// itself a RecordResult with its own successes and errors.
type ProcessorResults struct {
	Successes []*RecordResult
	Errors    []error
}

// CallAggregate is the per-call fold target inside the tumbling-window state.
type CallAggregate struct {
	CallID          string         `json:"CallId"`
	SegmentCount    int            `json:"SegmentCount"`
	LastEndOffsetMs int64          `json:"LastEndOffsetMillis"`
	LastSentiment   string         `json:"LastSentiment,omitempty"`
	LastUpdatedAt   string         `json:"LastUpdatedAt,omitempty"`
	SentimentCounts map[string]int `json:"SentimentCounts,omitempty"`
}
