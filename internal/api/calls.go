// Package api defines the domain types shared across callscope.
// It contains call records, transcript processing results, and the shapes of
// records emitted onto the call events stream.
package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/callscope/callscope/internal/constants"
)

// CallRecord is a call detail item from the transcriber call event table.
// CallData holds serialized call metadata written by the call transcriber;
// this service only reads it.
type CallRecord struct {
	CallID   string `json:"CallId"`
	CallData string `json:"CallData"`
}

// callData is the subset of the serialized call metadata this service needs.
type callData struct {
	CallStreamingStartTime string `json:"callStreamingStartTime"`
}

// StreamingStartTime parses the stream start timestamp out of CallData.
func (r *CallRecord) StreamingStartTime() (time.Time, error) {
	var data callData
	if err := json.Unmarshal([]byte(r.CallData), &data); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse call data for call %s: %w", r.CallID, err)
	}

	start, err := time.Parse(constants.CallTimestampLayout, data.CallStreamingStartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse call streaming start time %q: %w",
			data.CallStreamingStartTime, err)
	}

	return start, nil
}

// VoiceTaskMapping links a voice tone analysis task to the call it analyzes.
// Written once when the task starts, read when the task completes.
type VoiceTaskMapping struct {
	VoiceToneAnalysisTaskID string `json:"VoiceToneAnalysisTaskId"`
	CallID                  string `json:"CallId"`
}
