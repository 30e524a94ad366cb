package api

import "github.com/callscope/callscope/internal/constants"

// VoiceToneEventDetail is the detail payload of a Chime Voice SDK analytics
// EventBridge event. Only the fields this service reads are declared.
type VoiceToneEventDetail struct {
	DetailStatus     constants.VoiceToneDetailStatus `json:"detailStatus"`
	VoiceConnectorID string                          `json:"voiceConnectorId"`
	TransactionID    string                          `json:"transactionId"`
	CallID           string                          `json:"callId"`
	TaskID           string                          `json:"taskId"`
	IsCaller         bool                            `json:"isCaller"`

	VoiceToneAnalysisDetails *VoiceToneAnalysisDetails `json:"voiceToneAnalysisDetails,omitempty"`
}

// VoiceToneAnalysisDetails carries the analysis result on successful events.
type VoiceToneAnalysisDetails struct {
	CurrentAverageVoiceTone VoiceToneAverage `json:"currentAverageVoiceTone"`
}

// VoiceToneAverage is the averaged tone over the reported segment.
type VoiceToneAverage struct {
	VoiceToneLabel string `json:"voiceToneLabel"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
}

// UtteranceEvent is the utterance nested inside an emitted transcript segment
// record. Field casing matches what downstream stream consumers expect;
// isPartial is intentionally lower-cased on the wire.
type UtteranceEvent struct {
	UtteranceID       string                    `json:"UtteranceId"`
	ParticipantRole   constants.ParticipantRole `json:"ParticipantRole"`
	IsPartial         bool                      `json:"isPartial"`
	Transcript        string                    `json:"Transcript"`
	Sentiment         string                    `json:"Sentiment"`
	BeginOffsetMillis int64                     `json:"BeginOffsetMillis"`
	EndOffsetMillis   int64                     `json:"EndOffsetMillis"`
}

// AddTranscriptSegmentEvent is the record emitted onto the call events stream
// when a voice tone analysis segment completes.
type AddTranscriptSegmentEvent struct {
	EventType      string         `json:"EventType"`
	CallID         string         `json:"CallId"`
	UtteranceEvent UtteranceEvent `json:"UtteranceEvent"`
	CreatedAt      string         `json:"CreatedAt"`
	UpdatedAt      string         `json:"UpdatedAt"`
}
