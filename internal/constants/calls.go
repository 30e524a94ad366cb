package constants

// AudioSource identifies where call audio originates. The configured source
// decides which AppSync mutation submits transcript events.
type AudioSource string

const (
	// AudioSourceDemoAsterisk is the demo Asterisk PBX server source.
	AudioSourceDemoAsterisk AudioSource = "Demo Asterisk PBX Server"
	// AudioSourceChimeVoiceConnector is the Chime Voice Connector (SIPREC) source.
	AudioSourceChimeVoiceConnector AudioSource = "Chime Voice Connector (SIPREC)"
	// AudioSourceGenesysAudiohook is the Genesys Cloud Audiohook web socket source.
	AudioSourceGenesysAudiohook AudioSource = "Genesys Cloud Audiohook Web Socket"
	// AudioSourceConnectContactLens is the Amazon Connect Contact Lens source.
	AudioSourceConnectContactLens AudioSource = "Amazon Connect Contact Lens"
)

// VoiceToneDetailStatus is the detailStatus field of a Chime Voice SDK
// analytics EventBridge event.
type VoiceToneDetailStatus string

const (
	// VoiceToneAnalyticsReady signals the media insights pipeline is ready
	// and a voice tone analysis task can be started.
	VoiceToneAnalyticsReady VoiceToneDetailStatus = "AnalyticsReady"
	// VoiceToneAnalysisSuccessful signals a voice tone analysis result is available.
	VoiceToneAnalysisSuccessful VoiceToneDetailStatus = "VoiceToneAnalysisSuccessful"
)

// ParticipantRole labels which side of the call a segment belongs to.
type ParticipantRole string

const (
	// ParticipantCallerVoiceSentiment marks voice sentiment for the caller channel.
	ParticipantCallerVoiceSentiment ParticipantRole = "CALLER_VOICE_SENTIMENT"
	// ParticipantAgentVoiceSentiment marks voice sentiment for the agent channel.
	ParticipantAgentVoiceSentiment ParticipantRole = "AGENT_VOICE_SENTIMENT"
)

// EventTypeAddTranscriptSegment is the EventType of records emitted onto the
// call events Kinesis stream.
const EventTypeAddTranscriptSegment = "ADD_TRANSCRIPT_SEGMENT"

// VoiceToneTranscriptPlaceholder is the fixed transcript text attached to
// voice tone segments; they carry sentiment, not words.
const VoiceToneTranscriptPlaceholder = "voice tone"

// VoiceToneSegmentWindowMillis is the fixed width of the offset window for an
// emitted voice tone segment.
const VoiceToneSegmentWindowMillis = 5000

// VoiceToneLanguageCode is the language passed when starting analysis tasks.
const VoiceToneLanguageCode = "en-US"

// UtteranceIDPrefixLen is the length of the prefix stripped from the
// EventBridge event id to form the utterance id.
const UtteranceIDPrefixLen = 3

// DynamoDB key layout for the transcriber call event table.
const (
	// CallRecordKeyPrefix prefixes the partition key of call detail items.
	CallRecordKeyPrefix = "cd#"
	// CallRecordSortKey is the sort key of call detail items.
	CallRecordSortKey = "BOTH"
	// VoiceTaskKeyPrefix prefixes the partition key of task-to-call mappings.
	VoiceTaskKeyPrefix = "vta#"
	// VoiceTaskSortKey is the sort key of task-to-call mappings.
	VoiceTaskSortKey = "VTA"
)
