package constants

// Environment represents the execution environment (e.g., local, Lambda).
type Environment string

// Environment types for logger configuration.
const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Service represents a callscope service component.
type Service string

const (
	// TranscriptProcessorService handles transcript batch events.
	TranscriptProcessorService Service = "transcript-processor"
	// VoiceToneProcessorService handles Chime voice tone analytics events.
	VoiceToneProcessorService Service = "voicetone-processor"
)
