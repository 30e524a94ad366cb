package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/chimesdkvoice"
)

// ChimeVoiceClient defines the interface for Chime SDK voice operations used
// by the voice tone tracker.
type ChimeVoiceClient interface {
	StartVoiceToneAnalysisTask(
		ctx context.Context,
		params *chimesdkvoice.StartVoiceToneAnalysisTaskInput,
		optFns ...func(*chimesdkvoice.Options),
	) (*chimesdkvoice.StartVoiceToneAnalysisTaskOutput, error)
}

// ChimeVoiceClientAdapter wraps the AWS SDK Chime SDK voice client to
// implement the ChimeVoiceClient interface.
type ChimeVoiceClientAdapter struct {
	client *chimesdkvoice.Client
}

// NewChimeVoiceClientAdapter creates a new adapter wrapping the AWS SDK client.
func NewChimeVoiceClientAdapter(client *chimesdkvoice.Client) *ChimeVoiceClientAdapter {
	return &ChimeVoiceClientAdapter{client: client}
}

// StartVoiceToneAnalysisTask wraps the AWS SDK StartVoiceToneAnalysisTask operation.
func (a *ChimeVoiceClientAdapter) StartVoiceToneAnalysisTask(
	ctx context.Context,
	params *chimesdkvoice.StartVoiceToneAnalysisTaskInput,
	optFns ...func(*chimesdkvoice.Options),
) (*chimesdkvoice.StartVoiceToneAnalysisTaskOutput, error) {
	return a.client.StartVoiceToneAnalysisTask(ctx, params, optFns...)
}
