package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/comprehend"
)

// ComprehendClient defines the interface for Comprehend operations used by
// the transcript batch processor's sentiment analysis.
type ComprehendClient interface {
	DetectSentiment(
		ctx context.Context,
		params *comprehend.DetectSentimentInput,
		optFns ...func(*comprehend.Options),
	) (*comprehend.DetectSentimentOutput, error)
}

// ComprehendClientAdapter wraps the AWS SDK Comprehend client to implement
// the ComprehendClient interface.
type ComprehendClientAdapter struct {
	client *comprehend.Client
}

// NewComprehendClientAdapter creates a new adapter wrapping the AWS SDK client.
func NewComprehendClientAdapter(client *comprehend.Client) *ComprehendClientAdapter {
	return &ComprehendClientAdapter{client: client}
}

// DetectSentiment wraps the AWS SDK DetectSentiment operation.
func (a *ComprehendClientAdapter) DetectSentiment(
	ctx context.Context,
	params *comprehend.DetectSentimentInput,
	optFns ...func(*comprehend.Options),
) (*comprehend.DetectSentimentOutput, error) {
	return a.client.DetectSentiment(ctx, params, optFns...)
}
