package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSClient defines the interface for SNS operations used by category alerting.
type SNSClient interface {
	Publish(
		ctx context.Context,
		params *sns.PublishInput,
		optFns ...func(*sns.Options),
	) (*sns.PublishOutput, error)
}

// SNSClientAdapter wraps the AWS SDK SNS client to implement the SNSClient interface.
type SNSClientAdapter struct {
	client *sns.Client
}

// NewSNSClientAdapter creates a new adapter wrapping the AWS SDK client.
func NewSNSClientAdapter(client *sns.Client) *SNSClientAdapter {
	return &SNSClientAdapter{client: client}
}

// Publish wraps the AWS SDK Publish operation.
func (a *SNSClientAdapter) Publish(
	ctx context.Context,
	params *sns.PublishInput,
	optFns ...func(*sns.Options),
) (*sns.PublishOutput, error) {
	return a.client.Publish(ctx, params, optFns...)
}
