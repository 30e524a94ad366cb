package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMClient defines the interface for Systems Manager operations used to
// fetch the settings parameter.
type SSMClient interface {
	GetParameter(
		ctx context.Context,
		params *ssm.GetParameterInput,
		optFns ...func(*ssm.Options),
	) (*ssm.GetParameterOutput, error)
}

// SSMClientAdapter wraps the AWS SDK SSM client to implement the SSMClient interface.
type SSMClientAdapter struct {
	client *ssm.Client
}

// NewSSMClientAdapter creates a new adapter wrapping the AWS SDK client.
func NewSSMClientAdapter(client *ssm.Client) *SSMClientAdapter {
	return &SSMClientAdapter{client: client}
}

// GetParameter wraps the AWS SDK GetParameter operation.
func (a *SSMClientAdapter) GetParameter(
	ctx context.Context,
	params *ssm.GetParameterInput,
	optFns ...func(*ssm.Options),
) (*ssm.GetParameterOutput, error) {
	return a.client.GetParameter(ctx, params, optFns...)
}
