package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// LambdaClient defines the interface for Lambda operations used by the
// Lambda-based agent assist.
type LambdaClient interface {
	Invoke(
		ctx context.Context,
		params *lambda.InvokeInput,
		optFns ...func(*lambda.Options),
	) (*lambda.InvokeOutput, error)
}

// LambdaClientAdapter wraps the AWS SDK Lambda client to implement the
// LambdaClient interface.
type LambdaClientAdapter struct {
	client *lambda.Client
}

// NewLambdaClientAdapter creates a new adapter wrapping the AWS SDK client.
func NewLambdaClientAdapter(client *lambda.Client) *LambdaClientAdapter {
	return &LambdaClientAdapter{client: client}
}

// Invoke wraps the AWS SDK Invoke operation.
func (a *LambdaClientAdapter) Invoke(
	ctx context.Context,
	params *lambda.InvokeInput,
	optFns ...func(*lambda.Options),
) (*lambda.InvokeOutput, error) {
	return a.client.Invoke(ctx, params, optFns...)
}
