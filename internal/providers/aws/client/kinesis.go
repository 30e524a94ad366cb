package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
)

// KinesisClient defines the interface for Kinesis operations used by the
// transcript segment emitter.
type KinesisClient interface {
	PutRecord(
		ctx context.Context,
		params *kinesis.PutRecordInput,
		optFns ...func(*kinesis.Options),
	) (*kinesis.PutRecordOutput, error)
}

// KinesisClientAdapter wraps the AWS SDK Kinesis client to implement the
// KinesisClient interface.
type KinesisClientAdapter struct {
	client *kinesis.Client
}

// NewKinesisClientAdapter creates a new adapter wrapping the AWS SDK client.
func NewKinesisClientAdapter(client *kinesis.Client) *KinesisClientAdapter {
	return &KinesisClientAdapter{client: client}
}

// PutRecord wraps the AWS SDK PutRecord operation.
func (a *KinesisClientAdapter) PutRecord(
	ctx context.Context,
	params *kinesis.PutRecordInput,
	optFns ...func(*kinesis.Options),
) (*kinesis.PutRecordOutput, error) {
	return a.client.PutRecord(ctx, params, optFns...)
}
