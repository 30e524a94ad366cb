// Package voicetone implements the voice tone processor: it tracks Chime
// voice tone analysis tasks and emits transcript segment records for
// completed analyses.
package voicetone

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/callscope/callscope/internal/api"
	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/logger"
	awsclient "github.com/callscope/callscope/internal/providers/aws/client"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
)

// SegmentEmitter writes transcript segment records onto the call events
// stream, partitioned by call id so per-call ordering is preserved.
type SegmentEmitter struct {
	client     awsclient.KinesisClient
	streamName string
	logger     *slog.Logger
}

// NewSegmentEmitter creates a new emitter for the given stream.
func NewSegmentEmitter(client awsclient.KinesisClient, streamName string, log *slog.Logger) *SegmentEmitter {
	return &SegmentEmitter{
		client:     client,
		streamName: streamName,
		logger:     log,
	}
}

// EmitTranscriptSegment serializes and emits one segment record.
func (e *SegmentEmitter) EmitTranscriptSegment(ctx context.Context, segment *api.AddTranscriptSegmentEvent) error {
	reqLogger := logger.DeriveRequestLogger(ctx, e.logger)

	data, err := json.Marshal(segment)
	if err != nil {
		return apperrors.ErrInternalError("failed to encode transcript segment", err)
	}

	out, err := e.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(e.streamName),
		Data:         data,
		PartitionKey: aws.String(segment.CallID),
	})
	if err != nil {
		return apperrors.ErrUpstreamError("failed to emit transcript segment", err)
	}

	reqLogger.Debug("transcript segment emitted",
		"callID", segment.CallID,
		"shard", aws.ToString(out.ShardId),
		"sequence_number", aws.ToString(out.SequenceNumber),
	)

	return nil
}
