package voicetone

import (
	"context"
	"testing"

	"github.com/callscope/callscope/internal/api"
	"github.com/callscope/callscope/internal/constants"
	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/testutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testSegment(callID string) *api.AddTranscriptSegmentEvent {
	return &api.AddTranscriptSegmentEvent{
		EventType: constants.EventTypeAddTranscriptSegment,
		CallID:    callID,
		UtteranceEvent: api.UtteranceEvent{
			UtteranceID:       "utt-1",
			ParticipantRole:   constants.ParticipantCallerVoiceSentiment,
			Transcript:        constants.VoiceToneTranscriptPlaceholder,
			Sentiment:         "NEUTRAL",
			BeginOffsetMillis: 5000,
			EndOffsetMillis:   10000,
		},
		CreatedAt: "2024-01-01T00:00:10Z",
		UpdatedAt: "2024-01-01T00:00:10Z",
	}
}

func TestEmitTranscriptSegment(t *testing.T) {
	client := &mockKinesisClient{}
	emitter := NewSegmentEmitter(client, "call-events-stream", testutil.SilentLogger())

	err := emitter.EmitTranscriptSegment(context.Background(), testSegment("call-1"))
	require.NoError(t, err)

	require.Len(t, client.records, 1)
	record := client.records[0]

	assert.Equal(t, "call-events-stream", aws.ToString(record.StreamName))

	// Partitioning by call id keeps per-call ordering.
	assert.Equal(t, "call-1", aws.ToString(record.PartitionKey))

	assert.Equal(t, "ADD_TRANSCRIPT_SEGMENT", gjson.GetBytes(record.Data, "EventType").String())
	assert.Equal(t, "call-1", gjson.GetBytes(record.Data, "CallId").String())
	assert.Equal(t, "utt-1", gjson.GetBytes(record.Data, "UtteranceEvent.UtteranceId").String())
}

func TestEmitTranscriptSegmentPutFailure(t *testing.T) {
	client := &mockKinesisClient{
		putRecordFunc: func(context.Context, *kinesis.PutRecordInput, ...func(*kinesis.Options)) (
			*kinesis.PutRecordOutput, error) {
			return nil, assert.AnError
		},
	}
	emitter := NewSegmentEmitter(client, "call-events-stream", testutil.SilentLogger())

	err := emitter.EmitTranscriptSegment(context.Background(), testSegment("call-1"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstreamError, apperrors.GetErrorCode(err))
}
