package dynamodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/callscope/callscope/internal/api"
	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// StateRepository implements database.StateRepository using DynamoDB.
// It stores per-call aggregate snapshots keyed by window id so downstream
// tooling can inspect what the tumbling-window merge produced.
type StateRepository struct {
	client    Client
	tableName string
	logger    *slog.Logger
}

// NewStateRepository creates a new DynamoDB-backed state repository.
func NewStateRepository(client Client, tableName string, logger *slog.Logger) *StateRepository {
	return &StateRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// callAggregateItem represents the aggregate snapshot stored in DynamoDB.
type callAggregateItem struct {
	WindowID        string         `dynamodbav:"window_id"`
	CallID          string         `dynamodbav:"call_id"`
	SegmentCount    int            `dynamodbav:"segment_count"`
	LastEndOffsetMs int64          `dynamodbav:"last_end_offset_millis"`
	LastSentiment   string         `dynamodbav:"last_sentiment,omitempty"`
	SentimentCounts map[string]int `dynamodbav:"sentiment_counts,omitempty"`
	UpdatedAt       time.Time      `dynamodbav:"updated_at"`
}

// PutCallAggregate stores the aggregate snapshot for a call within a window.
func (r *StateRepository) PutCallAggregate(
	ctx context.Context,
	windowID string,
	aggregate *api.CallAggregate,
) error {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	item := callAggregateItem{
		WindowID:        windowID,
		CallID:          aggregate.CallID,
		SegmentCount:    aggregate.SegmentCount,
		LastEndOffsetMs: aggregate.LastEndOffsetMs,
		LastSentiment:   aggregate.LastSentiment,
		SentimentCounts: aggregate.SentimentCounts,
		UpdatedAt:       time.Now().UTC(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.ErrDatabaseError("failed to marshal call aggregate", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.ErrDatabaseError("failed to store call aggregate", err)
	}

	reqLogger.Debug("call aggregate stored",
		"windowID", windowID,
		"callID", aggregate.CallID,
		"segments", aggregate.SegmentCount,
	)

	return nil
}
