// Package dynamodb implements DynamoDB-based storage for callscope.
// It provides access to the transcriber call event table and the
// tumbling-window state table.
package dynamodb

import (
	"context"
	"log/slog"

	"github.com/callscope/callscope/internal/api"
	"github.com/callscope/callscope/internal/constants"
	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Client defines the DynamoDB operations used by the repositories.
// This interface makes the code easier to test by allowing mock implementations.
type Client interface {
	GetItem(
		ctx context.Context,
		params *dynamodb.GetItemInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.GetItemOutput, error)
	PutItem(
		ctx context.Context,
		params *dynamodb.PutItemInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.PutItemOutput, error)
	Query(
		ctx context.Context,
		params *dynamodb.QueryInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.QueryOutput, error)
}

// CallRepository implements database.CallRepository using DynamoDB.
type CallRepository struct {
	client    Client
	tableName string
	logger    *slog.Logger
}

// NewCallRepository creates a new DynamoDB-backed call repository.
func NewCallRepository(client Client, tableName string, logger *slog.Logger) *CallRepository {
	return &CallRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// callRecordItem represents the call detail structure stored in DynamoDB.
// This keeps the database schema separate from the API types.
type callRecordItem struct {
	PK       string `dynamodbav:"PK"`
	SK       string `dynamodbav:"SK"`
	CallID   string `dynamodbav:"CallId"`
	CallData string `dynamodbav:"CallData"`
}

// toAPICallRecord converts a callRecordItem to an api.CallRecord.
func (i *callRecordItem) toAPICallRecord() *api.CallRecord {
	return &api.CallRecord{
		CallID:   i.CallID,
		CallData: i.CallData,
	}
}

// GetCallRecord retrieves the call detail item keyed by "cd#"+callID / "BOTH".
func (r *CallRepository) GetCallRecord(ctx context.Context, callID string) (*api.CallRecord, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: constants.CallRecordKeyPrefix + callID},
			"SK": &types.AttributeValueMemberS{Value: constants.CallRecordSortKey},
		},
	})
	if err != nil {
		return nil, apperrors.ErrDatabaseError("failed to get call record", err)
	}

	if result.Item == nil {
		return nil, apperrors.ErrNotFound("call record not found: "+callID, nil)
	}

	var item callRecordItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.ErrDatabaseError("failed to unmarshal call record", err)
	}

	reqLogger.Debug("call record fetched", "callID", callID)

	return item.toAPICallRecord(), nil
}
