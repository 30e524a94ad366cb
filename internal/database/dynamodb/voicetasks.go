package dynamodb

import (
	"context"
	"log/slog"
	"strings"

	"github.com/callscope/callscope/internal/api"
	"github.com/callscope/callscope/internal/constants"
	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// callIDIndexName is the GSI over the CallId attribute, used to list every
// voice task recorded for a call.
const callIDIndexName = "CallId-index"

// VoiceTaskRepository implements database.VoiceTaskRepository using DynamoDB.
// Task mappings share the transcriber call event table with call records,
// distinguished by the "vta#" key prefix.
type VoiceTaskRepository struct {
	client    Client
	tableName string
	logger    *slog.Logger
}

// NewVoiceTaskRepository creates a new DynamoDB-backed voice task repository.
func NewVoiceTaskRepository(client Client, tableName string, logger *slog.Logger) *VoiceTaskRepository {
	return &VoiceTaskRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// voiceTaskItem represents the task-to-call mapping stored in DynamoDB.
type voiceTaskItem struct {
	PK                      string `dynamodbav:"PK"`
	SK                      string `dynamodbav:"SK"`
	VoiceToneAnalysisTaskID string `dynamodbav:"VoiceToneAnalysisTaskId"`
	CallID                  string `dynamodbav:"CallId"`
}

// toAPIVoiceTaskMapping converts a voiceTaskItem to an api.VoiceTaskMapping.
func (i *voiceTaskItem) toAPIVoiceTaskMapping() *api.VoiceTaskMapping {
	return &api.VoiceTaskMapping{
		VoiceToneAnalysisTaskID: i.VoiceToneAnalysisTaskID,
		CallID:                  i.CallID,
	}
}

// PutVoiceTask records the mapping keyed by "vta#"+taskID / "VTA".
func (r *VoiceTaskRepository) PutVoiceTask(ctx context.Context, taskID, callID string) error {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	item := voiceTaskItem{
		PK:                      constants.VoiceTaskKeyPrefix + taskID,
		SK:                      constants.VoiceTaskSortKey,
		VoiceToneAnalysisTaskID: taskID,
		CallID:                  callID,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.ErrDatabaseError("failed to marshal voice task mapping", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.ErrDatabaseError("failed to store voice task mapping", err)
	}

	reqLogger.Debug("voice task mapping stored", "taskID", taskID, "callID", callID)

	return nil
}

// GetCallIDForVoiceTask resolves a task id to the call it analyzes.
func (r *VoiceTaskRepository) GetCallIDForVoiceTask(ctx context.Context, taskID string) (string, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: constants.VoiceTaskKeyPrefix + taskID},
			"SK": &types.AttributeValueMemberS{Value: constants.VoiceTaskSortKey},
		},
	})
	if err != nil {
		return "", apperrors.ErrDatabaseError("failed to get voice task mapping", err)
	}

	if result.Item == nil {
		return "", apperrors.ErrTaskUnmapped(taskID, nil)
	}

	var item voiceTaskItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return "", apperrors.ErrDatabaseError("failed to unmarshal voice task mapping", err)
	}

	return item.CallID, nil
}

// ListVoiceTasksForCall queries the CallId GSI for every task mapping
// recorded for a call. Call detail items share the index, so results are
// filtered down to "vta#" keys.
func (r *VoiceTaskRepository) ListVoiceTasksForCall(
	ctx context.Context,
	callID string,
) ([]*api.VoiceTaskMapping, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("CallId").Equal(expression.Value(callID))).
		WithFilter(expression.Name("PK").BeginsWith(constants.VoiceTaskKeyPrefix)).
		Build()
	if err != nil {
		return nil, apperrors.ErrInternalError("failed to build voice task query", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(callIDIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, apperrors.ErrDatabaseError("failed to query voice tasks for call", err)
	}

	mappings := make([]*api.VoiceTaskMapping, 0, len(out.Items))
	for _, it := range out.Items {
		var item voiceTaskItem
		if err := attributevalue.UnmarshalMap(it, &item); err != nil {
			return nil, apperrors.ErrDatabaseError("failed to unmarshal voice task mapping", err)
		}
		if !strings.HasPrefix(item.PK, constants.VoiceTaskKeyPrefix) {
			continue
		}
		mappings = append(mappings, item.toAPIVoiceTaskMapping())
	}

	return mappings, nil
}
