package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/settings"
	"github.com/callscope/callscope/internal/testutil"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	comprehendtypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// mockExecutor is a mock implementation of the appsync.Executor interface.
type mockExecutor struct {
	execFunc  func(ctx context.Context, mutation string, response any, variables map[string]any) error
	mutations []string
}

func (m *mockExecutor) Exec(ctx context.Context, mutation string, response any, variables map[string]any) error {
	m.mutations = append(m.mutations, mutation)
	if m.execFunc != nil {
		return m.execFunc(ctx, mutation, response, variables)
	}
	return nil
}

type mockComprehendClient struct {
	detectSentimentFunc func(context.Context, *comprehend.DetectSentimentInput, ...func(*comprehend.Options)) (
		*comprehend.DetectSentimentOutput, error)
}

func (m *mockComprehendClient) DetectSentiment(
	ctx context.Context, params *comprehend.DetectSentimentInput, optFns ...func(*comprehend.Options)) (
	*comprehend.DetectSentimentOutput, error) {
	if m.detectSentimentFunc != nil {
		return m.detectSentimentFunc(ctx, params, optFns...)
	}
	return &comprehend.DetectSentimentOutput{Sentiment: comprehendtypes.SentimentTypeNeutral}, nil
}

type mockSNSClient struct {
	publishFunc func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error)
	published   []*sns.PublishInput
}

func (m *mockSNSClient) Publish(
	ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.published = append(m.published, params)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{}, nil
}

type mockLexClient struct {
	recognizeTextFunc func(context.Context, *lexruntimev2.RecognizeTextInput, ...func(*lexruntimev2.Options)) (
		*lexruntimev2.RecognizeTextOutput, error)
	requests []*lexruntimev2.RecognizeTextInput
}

func (m *mockLexClient) RecognizeText(
	ctx context.Context, params *lexruntimev2.RecognizeTextInput, optFns ...func(*lexruntimev2.Options)) (
	*lexruntimev2.RecognizeTextOutput, error) {
	m.requests = append(m.requests, params)
	if m.recognizeTextFunc != nil {
		return m.recognizeTextFunc(ctx, params, optFns...)
	}
	return &lexruntimev2.RecognizeTextOutput{}, nil
}

type mockLambdaClient struct {
	invokeFunc func(context.Context, *lambdasvc.InvokeInput, ...func(*lambdasvc.Options)) (
		*lambdasvc.InvokeOutput, error)
	invocations []*lambdasvc.InvokeInput
}

func (m *mockLambdaClient) Invoke(
	ctx context.Context, params *lambdasvc.InvokeInput, optFns ...func(*lambdasvc.Options)) (
	*lambdasvc.InvokeOutput, error) {
	m.invocations = append(m.invocations, params)
	if m.invokeFunc != nil {
		return m.invokeFunc(ctx, params, optFns...)
	}
	return &lambdasvc.InvokeOutput{}, nil
}

// windowEvent wraps raw items into a Kinesis time window event.
func windowEvent(state map[string]string, items ...json.RawMessage) *events.KinesisTimeWindowEvent {
	event := &events.KinesisTimeWindowEvent{}
	event.State = state
	for i, item := range items {
		event.Records = append(event.Records, events.KinesisEventRecord{
			Kinesis: events.KinesisRecord{
				Data:           item,
				SequenceNumber: fmt.Sprintf("seq-%d", i),
			},
		})
	}
	return event
}

func newTestProcessor(executor *mockExecutor) *BatchProcessor {
	return &BatchProcessor{
		executor:   executor,
		mutationFn: SubmitTranscribeEvent,
		logger:     testutil.SilentLogger(),
	}
}

func TestHandleEventAllRecordsSucceed(t *testing.T) {
	executor := &mockExecutor{}
	processor := newTestProcessor(executor)

	event := windowEvent(nil,
		testutil.TranscriptItem("call-1", "hello", "AGENT", false),
		testutil.TranscriptItem("call-2", "hi there", "CUSTOMER", false),
	)

	processor.HandleEvent(context.Background(), event)
	results := processor.Results()

	assert.Len(t, results.Successes, 2)
	assert.Empty(t, results.Errors)
	assert.Len(t, executor.mutations, 2)
}

func TestHandleEventRecordFailureDoesNotAbortBatch(t *testing.T) {
	executor := &mockExecutor{}
	processor := newTestProcessor(executor)

	event := windowEvent(nil,
		testutil.TranscriptItem("call-1", "hello", "AGENT", false),
		json.RawMessage("not json"),
		testutil.TranscriptItem("call-2", "still processed", "AGENT", false),
	)

	processor.HandleEvent(context.Background(), event)
	results := processor.Results()

	assert.Len(t, results.Successes, 2)
	require.Len(t, results.Errors, 1)
	assert.Equal(t, apperrors.ErrCodeInvalidEvent, apperrors.GetErrorCode(results.Errors[0]))
}

func TestProcessRecordMissingCallID(t *testing.T) {
	processor := newTestProcessor(&mockExecutor{})

	_, err := processor.processRecord(context.Background(), []byte(`{"EventType":"ADD_TRANSCRIPT_SEGMENT"}`),
		testutil.SilentLogger())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidEvent, apperrors.GetErrorCode(err))
}

func TestProcessRecordMutationFailure(t *testing.T) {
	executor := &mockExecutor{
		execFunc: func(context.Context, string, any, map[string]any) error {
			return apperrors.ErrUpstreamError("AppSync mutation failed", fmt.Errorf("timeout"))
		},
	}
	processor := newTestProcessor(executor)

	_, err := processor.processRecord(context.Background(),
		testutil.TranscriptItem("call-1", "hello", "AGENT", false), testutil.SilentLogger())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstreamError, apperrors.GetErrorCode(err))
}

func TestProcessRecordNilMutationSkipsSubmission(t *testing.T) {
	processor := &BatchProcessor{
		executor:   &mockExecutor{},
		mutationFn: nil,
		logger:     testutil.SilentLogger(),
	}

	item := testutil.TranscriptItem("call-1", "hello", "AGENT", false)
	result, err := processor.processRecord(context.Background(), item, testutil.SilentLogger())

	require.NoError(t, err)
	require.Len(t, result.Successes, 1)
	assert.Empty(t, result.Errors)
}

func TestAnnotateSentiment(t *testing.T) {
	comprehendClient := &mockComprehendClient{
		detectSentimentFunc: func(_ context.Context, params *comprehend.DetectSentimentInput,
			_ ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error) {
			assert.Equal(t, "I am very happy", *params.Text)
			assert.Equal(t, comprehendtypes.LanguageCodeEn, params.LanguageCode)
			return &comprehend.DetectSentimentOutput{Sentiment: comprehendtypes.SentimentTypePositive}, nil
		},
	}

	processor := &BatchProcessor{
		executor:         &mockExecutor{},
		mutationFn:       SubmitTranscribeEvent,
		comprehendClient: comprehendClient,
		logger:           testutil.SilentLogger(),
	}

	item := testutil.TranscriptItem("call-1", "I am very happy", "CUSTOMER", false)
	result, err := processor.processRecord(context.Background(), item, testutil.SilentLogger())

	require.NoError(t, err)
	require.Len(t, result.Successes, 1)
	assert.Equal(t, "POSITIVE", gjson.GetBytes(result.Successes[0], pathSentiment).String())
}

func TestAnnotateSentimentSkipsPartials(t *testing.T) {
	called := false
	comprehendClient := &mockComprehendClient{
		detectSentimentFunc: func(context.Context, *comprehend.DetectSentimentInput,
			...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error) {
			called = true
			return &comprehend.DetectSentimentOutput{}, nil
		},
	}

	processor := &BatchProcessor{
		executor:         &mockExecutor{},
		mutationFn:       SubmitTranscribeEvent,
		comprehendClient: comprehendClient,
		logger:           testutil.SilentLogger(),
	}

	item := testutil.TranscriptItem("call-1", "partial utter", "CUSTOMER", true)
	_, err := processor.processRecord(context.Background(), item, testutil.SilentLogger())

	require.NoError(t, err)
	assert.False(t, called)
}

func TestAnnotateSentimentFailureDoesNotFailRecord(t *testing.T) {
	comprehendClient := &mockComprehendClient{
		detectSentimentFunc: func(context.Context, *comprehend.DetectSentimentInput,
			...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error) {
			return nil, fmt.Errorf("throttled")
		},
	}

	processor := &BatchProcessor{
		executor:         &mockExecutor{},
		mutationFn:       SubmitTranscribeEvent,
		comprehendClient: comprehendClient,
		logger:           testutil.SilentLogger(),
	}

	item := testutil.TranscriptItem("call-1", "hello", "CUSTOMER", false)
	result, err := processor.processRecord(context.Background(), item, testutil.SilentLogger())

	require.NoError(t, err)
	require.Len(t, result.Successes, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, apperrors.ErrCodeUpstreamError, apperrors.GetErrorCode(result.Errors[0]))

	// Submitted without a sentiment label rather than dropped.
	assert.False(t, gjson.GetBytes(result.Successes[0], pathSentiment).Exists())
}

func TestPublishCategoryAlerts(t *testing.T) {
	alertSettings, err := settings.Parse([]byte(`{"CategoryAlertRegex": "^Fraud"}`))
	require.NoError(t, err)

	snsClient := &mockSNSClient{}
	processor := &BatchProcessor{
		executor:    &mockExecutor{},
		mutationFn:  SubmitContactLensEvent,
		snsClient:   snsClient,
		snsTopicARN: "arn:aws:sns:us-east-1:123456789012:alerts",
		settings:    alertSettings,
		logger:      testutil.SilentLogger(),
	}

	item := json.RawMessage(`{
		"CallId": "call-1",
		"CategoryEvent": {"MatchedCategories": ["FraudSuspected", "Greeting"]}
	}`)

	result, err := processor.processRecord(context.Background(), item, testutil.SilentLogger())
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	require.Len(t, snsClient.published, 1)
	assert.Contains(t, *snsClient.published[0].Message, "FraudSuspected")
	assert.Contains(t, *snsClient.published[0].Message, "call-1")
}

func TestPublishCategoryAlertsFailureIsNested(t *testing.T) {
	alertSettings, err := settings.Parse([]byte(`{"CategoryAlertRegex": ".*"}`))
	require.NoError(t, err)

	snsClient := &mockSNSClient{
		publishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, fmt.Errorf("topic gone")
		},
	}

	processor := &BatchProcessor{
		executor:    &mockExecutor{},
		mutationFn:  SubmitContactLensEvent,
		snsClient:   snsClient,
		snsTopicARN: "arn:aws:sns:us-east-1:123456789012:alerts",
		settings:    alertSettings,
		logger:      testutil.SilentLogger(),
	}

	item := json.RawMessage(`{"CallId": "call-1", "CategoryEvent": {"MatchedCategories": ["Anything"]}}`)

	result, err := processor.processRecord(context.Background(), item, testutil.SilentLogger())
	require.NoError(t, err)
	require.Len(t, result.Successes, 1)
	require.Len(t, result.Errors, 1)
}

func TestRunAgentAssist(t *testing.T) {
	lexClient := &mockLexClient{}
	lambdaClient := &mockLambdaClient{}

	processor := &BatchProcessor{
		executor:         &mockExecutor{},
		mutationFn:       SubmitTranscribeEvent,
		lexClient:        lexClient,
		lexBotID:         "bot-1",
		lexBotAliasID:    "alias-1",
		lexBotLocaleID:   "en_US",
		lambdaClient:     lambdaClient,
		agentAssistFnARN: "arn:aws:lambda:us-east-1:123456789012:function:assist",
		logger:           testutil.SilentLogger(),
	}

	t.Run("final customer utterance triggers assist", func(t *testing.T) {
		item := testutil.TranscriptItem("call-1", "where is my order", "CUSTOMER", false)
		result, err := processor.processRecord(context.Background(), item, testutil.SilentLogger())

		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		require.Len(t, lexClient.requests, 1)
		assert.Equal(t, "call-1", *lexClient.requests[0].SessionId)
		assert.Equal(t, "where is my order", *lexClient.requests[0].Text)
		require.Len(t, lambdaClient.invocations, 1)
	})

	t.Run("agent utterance is ignored", func(t *testing.T) {
		item := testutil.TranscriptItem("call-1", "how can I help", "AGENT", false)
		_, err := processor.processRecord(context.Background(), item, testutil.SilentLogger())

		require.NoError(t, err)
		assert.Len(t, lexClient.requests, 1)
		assert.Len(t, lambdaClient.invocations, 1)
	})

	t.Run("partial customer utterance is ignored", func(t *testing.T) {
		item := testutil.TranscriptItem("call-1", "where is", "CUSTOMER", true)
		_, err := processor.processRecord(context.Background(), item, testutil.SilentLogger())

		require.NoError(t, err)
		assert.Len(t, lexClient.requests, 1)
		assert.Len(t, lambdaClient.invocations, 1)
	})
}

func TestComprehendLanguageCode(t *testing.T) {
	assert.Equal(t, comprehendtypes.LanguageCodeEn, comprehendLanguageCode(""))
	assert.Equal(t, comprehendtypes.LanguageCodeEn, comprehendLanguageCode("en"))
	assert.Equal(t, comprehendtypes.LanguageCodeEs, comprehendLanguageCode("es"))
}

func TestResultsAccumulate(t *testing.T) {
	processor := newTestProcessor(&mockExecutor{})

	processor.HandleEvent(context.Background(), windowEvent(nil,
		testutil.TranscriptItem("call-1", "first", "AGENT", false)))
	processor.HandleEvent(context.Background(), windowEvent(nil,
		testutil.TranscriptItem("call-1", "second", "AGENT", false)))

	results := processor.Results()
	assert.Len(t, results.Successes, 2)
	assert.Empty(t, results.Errors)
}
