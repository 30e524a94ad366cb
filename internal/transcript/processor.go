package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/callscope/callscope/internal/api"
	"github.com/callscope/callscope/internal/appsync"
	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/logger"
	awsclient "github.com/callscope/callscope/internal/providers/aws/client"
	"github.com/callscope/callscope/internal/settings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	comprehendtypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/tidwall/gjson"
)

// JSON paths into the loosely-shaped transcript items.
const (
	pathCallID            = "CallId"
	pathTranscript        = "UtteranceEvent.Transcript"
	pathSentiment         = "UtteranceEvent.Sentiment"
	pathParticipantRole   = "UtteranceEvent.ParticipantRole"
	pathIsPartial         = "UtteranceEvent.isPartial"
	pathMatchedCategories = "CategoryEvent.MatchedCategories"
)

// customerRole is the participant role that triggers agent assist.
const customerRole = "CUSTOMER"

// BatchProcessor processes one batch of transcript records. It is constructed
// per invocation and accumulates nested successes and errors; a record-level
// failure never aborts the batch.
type BatchProcessor struct {
	executor   appsync.Executor
	mutationFn MutationFunc

	comprehendClient   awsclient.ComprehendClient
	comprehendLanguage string

	lexClient      awsclient.LexRuntimeClient
	lexBotID       string
	lexBotAliasID  string
	lexBotLocaleID string

	lambdaClient     awsclient.LambdaClient
	agentAssistFnARN string

	snsClient   awsclient.SNSClient
	snsTopicARN string

	settings *settings.Settings
	logger   *slog.Logger

	results api.ProcessorResults
}

// HandleEvent processes every record in the batch sequentially.
func (p *BatchProcessor) HandleEvent(ctx context.Context, event *events.KinesisTimeWindowEvent) {
	reqLogger := logger.DeriveRequestLogger(ctx, p.logger)

	for _, record := range event.Records {
		result, err := p.processRecord(ctx, record.Kinesis.Data, reqLogger)
		if err != nil {
			reqLogger.Debug("record processing failed",
				"error", err,
				"sequence_number", record.Kinesis.SequenceNumber,
			)
			p.results.Errors = append(p.results.Errors, err)
			continue
		}
		p.results.Successes = append(p.results.Successes, result)
	}
}

// Results returns the accumulated batch results.
func (p *BatchProcessor) Results() *api.ProcessorResults {
	return &p.results
}

// processRecord handles a single transcript item: sentiment enrichment,
// mutation submission, category alerting, and agent assist. Enrichment
// failures are collected as nested errors; submission failure fails the record.
func (p *BatchProcessor) processRecord(
	ctx context.Context,
	data []byte,
	reqLogger *slog.Logger,
) (*api.RecordResult, error) {
	if !gjson.ValidBytes(data) {
		return nil, apperrors.ErrInvalidEvent("record payload is not valid JSON", nil)
	}

	callID := gjson.GetBytes(data, pathCallID).String()
	if callID == "" {
		return nil, apperrors.ErrInvalidEvent("record payload has no CallId", nil)
	}

	result := &api.RecordResult{}
	item := json.RawMessage(data)

	annotated, err := p.annotateSentiment(ctx, item)
	if err != nil {
		// Submit without sentiment rather than dropping the segment.
		result.Errors = append(result.Errors, err)
	} else {
		item = annotated
	}

	if p.mutationFn == nil {
		reqLogger.Debug("no mutation configured for audio source, skipping submission", "callID", callID)
	} else {
		submitted, err := p.mutationFn(ctx, p.executor, item)
		if err != nil {
			return nil, err
		}
		item = submitted
	}

	result.Successes = append(result.Successes, item)

	if err := p.publishCategoryAlerts(ctx, callID, item, reqLogger); err != nil {
		result.Errors = append(result.Errors, err)
	}

	if err := p.runAgentAssist(ctx, callID, item, reqLogger); err != nil {
		result.Errors = append(result.Errors, err)
	}

	return result, nil
}

// annotateSentiment runs Comprehend sentiment detection for items carrying a
// final transcript without a sentiment label and writes the label into the item.
func (p *BatchProcessor) annotateSentiment(ctx context.Context, item json.RawMessage) (json.RawMessage, error) {
	if p.comprehendClient == nil {
		return item, nil
	}

	text := gjson.GetBytes(item, pathTranscript).String()
	if text == "" ||
		gjson.GetBytes(item, pathSentiment).Exists() ||
		gjson.GetBytes(item, pathIsPartial).Bool() {
		return item, nil
	}

	out, err := p.comprehendClient.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: comprehendLanguageCode(p.comprehendLanguage),
	})
	if err != nil {
		return item, apperrors.ErrUpstreamError("sentiment detection failed", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(item, &decoded); err != nil {
		return item, apperrors.ErrInvalidEvent("failed to decode item for sentiment annotation", err)
	}

	utterance, ok := decoded["UtteranceEvent"].(map[string]any)
	if !ok {
		return item, nil
	}
	utterance["Sentiment"] = string(out.Sentiment)

	annotated, err := json.Marshal(decoded)
	if err != nil {
		return item, apperrors.ErrInternalError("failed to re-encode annotated item", err)
	}

	return annotated, nil
}

// comprehendLanguageCode maps the configured language string onto the SDK
// enum, defaulting to English.
func comprehendLanguageCode(code string) comprehendtypes.LanguageCode {
	if code == "" {
		return comprehendtypes.LanguageCodeEn
	}
	return comprehendtypes.LanguageCode(code)
}

// publishCategoryAlerts raises an SNS notification for every matched category
// that matches the configured alert pattern.
func (p *BatchProcessor) publishCategoryAlerts(
	ctx context.Context,
	callID string,
	item json.RawMessage,
	reqLogger *slog.Logger,
) error {
	if p.snsClient == nil || p.snsTopicARN == "" {
		return nil
	}

	categories := gjson.GetBytes(item, pathMatchedCategories)
	if !categories.IsArray() {
		return nil
	}

	for _, category := range categories.Array() {
		name := category.String()
		if !p.settings.MatchesAlertCategory(name) {
			continue
		}

		_, err := p.snsClient.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(p.snsTopicARN),
			Subject:  aws.String(fmt.Sprintf("Call category alert: %s", name)),
			Message:  aws.String(fmt.Sprintf("Category %q matched on call %s", name, callID)),
		})
		if err != nil {
			return apperrors.ErrUpstreamError("failed to publish category alert", err)
		}

		reqLogger.Info("category alert published", "callID", callID, "category", name)
	}

	return nil
}

// runAgentAssist forwards final customer utterances to the configured agent
// assist backends.
func (p *BatchProcessor) runAgentAssist(
	ctx context.Context,
	callID string,
	item json.RawMessage,
	reqLogger *slog.Logger,
) error {
	if p.lexClient == nil && p.lambdaClient == nil {
		return nil
	}

	text := gjson.GetBytes(item, pathTranscript).String()
	role := gjson.GetBytes(item, pathParticipantRole).String()
	if text == "" || role != customerRole || gjson.GetBytes(item, pathIsPartial).Bool() {
		return nil
	}

	if p.lexClient != nil {
		_, err := p.lexClient.RecognizeText(ctx, &lexruntimev2.RecognizeTextInput{
			BotId:      aws.String(p.lexBotID),
			BotAliasId: aws.String(p.lexBotAliasID),
			LocaleId:   aws.String(p.lexBotLocaleID),
			SessionId:  aws.String(callID),
			Text:       aws.String(text),
		})
		if err != nil {
			return apperrors.ErrUpstreamError("Lex agent assist failed", err)
		}
		reqLogger.Debug("Lex agent assist invoked", "callID", callID)
	}

	if p.lambdaClient != nil {
		payload, err := json.Marshal(map[string]string{
			"CallId":     callID,
			"Transcript": text,
		})
		if err != nil {
			return apperrors.ErrInternalError("failed to encode agent assist payload", err)
		}

		_, err = p.lambdaClient.Invoke(ctx, &lambdasvc.InvokeInput{
			FunctionName:   aws.String(p.agentAssistFnARN),
			InvocationType: lambdatypes.InvocationTypeEvent,
			Payload:        payload,
		})
		if err != nil {
			return apperrors.ErrUpstreamError("Lambda agent assist failed", err)
		}
		reqLogger.Debug("Lambda agent assist invoked", "callID", callID)
	}

	return nil
}
