package voicetone

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/callscope/callscope/internal/api"
	"github.com/callscope/callscope/internal/constants"
	"github.com/callscope/callscope/internal/database"
	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/logger"
	awsclient "github.com/callscope/callscope/internal/providers/aws/client"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/chimesdkvoice"
	chimetypes "github.com/aws/aws-sdk-go-v2/service/chimesdkvoice/types"
	"github.com/aws/smithy-go"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Tracker drives the voice tone task state machine. Task and call record
// lookups are memoized in bounded caches scoped to the execution environment;
// the authoritative copies live in DynamoDB. Containers handle one invocation
// at a time, so the caches need no external locking beyond what the LRU
// provides.
type Tracker struct {
	chimeClient awsclient.ChimeVoiceClient
	emitter     *SegmentEmitter
	callRepo    database.CallRepository
	taskRepo    database.VoiceTaskRepository

	taskCache *lru.Cache[string, string]
	callCache *lru.Cache[string, *api.CallRecord]

	logger *slog.Logger
	now    func() time.Time
}

// NewTracker creates a tracker with caches of the given sizes.
func NewTracker(
	chimeClient awsclient.ChimeVoiceClient,
	emitter *SegmentEmitter,
	callRepo database.CallRepository,
	taskRepo database.VoiceTaskRepository,
	taskCacheSize, callCacheSize int,
	log *slog.Logger,
) (*Tracker, error) {
	taskCache, err := lru.New[string, string](taskCacheSize)
	if err != nil {
		return nil, apperrors.ErrInternalError("failed to create voice task cache", err)
	}

	callCache, err := lru.New[string, *api.CallRecord](callCacheSize)
	if err != nil {
		return nil, apperrors.ErrInternalError("failed to create call record cache", err)
	}

	return &Tracker{
		chimeClient: chimeClient,
		emitter:     emitter,
		callRepo:    callRepo,
		taskRepo:    taskRepo,
		taskCache:   taskCache,
		callCache:   callCache,
		logger:      log,
		now:         time.Now,
	}, nil
}

// HandleEvent processes one Chime Voice SDK analytics EventBridge event.
func (t *Tracker) HandleEvent(ctx context.Context, event *events.CloudWatchEvent) error {
	reqLogger := logger.DeriveRequestLogger(ctx, t.logger)

	var detail api.VoiceToneEventDetail
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return apperrors.ErrInvalidEvent("failed to parse voice tone event detail", err)
	}

	switch detail.DetailStatus {
	case constants.VoiceToneAnalyticsReady:
		return t.startAnalysis(ctx, &detail, reqLogger)
	case constants.VoiceToneAnalysisSuccessful:
		return t.emitSegment(ctx, event.ID, &detail, reqLogger)
	default:
		reqLogger.Debug("ignoring voice tone event detail status",
			"detail_status", detail.DetailStatus,
			"callID", detail.CallID,
		)
		return nil
	}
}

// startAnalysis starts a voice tone analysis task for the connector and
// transaction, then records the task-to-call mapping.
func (t *Tracker) startAnalysis(
	ctx context.Context,
	detail *api.VoiceToneEventDetail,
	reqLogger *slog.Logger,
) error {
	out, err := t.chimeClient.StartVoiceToneAnalysisTask(ctx, &chimesdkvoice.StartVoiceToneAnalysisTaskInput{
		VoiceConnectorId:   aws.String(detail.VoiceConnectorID),
		TransactionId:      aws.String(detail.TransactionID),
		LanguageCode:       chimetypes.LanguageCode(constants.VoiceToneLanguageCode),
		ClientRequestToken: aws.String(detail.CallID),
	})
	if err != nil {
		// The ready event is delivered at least once; a conflict means a
		// task is already running for this transaction.
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConflictException" {
			reqLogger.Warn("voice tone analysis task already running",
				"callID", detail.CallID,
				"transaction", detail.TransactionID,
			)
			return nil
		}
		return apperrors.ErrUpstreamError("failed to start voice tone analysis task", err)
	}

	if out.VoiceToneAnalysisTask == nil || out.VoiceToneAnalysisTask.VoiceToneAnalysisTaskId == nil {
		return apperrors.ErrUpstreamError("voice tone analysis task response has no task id", nil)
	}

	taskID := aws.ToString(out.VoiceToneAnalysisTask.VoiceToneAnalysisTaskId)
	reqLogger.Info("voice tone analysis task started",
		"taskID", taskID,
		"callID", detail.CallID,
		"voice_connector", detail.VoiceConnectorID,
	)

	if err := t.taskRepo.PutVoiceTask(ctx, taskID, detail.CallID); err != nil {
		return err
	}
	t.taskCache.Add(taskID, detail.CallID)

	return nil
}

// emitSegment resolves the completed task to its call, computes the fixed
// offset window ending at the reported segment end, and emits the transcript
// segment record.
func (t *Tracker) emitSegment(
	ctx context.Context,
	eventID string,
	detail *api.VoiceToneEventDetail,
	reqLogger *slog.Logger,
) error {
	if detail.VoiceToneAnalysisDetails == nil {
		return apperrors.ErrInvalidEvent("successful voice tone event has no analysis details", nil)
	}

	callID, err := t.callIDForTask(ctx, detail.TaskID)
	if err != nil {
		return err
	}

	record, err := t.callRecord(ctx, callID)
	if err != nil {
		return err
	}

	callStart, err := record.StreamingStartTime()
	if err != nil {
		return apperrors.ErrBadTimestamp("call record has unparseable start time", err)
	}

	tone := detail.VoiceToneAnalysisDetails.CurrentAverageVoiceTone
	segmentEnd, err := time.Parse(constants.CallTimestampLayout, tone.EndTime)
	if err != nil {
		return apperrors.ErrBadTimestamp("voice tone segment has unparseable end time", err)
	}

	endMillis := segmentEnd.Sub(callStart).Milliseconds()
	beginMillis := endMillis - constants.VoiceToneSegmentWindowMillis

	participant := constants.ParticipantCallerVoiceSentiment
	if detail.IsCaller {
		participant = constants.ParticipantAgentVoiceSentiment
	}

	timestamp := t.now().UTC().Format(constants.EmittedTimestampLayout)

	segment := &api.AddTranscriptSegmentEvent{
		EventType: constants.EventTypeAddTranscriptSegment,
		CallID:    callID,
		UtteranceEvent: api.UtteranceEvent{
			UtteranceID:       utteranceID(eventID),
			ParticipantRole:   participant,
			IsPartial:         false,
			Transcript:        constants.VoiceToneTranscriptPlaceholder,
			Sentiment:         strings.ToUpper(tone.VoiceToneLabel),
			BeginOffsetMillis: beginMillis,
			EndOffsetMillis:   endMillis,
		},
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
	}

	reqLogger.Info("emitting voice tone transcript segment",
		"callID", callID,
		"taskID", detail.TaskID,
		"sentiment", segment.UtteranceEvent.Sentiment,
		"begin_offset_millis", beginMillis,
		"end_offset_millis", endMillis,
	)

	return t.emitter.EmitTranscriptSegment(ctx, segment)
}

// callIDForTask resolves a task id to its call id, cache first.
func (t *Tracker) callIDForTask(ctx context.Context, taskID string) (string, error) {
	if callID, ok := t.taskCache.Get(taskID); ok {
		return callID, nil
	}

	callID, err := t.taskRepo.GetCallIDForVoiceTask(ctx, taskID)
	if err != nil {
		return "", err
	}

	t.taskCache.Add(taskID, callID)
	return callID, nil
}

// callRecord resolves a call id to its call record, cache first.
func (t *Tracker) callRecord(ctx context.Context, callID string) (*api.CallRecord, error) {
	if record, ok := t.callCache.Get(callID); ok {
		return record, nil
	}

	record, err := t.callRepo.GetCallRecord(ctx, callID)
	if err != nil {
		return nil, err
	}

	t.callCache.Add(callID, record)
	return record, nil
}

// utteranceID strips the event id's type prefix (e.g. "vt-") to form the
// utterance id.
func utteranceID(eventID string) string {
	if len(eventID) <= constants.UtteranceIDPrefixLen {
		return eventID
	}
	return eventID[constants.UtteranceIDPrefixLen:]
}
