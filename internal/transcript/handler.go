package transcript

import (
	"context"
	"log/slog"

	"github.com/callscope/callscope/internal/appsync"
	"github.com/callscope/callscope/internal/database"
	"github.com/callscope/callscope/internal/logger"
	awsclient "github.com/callscope/callscope/internal/providers/aws/client"
	"github.com/callscope/callscope/internal/settings"

	"github.com/aws/aws-lambda-go/events"
)

// Handler is the transcript event processor entry point. It holds the
// dependencies shared across invocations; a BatchProcessor is constructed per
// invocation to accumulate that batch's results.
type Handler struct {
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

	stateRepo database.StateRepository
	settings  *settings.Settings
	logger    *slog.Logger
}

// newProcessor builds a per-invocation batch processor from the handler's
// shared dependencies.
func (h *Handler) newProcessor() *BatchProcessor {
	return &BatchProcessor{
		executor:           h.executor,
		mutationFn:         h.mutationFn,
		comprehendClient:   h.comprehendClient,
		comprehendLanguage: h.comprehendLanguage,
		lexClient:          h.lexClient,
		lexBotID:           h.lexBotID,
		lexBotAliasID:      h.lexBotAliasID,
		lexBotLocaleID:     h.lexBotLocaleID,
		lambdaClient:       h.lambdaClient,
		agentAssistFnARN:   h.agentAssistFnARN,
		snsClient:          h.snsClient,
		snsTopicARN:        h.snsTopicARN,
		settings:           h.settings,
		logger:             h.logger,
	}
}

// Handle processes one tumbling-window batch: run the batch processor, log
// every collected error without failing the invocation, fold the successes
// into the window state, and return the outgoing state.
func (h *Handler) Handle(
	ctx context.Context,
	event *events.KinesisTimeWindowEvent,
) (*events.KinesisTimeWindowEventResponse, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, h.logger)
	reqLogger.Debug("processing transcript batch",
		"records", len(event.Records),
		"shard", event.ShardID,
		"is_final", event.IsFinalInvokeForWindow,
	)

	processor := h.newProcessor()
	processor.HandleEvent(ctx, event)
	results := processor.Results()

	// Errors are surfaced in logs only; they never abort the invocation or
	// affect the returned state.
	for _, procErr := range results.Errors {
		reqLogger.Error("event processor error", "error", procErr)
	}

	stateManager := NewStateManager(event.State, h.stateRepo, h.logger)
	for _, result := range results.Successes {
		for _, item := range result.Successes {
			if len(item) == 0 {
				continue
			}
			if err := stateManager.UpdateState(item); err != nil {
				reqLogger.Error("failed to fold item into state", "error", err)
			}
		}
		for _, itemErr := range result.Errors {
			reqLogger.Error("event processor item error", "error", itemErr)
		}
	}

	if err := stateManager.Close(ctx); err != nil {
		reqLogger.Error("failed to snapshot window state", "error", err)
	}

	outgoing := stateManager.State()
	reqLogger.Debug("window state updated",
		"windowID", stateManager.WindowID(),
		"incoming_keys", len(event.State),
		"outgoing_keys", len(outgoing),
	)

	return &events.KinesisTimeWindowEventResponse{
		TimeWindowEventResponseProperties: events.TimeWindowEventResponseProperties{
			State: outgoing,
		},
	}, nil
}
