package voicetone

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/callscope/callscope/internal/config"
	"github.com/callscope/callscope/internal/constants"
	dynamoRepo "github.com/callscope/callscope/internal/database/dynamodb"
	awsclient "github.com/callscope/callscope/internal/providers/aws/client"

	"github.com/aws/aws-sdk-go-v2/service/chimesdkvoice"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
)

// Initialize creates the voice tone tracker with all its dependencies.
// Called once per cold start.
func Initialize(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Tracker, error) {
	log.Debug(fmt.Sprintf("initializing %s voice tone processor", constants.ProjectName),
		"context", map[string]any{
			"version":              *constants.GetVersion(),
			"stream":               cfg.KinesisStreamName,
			"call_event_table":     cfg.CallEventTable,
			"init_timeout_seconds": cfg.InitTimeout.Seconds(),
		},
	)

	awsCfg, err := awsclient.LoadSDKConfig(ctx)
	if err != nil {
		return nil, err
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	callRepo := dynamoRepo.NewCallRepository(dynamoClient, cfg.CallEventTable, log)
	taskRepo := dynamoRepo.NewVoiceTaskRepository(dynamoClient, cfg.CallEventTable, log)

	emitter := NewSegmentEmitter(
		awsclient.NewKinesisClientAdapter(kinesis.NewFromConfig(awsCfg)),
		cfg.KinesisStreamName,
		log,
	)

	chimeClient := awsclient.NewChimeVoiceClientAdapter(chimesdkvoice.NewFromConfig(awsCfg))

	tracker, err := NewTracker(
		chimeClient,
		emitter,
		callRepo,
		taskRepo,
		cfg.TaskCacheSize,
		cfg.CallCacheSize,
		log,
	)
	if err != nil {
		return nil, err
	}

	log.Debug(constants.ProjectName + " voice tone processor initialized successfully")

	return tracker, nil
}
