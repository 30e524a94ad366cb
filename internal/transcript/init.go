package transcript

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/callscope/callscope/internal/appsync"
	"github.com/callscope/callscope/internal/config"
	"github.com/callscope/callscope/internal/constants"
	dynamoRepo "github.com/callscope/callscope/internal/database/dynamodb"
	awsclient "github.com/callscope/callscope/internal/providers/aws/client"
	"github.com/callscope/callscope/internal/settings"

	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Initialize creates the transcript event handler with all its dependencies.
// It is called once per cold start; the settings blob is fetched here so a
// bad parameter fails fast.
func Initialize(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Handler, error) {
	log.Debug(fmt.Sprintf("initializing %s transcript processor", constants.ProjectName),
		"context", map[string]any{
			"version":              *constants.GetVersion(),
			"audio_source":         cfg.AudioSource,
			"init_timeout_seconds": cfg.InitTimeout.Seconds(),
		},
	)

	awsCfg, err := awsclient.LoadSDKConfig(ctx)
	if err != nil {
		return nil, err
	}

	ssmClient := awsclient.NewSSMClientAdapter(ssm.NewFromConfig(awsCfg))
	appSettings, err := settings.Fetch(ctx, ssmClient, cfg.ParameterStoreName)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	stateRepo := dynamoRepo.NewStateRepository(dynamoClient, cfg.StateTable, log)

	mutationFn := MutationForAudioSource(cfg.AudioSource)
	if mutationFn == nil {
		log.Warn("no mutation function for configured audio source, submissions will be skipped",
			"audio_source", cfg.AudioSource,
		)
	}

	handler := &Handler{
		executor:   appsync.New(cfg.AppSyncGraphQLURL, cfg.AppSyncAPIKey, log),
		mutationFn: mutationFn,
		stateRepo:  stateRepo,
		settings:   appSettings,
		logger:     log,
	}

	if cfg.SentimentAnalysisEnabled {
		handler.comprehendClient = awsclient.NewComprehendClientAdapter(comprehend.NewFromConfig(awsCfg))
		handler.comprehendLanguage = cfg.ComprehendLanguageCode
	}

	if cfg.LexAgentAssistEnabled {
		handler.lexClient = awsclient.NewLexRuntimeClientAdapter(lexruntimev2.NewFromConfig(awsCfg))
		handler.lexBotID = cfg.LexBotID
		handler.lexBotAliasID = cfg.LexBotAliasID
		handler.lexBotLocaleID = cfg.LexBotLocaleID
	}

	if cfg.LambdaAgentAssistEnabled {
		handler.lambdaClient = awsclient.NewLambdaClientAdapter(lambdasvc.NewFromConfig(awsCfg))
		handler.agentAssistFnARN = cfg.LambdaAgentAssistFnARN
	}

	if cfg.SNSTopicARN != "" {
		handler.snsClient = awsclient.NewSNSClientAdapter(sns.NewFromConfig(awsCfg))
		handler.snsTopicARN = cfg.SNSTopicARN
	}

	log.Debug(constants.ProjectName + " transcript processor initialized successfully")

	return handler, nil
}
