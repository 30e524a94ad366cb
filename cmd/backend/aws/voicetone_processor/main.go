// Package main implements the AWS Lambda voice tone processor for callscope.
// It reacts to Chime SDK voice analytics EventBridge events, starting tone
// analysis tasks and emitting sentiment segments onto the call event stream.
package main

import (
	"context"
	"os"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/callscope/callscope/internal/config"
	"github.com/callscope/callscope/internal/constants"
	"github.com/callscope/callscope/internal/logger"
	"github.com/callscope/callscope/internal/voicetone"
)

func main() {
	cfg := config.MustLoadVoiceToneProcessor()
	log := logger.Initialize(constants.Production, cfg.GetLogLevel())
	ctx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)

	tracker, err := voicetone.Initialize(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("Failed to initialize voice tone tracker", "error", err)
		os.Exit(1)
	}

	log.Debug("starting Lambda handler")
	lambda.Start(func(ctx context.Context, event *awsevents.CloudWatchEvent) error {
		return tracker.HandleEvent(ctx, event)
	})
}
