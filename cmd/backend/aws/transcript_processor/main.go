// Package main implements the AWS Lambda transcript processor for callscope.
// It consumes tumbling-window Kinesis batches of call analytics events,
// forwards them to AppSync, and carries per-call aggregates across windows.
package main

import (
	"context"
	"os"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/callscope/callscope/internal/config"
	"github.com/callscope/callscope/internal/constants"
	"github.com/callscope/callscope/internal/logger"
	"github.com/callscope/callscope/internal/transcript"
)

func main() {
	cfg := config.MustLoadTranscriptProcessor()
	log := logger.Initialize(constants.Production, cfg.GetLogLevel())
	ctx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)

	handler, err := transcript.Initialize(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("Failed to initialize transcript handler", "error", err)
		os.Exit(1)
	}

	log.Debug("starting Lambda handler")
	lambda.Start(func(ctx context.Context, event *awsevents.KinesisTimeWindowEvent) (*awsevents.KinesisTimeWindowEventResponse, error) {
		return handler.Handle(ctx, event)
	})
}
