// Package main implements a local harness for the callscope Lambda handlers.
// It feeds a JSON event file through either processor against real AWS
// endpoints, which is useful when iterating on handler behavior without a
// deploy cycle.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/spf13/cobra"

	"github.com/callscope/callscope/internal/config"
	"github.com/callscope/callscope/internal/constants"
	"github.com/callscope/callscope/internal/logger"
	"github.com/callscope/callscope/internal/transcript"
	"github.com/callscope/callscope/internal/voicetone"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   constants.ProjectName + "-localrun",
	Short: "Run a callscope processor against a local event file",
	Long: fmt.Sprintf(`%s localrun %s
Feeds a JSON event file through a processor using your AWS credentials`,
		constants.ProjectName, *constants.GetVersion()),
	SilenceUsage: true,
}

var transcriptCmd = &cobra.Command{
	Use:   "transcript <event.json>",
	Short: "Process a Kinesis time window event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadTranscriptProcessor()
		if err != nil {
			return err
		}
		log := logger.Initialize(constants.Development, logLevel())

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.InitTimeout)
		handler, err := transcript.Initialize(ctx, cfg, log)
		cancel()
		if err != nil {
			return err
		}

		var event awsevents.KinesisTimeWindowEvent
		if err := readEvent(args[0], &event); err != nil {
			return err
		}

		response, err := handler.Handle(cmd.Context(), &event)
		if err != nil {
			return err
		}
		return printResult(response)
	},
}

var voicetoneCmd = &cobra.Command{
	Use:   "voicetone <event.json>",
	Short: "Process a Chime voice analytics EventBridge event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadVoiceToneProcessor()
		if err != nil {
			return err
		}
		log := logger.Initialize(constants.Development, logLevel())

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.InitTimeout)
		tracker, err := voicetone.Initialize(ctx, cfg, log)
		cancel()
		if err != nil {
			return err
		}

		var event awsevents.CloudWatchEvent
		if err := readEvent(args[0], &event); err != nil {
			return err
		}
		return tracker.HandleEvent(cmd.Context(), &event)
	},
}

func logLevel() slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func readEvent(path string, event any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read event file: %w", err)
	}
	if err := json.Unmarshal(data, event); err != nil {
		return fmt.Errorf("failed to parse event file: %w", err)
	}
	return nil
}

func printResult(result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(transcriptCmd)
	rootCmd.AddCommand(voicetoneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
