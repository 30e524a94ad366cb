// Package transcript implements the transcript event processor: it dispatches
// batched call transcript records to source-specific AppSync mutations and
// folds the results into the tumbling-window state.
package transcript

import (
	"context"
	"encoding/json"

	"github.com/callscope/callscope/internal/appsync"
	"github.com/callscope/callscope/internal/constants"
)

// MutationFunc submits one transcript item through the AppSync API and
// returns the item as submitted (with any enrichment applied).
type MutationFunc func(ctx context.Context, exec appsync.Executor, item json.RawMessage) (json.RawMessage, error)

// MutationForAudioSource selects the mutation function for the configured
// audio source. Resolved once at process initialization. Unrecognized sources
// yield nil: downstream submission is skipped rather than failing the
// pipeline.
func MutationForAudioSource(source constants.AudioSource) MutationFunc {
	switch source {
	case constants.AudioSourceDemoAsterisk,
		constants.AudioSourceChimeVoiceConnector,
		constants.AudioSourceGenesysAudiohook:
		return SubmitTranscribeEvent
	case constants.AudioSourceConnectContactLens:
		return SubmitContactLensEvent
	default:
		return nil
	}
}
