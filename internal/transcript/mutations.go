package transcript

import (
	"context"
	"encoding/json"

	"github.com/callscope/callscope/internal/appsync"
)

// GraphQL operations for the call events API. Both take the full transcript
// item as an opaque input document; the API validates it against its schema.
const (
	addTranscriptSegmentMutation = `mutation AddTranscriptSegment($input: AddTranscriptSegmentInput!) {
	addTranscriptSegment(input: $input) {
		CallId
		SegmentId
	}
}`

	addContactLensSegmentMutation = `mutation AddContactLensSegment($input: AddContactLensSegmentInput!) {
	addContactLensSegment(input: $input) {
		CallId
		SegmentId
	}
}`
)

// mutationResponse is the shared response shape of segment mutations.
type mutationResponse struct {
	CallID    string `json:"CallId"`
	SegmentID string `json:"SegmentId"`
}

// SubmitTranscribeEvent submits a generic transcription item (Transcribe or
// equivalent real-time sources) via the addTranscriptSegment mutation.
func SubmitTranscribeEvent(
	ctx context.Context,
	exec appsync.Executor,
	item json.RawMessage,
) (json.RawMessage, error) {
	var resp struct {
		AddTranscriptSegment mutationResponse `json:"addTranscriptSegment"`
	}

	if err := exec.Exec(ctx, addTranscriptSegmentMutation, &resp, map[string]any{
		"input": item,
	}); err != nil {
		return nil, err
	}

	return item, nil
}

// SubmitContactLensEvent submits a Contact Lens item via the
// addContactLensSegment mutation.
func SubmitContactLensEvent(
	ctx context.Context,
	exec appsync.Executor,
	item json.RawMessage,
) (json.RawMessage, error) {
	var resp struct {
		AddContactLensSegment mutationResponse `json:"addContactLensSegment"`
	}

	if err := exec.Exec(ctx, addContactLensSegmentMutation, &resp, map[string]any{
		"input": item,
	}); err != nil {
		return nil, err
	}

	return item, nil
}
