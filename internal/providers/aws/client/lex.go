package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
)

// LexRuntimeClient defines the interface for Lex runtime operations used by
// the Lex-based agent assist.
type LexRuntimeClient interface {
	RecognizeText(
		ctx context.Context,
		params *lexruntimev2.RecognizeTextInput,
		optFns ...func(*lexruntimev2.Options),
	) (*lexruntimev2.RecognizeTextOutput, error)
}

// LexRuntimeClientAdapter wraps the AWS SDK Lex runtime client to implement
// the LexRuntimeClient interface.
type LexRuntimeClientAdapter struct {
	client *lexruntimev2.Client
}

// NewLexRuntimeClientAdapter creates a new adapter wrapping the AWS SDK client.
func NewLexRuntimeClientAdapter(client *lexruntimev2.Client) *LexRuntimeClientAdapter {
	return &LexRuntimeClientAdapter{client: client}
}

// RecognizeText wraps the AWS SDK RecognizeText operation.
func (a *LexRuntimeClientAdapter) RecognizeText(
	ctx context.Context,
	params *lexruntimev2.RecognizeTextInput,
	optFns ...func(*lexruntimev2.Options),
) (*lexruntimev2.RecognizeTextOutput, error) {
	return a.client.RecognizeText(ctx, params, optFns...)
}
