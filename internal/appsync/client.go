// Package appsync provides a thin GraphQL client for the call events AppSync
// API. Mutations submit transcript segments so connected UI clients receive
// live updates.
package appsync

import (
	"context"
	"log/slog"
	"net/http"

	apperrors "github.com/callscope/callscope/internal/errors"
	"github.com/callscope/callscope/internal/logger"

	graphql "github.com/hasura/go-graphql-client"
)

// Executor executes GraphQL operations against the AppSync endpoint.
// The interface exists so mutation functions can be tested without a network.
type Executor interface {
	Exec(ctx context.Context, mutation string, response any, variables map[string]any) error
}

// Client wraps a GraphQL client with AppSync API key authentication.
type Client struct {
	gql    *graphql.Client
	logger *slog.Logger
}

// apiKeyTransport injects the AppSync API key header into every request.
type apiKeyTransport struct {
	apiKey string
	next   http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("x-api-key", t.apiKey)
	return t.next.RoundTrip(req)
}

// New creates a new AppSync client for the given GraphQL endpoint.
func New(url, apiKey string, log *slog.Logger) *Client {
	httpClient := &http.Client{
		Transport: &apiKeyTransport{
			apiKey: apiKey,
			next:   http.DefaultTransport,
		},
	}

	return &Client{
		gql:    graphql.NewClient(url, httpClient),
		logger: log,
	}
}

// Exec runs a raw GraphQL operation and unmarshals the response.
func (c *Client) Exec(ctx context.Context, mutation string, response any, variables map[string]any) error {
	reqLogger := logger.DeriveRequestLogger(ctx, c.logger)

	if err := c.gql.Exec(ctx, mutation, response, variables); err != nil {
		reqLogger.Error("GraphQL mutation failed", "error", err)
		return apperrors.ErrUpstreamError("AppSync mutation failed", err)
	}

	return nil
}
