// Package settings loads the shared settings blob from SSM Parameter Store.
// The blob carries feature flags and the category alert pattern; it is
// fetched once at cold start and injected into the handlers.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	awsclient "github.com/callscope/callscope/internal/providers/aws/client"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Settings holds the parsed settings blob.
type Settings struct {
	// CategoryAlertRegex is the raw pattern matched against Contact Lens
	// category names to decide whether to raise an alert.
	CategoryAlertRegex string `json:"CategoryAlertRegex"`

	// Values holds the full blob for flags this service passes through.
	Values map[string]any `json:"-"`

	alertRegex *regexp.Regexp
}

// Fetch retrieves and parses the settings parameter.
func Fetch(ctx context.Context, client awsclient.SSMClient, parameterName string) (*Settings, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(parameterName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings parameter %s: %w", parameterName, err)
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return nil, fmt.Errorf("settings parameter %s has no value", parameterName)
	}

	return Parse([]byte(*out.Parameter.Value))
}

// Parse decodes a settings blob and compiles the alert pattern when present.
func Parse(blob []byte) (*Settings, error) {
	var s Settings
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings blob: %w", err)
	}

	if err := json.Unmarshal(blob, &s.Values); err != nil {
		return nil, fmt.Errorf("failed to parse settings values: %w", err)
	}

	if s.CategoryAlertRegex != "" {
		re, err := regexp.Compile(s.CategoryAlertRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid CategoryAlertRegex %q: %w", s.CategoryAlertRegex, err)
		}
		s.alertRegex = re
	}

	return &s, nil
}

// MatchesAlertCategory reports whether a category name matches the configured
// alert pattern. Always false when no pattern is configured.
func (s *Settings) MatchesAlertCategory(category string) bool {
	if s == nil || s.alertRegex == nil {
		return false
	}
	return s.alertRegex.MatchString(category)
}
