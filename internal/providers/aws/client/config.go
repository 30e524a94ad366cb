// Package client wraps the AWS SDK service clients used by callscope behind
// small interfaces so handlers can be tested with mock implementations.
package client

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
)

// sdkMaxAttempts bounds SDK-level retries; the platform's invocation retry
// handles anything beyond that.
const sdkMaxAttempts = 3

// LoadSDKConfig loads the default AWS SDK configuration with adaptive retry
// mode. It is called once per cold start and shared across all service clients.
func LoadSDKConfig(ctx context.Context) (aws.Config, error) {
	cfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRetryMode(aws.RetryModeAdaptive),
		awsConfig.WithRetryMaxAttempts(sdkMaxAttempts),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return cfg, nil
}
