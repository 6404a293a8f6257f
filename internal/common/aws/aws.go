// Package aws wraps the SNS and SES clients used for operational alerts.
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadConfig resolves credentials from the default chain for region.
func LoadConfig(ctx context.Context, region string) (awssdk.Config, error) {
	return config.LoadDefaultConfig(ctx, config.WithRegion(region))
}
