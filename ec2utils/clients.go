package ec2utils

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"go.uber.org/zap"
)

// CreateAwsClient builds an EC2 client for region. The SDK's standard retryer
// is capped at three attempts; nothing above it retries provisioning calls.
func CreateAwsClient(region string) *ec2.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithClientLogMode(aws.LogRetries),
		config.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(so *retry.StandardOptions) {
				so.MaxAttempts = 3
			})
		}),
	)
	if err != nil {
		zap.S().Fatalf("unable to load SDK config, %v", err)
	}

	return ec2.NewFromConfig(cfg)
}
