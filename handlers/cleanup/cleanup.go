package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sunilrch/AWS-API-Services/config"
	"github.com/sunilrch/AWS-API-Services/dynamoutils"
	"github.com/sunilrch/AWS-API-Services/utils"
)

// Deletes the record table only. Networks created through the API stay.
func main() {
	cfg, err := config.LoadFromEnv()
	logger := utils.MustNewLogger(cfg.LogLevel)
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	defer logger.Sync()

	client := dynamoutils.CreateClient(cfg.Region, cfg.DynamoEndpoint)

	lambda.Start(func(ctx context.Context, _ json.RawMessage) error {
		_, err := dynamoutils.DeleteTable(ctx, client, cfg.TableName)
		return err
	})
}
