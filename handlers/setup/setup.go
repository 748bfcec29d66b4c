package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sunilrch/AWS-API-Services/config"
	"github.com/sunilrch/AWS-API-Services/dynamoutils"
	"github.com/sunilrch/AWS-API-Services/utils"
)

type setupResult struct {
	TableName string `json:"table_name"`
	Created   bool   `json:"created"`
}

func main() {
	cfg, err := config.LoadFromEnv()
	logger := utils.MustNewLogger(cfg.LogLevel)
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	defer logger.Sync()

	client := dynamoutils.CreateClient(cfg.Region, cfg.DynamoEndpoint)

	lambda.Start(func(ctx context.Context, _ json.RawMessage) (setupResult, error) {
		created, err := dynamoutils.EnsureNetworkRecordTable(ctx, client, cfg.TableName)
		if err != nil {
			return setupResult{}, err
		}
		if created {
			logger.Infof("Table %v created", cfg.TableName)
		} else {
			logger.Infof("Table %v already exists", cfg.TableName)
		}
		return setupResult{TableName: cfg.TableName, Created: created}, nil
	})
}
