package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sunilrch/AWS-API-Services/config"
	"github.com/sunilrch/AWS-API-Services/dynamoutils"
	"github.com/sunilrch/AWS-API-Services/network/api"
	"github.com/sunilrch/AWS-API-Services/network/db"
	"github.com/sunilrch/AWS-API-Services/network/services"
	"github.com/sunilrch/AWS-API-Services/utils"
)

// Listing never provisions, so no EC2 client is built here.
func main() {
	cfg, err := config.LoadFromEnv()
	logger := utils.MustNewLogger(cfg.LogLevel)
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	defer logger.Sync()

	dynamoClient := dynamoutils.CreateClient(cfg.Region, cfg.DynamoEndpoint)

	networkService := services.NewNetworkService(
		nil,
		db.NewNetworkRecordDynDao(dynamoClient, cfg.TableName),
		cfg.SubnetPrefixLength,
		logger,
	)
	networkApi := api.NewNetworkApi(networkService, logger)

	lambda.Start(networkApi.HandleListNetworks)
}
