package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sunilrch/AWS-API-Services/config"
	"github.com/sunilrch/AWS-API-Services/dynamoutils"
	"github.com/sunilrch/AWS-API-Services/lambdautils"
	"github.com/sunilrch/AWS-API-Services/network/db"
	"github.com/sunilrch/AWS-API-Services/network/model"
	"github.com/sunilrch/AWS-API-Services/utils"
	"go.uber.org/zap"
)

const usage = `usage: loader [aws] <command> [args]

commands:
  setup                     create the record table if missing
  cleanup                   delete the record table
  list                      scan the record table
  create <cidr> [count]     invoke the create Lambda (aws only)
  invoke-list               invoke the list Lambda (aws only)

Without "aws" the table commands target DynamoDB-local on ` + dynamoutils.LocalEndpoint + `.
The table name comes from DDB_TABLE.`

func main() {
	args := os.Args[1:]
	isLocalDeployment := !slices.Contains(args, "aws")
	args = slices.DeleteFunc(args, func(arg string) bool { return arg == "aws" })
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadFromEnv()
	logger := utils.MustNewLogger(cfg.LogLevel)
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var client *dynamodb.Client
	if isLocalDeployment {
		client = dynamoutils.CreateLocalClient()
	} else {
		client = dynamoutils.CreateClient(cfg.Region, cfg.DynamoEndpoint)
	}

	if err = run(ctx, cfg, client, isLocalDeployment, args, logger); err != nil {
		logger.Fatalf("%v failed: %v", args[0], err)
	}
}

func run(ctx context.Context, cfg config.Config, client *dynamodb.Client, isLocalDeployment bool, args []string, logger *zap.SugaredLogger) error {
	switch args[0] {
	case "setup":
		created, err := dynamoutils.EnsureNetworkRecordTable(ctx, client, cfg.TableName)
		if err != nil {
			return err
		}
		logger.Infof("Table %v ready (created: %v)", cfg.TableName, created)
		return nil
	case "cleanup":
		_, err := dynamoutils.DeleteTable(ctx, client, cfg.TableName)
		return err
	case "list":
		records, err := db.NewNetworkRecordDynDao(client, cfg.TableName).ScanAll(ctx)
		if err != nil {
			return err
		}
		return printJson(records)
	case "create":
		if isLocalDeployment {
			return errors.New("create provisions real VPCs and needs the aws flag")
		}
		if len(args) < 2 {
			return errors.New("create needs an address block")
		}
		subnetCount := model.DefaultSubnetCount
		if len(args) > 2 {
			count, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid subnet count %q: %w", args[2], err)
			}
			subnetCount = count
		}
		lambdaClient := lambdautils.CreateNewClient(cfg.Region)
		response, err := lambdautils.InvokeCreateNetworkSync(ctx, lambdaClient, cfg.CreateNetworkFunction, args[1], subnetCount)
		if err != nil {
			return err
		}
		logger.Infof("%v answered %v", cfg.CreateNetworkFunction, response.StatusCode)
		fmt.Println(response.Body)
		return nil
	case "invoke-list":
		if isLocalDeployment {
			return errors.New("invoke-list needs the aws flag")
		}
		lambdaClient := lambdautils.CreateNewClient(cfg.Region)
		retrier := utils.NewBoundedRetrier[[]model.NetworkRecord](3)
		records, err := retrier.DoWithReturn(ctx, func(ctx context.Context) ([]model.NetworkRecord, error) {
			return lambdautils.InvokeListNetworksSync(ctx, lambdaClient, cfg.ListNetworksFunction)
		})
		if err != nil {
			return err
		}
		return printJson(records)
	default:
		return fmt.Errorf("unknown command %q\n%v", args[0], usage)
	}
}

func printJson(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
