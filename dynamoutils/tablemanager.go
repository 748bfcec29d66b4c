package dynamoutils

import (
	"context"
	net "net/http"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/ratelimit"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sunilrch/AWS-API-Services/network/db"
	"go.uber.org/zap"
)

const LocalEndpoint = "http://localhost:8000"

type TableDefinition struct {
	TableName string

	PartitionKey AttributeDefinition
	SortKey      AttributeDefinition
}

type AttributeDefinition struct {
	Name       string
	ScalarType types.ScalarAttributeType
}

func CreateTable(ctx context.Context, client *dynamodb.Client, tableDefinition TableDefinition) (*types.TableDescription, error) {
	var tableDesc *types.TableDescription
	attributeDefinitions := []types.AttributeDefinition{{
		AttributeName: aws.String(tableDefinition.PartitionKey.Name),
		AttributeType: tableDefinition.PartitionKey.ScalarType,
	}}
	if tableDefinition.SortKey.Name != "" {
		attributeDefinitions = append(attributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(tableDefinition.SortKey.Name),
			AttributeType: tableDefinition.SortKey.ScalarType,
		})
	}

	createTableInput := dynamodb.CreateTableInput{
		TableName:            aws.String(tableDefinition.TableName),
		AttributeDefinitions: attributeDefinitions,
		KeySchema:            createKeySchema(tableDefinition.PartitionKey.Name, tableDefinition.SortKey.Name),
		BillingMode:          types.BillingModePayPerRequest,
	}

	table, err := client.CreateTable(ctx, &createTableInput)

	if err != nil {
		zap.S().Errorf("Couldn't create table %v. Here's why: %v", tableDefinition.TableName, err)
	} else {
		waiter := dynamodb.NewTableExistsWaiter(client)
		err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(tableDefinition.TableName)}, 5*time.Minute)
		if err != nil {
			zap.S().Errorf("Wait for table exists failed. Here's why: %v", err)
		}
		tableDesc = table.TableDescription
	}
	return tableDesc, err
}

func createKeySchema(partitionKeyName string, sortKeyName string) []types.KeySchemaElement {
	keySchema := []types.KeySchemaElement{{
		AttributeName: aws.String(partitionKeyName),
		KeyType:       types.KeyTypeHash,
	}}
	if sortKeyName != "" {
		keySchema = append(keySchema, types.KeySchemaElement{
			AttributeName: aws.String(sortKeyName),
			KeyType:       types.KeyTypeRange,
		})
	}
	return keySchema
}

func CreateLocalClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("localhost"),
		config.WithHTTPClient(
			http.NewBuildableClient().
				WithTransportOptions(func(tr *net.Transport) {
					tr.ExpectContinueTimeout = 0
					tr.MaxIdleConns = 100
				}),
		),
		config.WithClientLogMode(aws.LogRetries),
	)

	if err != nil {
		zap.S().Fatalf("unable to load SDK config, %v", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(LocalEndpoint)
		o.Credentials = credentials.NewStaticCredentialsProvider("local", "local", "")
	})

	return client
}

func CreateAwsClient(region string) *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithClientLogMode(aws.LogRetries),
		config.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(so *retry.StandardOptions) {
				so.RateLimiter = ratelimit.NewTokenRateLimit(1000000)
			})
		}),
	)
	if err != nil {
		zap.S().Fatalf("unable to load SDK config, %v", err)
	}

	client := dynamodb.NewFromConfig(cfg)
	return client
}

// CreatePrivateClient targets a DynamoDB endpoint other than the regional one,
// e.g. a VPC endpoint.
func CreatePrivateClient(region string, endpoint string) *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithClientLogMode(aws.LogRetries),
	)
	if err != nil {
		zap.S().Fatalf("unable to load SDK config, %v", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return client
}

// CreateClient picks the regional endpoint unless endpoint overrides it.
func CreateClient(region string, endpoint string) *dynamodb.Client {
	if endpoint != "" {
		return CreatePrivateClient(region, endpoint)
	}
	return CreateAwsClient(region)
}

func GetExistingTableNames(ctx context.Context, client *dynamodb.Client) ([]string, error) {
	var tableNames []string
	paginator := dynamodb.NewListTablesPaginator(client, &dynamodb.ListTablesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return []string{}, err
		}
		tableNames = append(tableNames, page.TableNames...)
	}
	return tableNames, nil
}

func DeleteTable(ctx context.Context, client *dynamodb.Client, tableName string) (*dynamodb.DeleteTableOutput, error) {
	table, err := client.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: &tableName})

	if err != nil {
		zap.S().Errorf("Could not delete table %v: %v", tableName, err)
	}

	return table, err
}

func CreateNetworkRecordTable(ctx context.Context, client *dynamodb.Client, tableName string) (*types.TableDescription, error) {
	tableDefinition := TableDefinition{
		TableName:    tableName,
		PartitionKey: AttributeDefinition{db.NetworkIdAttribute, types.ScalarAttributeTypeS},
	}

	return CreateTable(ctx, client, tableDefinition)
}

// EnsureNetworkRecordTable creates the table unless it already exists.
func EnsureNetworkRecordTable(ctx context.Context, client *dynamodb.Client, tableName string) (bool, error) {
	existingTableNames, err := GetExistingTableNames(ctx, client)
	if err != nil {
		return false, err
	}

	if slices.Contains(existingTableNames, tableName) {
		return false, nil
	}

	_, err = CreateNetworkRecordTable(ctx, client, tableName)
	return err == nil, err
}
