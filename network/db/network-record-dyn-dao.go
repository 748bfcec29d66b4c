package db

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sunilrch/AWS-API-Services/network/model"
	"go.uber.org/zap"
)

const (
	NetworkIdAttribute    = "network_id"
	AddressBlockAttribute = "address_block"
	SubnetIdsAttribute    = "subnet_ids"
	RegionAttribute       = "region"
)

type NetworkRecordTableClient interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type NetworkRecordDynDao struct {
	client    NetworkRecordTableClient
	tableName string
}

func NewNetworkRecordDynDao(client NetworkRecordTableClient, tableName string) *NetworkRecordDynDao {
	return &NetworkRecordDynDao{client: client, tableName: tableName}
}

func (dao *NetworkRecordDynDao) Put(ctx context.Context, record model.NetworkRecord) error {
	_, err := dao.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(dao.tableName),
		Item:      BuildNetworkRecordItem(record),
	})

	return err
}

// ScanAll follows every scan page of the table. Items without a string
// network_id or with a non-list subnet_ids are logged and skipped.
func (dao *NetworkRecordDynDao) ScanAll(ctx context.Context) ([]model.NetworkRecord, error) {
	records := []model.NetworkRecord{}
	paginator := dynamodb.NewScanPaginator(dao.client, &dynamodb.ScanInput{
		TableName: aws.String(dao.tableName),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			record, err := ParseNetworkRecordItem(item)
			if err != nil {
				zap.S().Warnf("Skipping unreadable item in %v: %v", dao.tableName, err)
				continue
			}
			records = append(records, record)
		}
	}

	return records, nil
}

func BuildNetworkRecordItem(record model.NetworkRecord) map[string]types.AttributeValue {
	subnetIds := make([]types.AttributeValue, 0, len(record.SubnetIds))
	for _, subnetId := range record.SubnetIds {
		subnetIds = append(subnetIds, &types.AttributeValueMemberS{Value: subnetId})
	}

	item := map[string]types.AttributeValue{
		NetworkIdAttribute:    &types.AttributeValueMemberS{Value: record.NetworkId},
		AddressBlockAttribute: &types.AttributeValueMemberS{Value: record.AddressBlock},
		SubnetIdsAttribute:    &types.AttributeValueMemberL{Value: subnetIds},
	}
	if record.Region != "" {
		item[RegionAttribute] = &types.AttributeValueMemberS{Value: record.Region}
	}
	return item
}

func ParseNetworkRecordItem(item map[string]types.AttributeValue) (model.NetworkRecord, error) {
	networkId, err := stringAttribute(item, NetworkIdAttribute)
	if err != nil {
		return model.NetworkRecord{}, err
	}
	record := model.NetworkRecord{
		NetworkId: networkId,
		SubnetIds: []string{},
	}
	if addressBlock, ok := item[AddressBlockAttribute].(*types.AttributeValueMemberS); ok {
		record.AddressBlock = addressBlock.Value
	}

	switch subnetIds := item[SubnetIdsAttribute].(type) {
	case *types.AttributeValueMemberL:
		for _, subnetId := range subnetIds.Value {
			s, ok := subnetId.(*types.AttributeValueMemberS)
			if !ok {
				return model.NetworkRecord{}, fmt.Errorf("record %v: malformed %v", networkId, SubnetIdsAttribute)
			}
			record.SubnetIds = append(record.SubnetIds, s.Value)
		}
	case *types.AttributeValueMemberSS:
		// string sets carry no order
		record.SubnetIds = append(record.SubnetIds, subnetIds.Value...)
	case nil:
	default:
		return model.NetworkRecord{}, fmt.Errorf("record %v: malformed %v", networkId, SubnetIdsAttribute)
	}

	if region, ok := item[RegionAttribute].(*types.AttributeValueMemberS); ok {
		record.Region = region.Value
	}

	return record, nil
}

func stringAttribute(item map[string]types.AttributeValue, name string) (string, error) {
	value, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("missing string attribute %v", name)
	}
	return value.Value, nil
}
