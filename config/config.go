package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sunilrch/AWS-API-Services/network/addressing"
)

const (
	TableNameVariable             = "DDB_TABLE"
	DynamoEndpointVariable        = "DDB_URL"
	RegionVariable                = "AWS_REGION"
	SubnetPrefixLengthVariable    = "SUBNET_PREFIX_LENGTH"
	LogLevelVariable              = "LOG_LEVEL"
	CreateNetworkFunctionVariable = "CREATE_NETWORK_FUNCTION"
	ListNetworksFunctionVariable  = "LIST_NETWORKS_FUNCTION"
)

const (
	DefaultRegion                = "eu-west-3"
	DefaultCreateNetworkFunction = "CreateNetwork"
	DefaultListNetworksFunction  = "ListNetworks"
	DefaultLogLevel              = "info"

	maxIPv4SubnetPrefixLength = 32
)

var ErrMissingTableName = errors.New(TableNameVariable + " is not set")

type Config struct {
	TableName          string
	DynamoEndpoint     string
	Region             string
	SubnetPrefixLength int
	LogLevel           string

	CreateNetworkFunction string
	ListNetworksFunction  string
}

func LoadFromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

// Load resolves the configuration once, reading variables through lookup.
func Load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		Region:                DefaultRegion,
		SubnetPrefixLength:    addressing.DefaultSubnetPrefixLength,
		LogLevel:              DefaultLogLevel,
		CreateNetworkFunction: DefaultCreateNetworkFunction,
		ListNetworksFunction:  DefaultListNetworksFunction,
	}

	tableName, ok := lookup(TableNameVariable)
	if !ok || tableName == "" {
		return Config{}, ErrMissingTableName
	}
	cfg.TableName = tableName

	if endpoint, ok := lookup(DynamoEndpointVariable); ok {
		cfg.DynamoEndpoint = endpoint
	}
	if region, ok := lookup(RegionVariable); ok && region != "" {
		cfg.Region = region
	}
	if level, ok := lookup(LogLevelVariable); ok && level != "" {
		cfg.LogLevel = level
	}
	if name, ok := lookup(CreateNetworkFunctionVariable); ok && name != "" {
		cfg.CreateNetworkFunction = name
	}
	if name, ok := lookup(ListNetworksFunctionVariable); ok && name != "" {
		cfg.ListNetworksFunction = name
	}

	if value, ok := lookup(SubnetPrefixLengthVariable); ok && value != "" {
		prefixLength, err := strconv.Atoi(value)
		if err != nil || prefixLength < 1 || prefixLength > maxIPv4SubnetPrefixLength {
			return Config{}, fmt.Errorf("%v must be an integer between 1 and %v, got %q", SubnetPrefixLengthVariable, maxIPv4SubnetPrefixLength, value)
		}
		cfg.SubnetPrefixLength = prefixLength
	}

	return cfg, nil
}
