package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(variables map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		value, ok := variables[name]
		return value, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(lookupFrom(map[string]string{TableNameVariable: "NetworkRecords"}))
	require.NoError(t, err)

	assert.Equal(t, Config{
		TableName:             "NetworkRecords",
		Region:                DefaultRegion,
		SubnetPrefixLength:    24,
		LogLevel:              DefaultLogLevel,
		CreateNetworkFunction: DefaultCreateNetworkFunction,
		ListNetworksFunction:  DefaultListNetworksFunction,
	}, cfg)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(lookupFrom(map[string]string{
		TableNameVariable:          "Vpcs",
		DynamoEndpointVariable:     "http://localhost:8000",
		RegionVariable:             "us-east-1",
		SubnetPrefixLengthVariable: "26",
		LogLevelVariable:           "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "Vpcs", cfg.TableName)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoEndpoint)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, 26, cfg.SubnetPrefixLength)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(lookupFrom(map[string]string{}))
	assert.ErrorIs(t, err, ErrMissingTableName)

	_, err = Load(lookupFrom(map[string]string{TableNameVariable: ""}))
	assert.ErrorIs(t, err, ErrMissingTableName)

	for _, prefixLength := range []string{"0", "33", "abc"} {
		_, err = Load(lookupFrom(map[string]string{TableNameVariable: "Vpcs", SubnetPrefixLengthVariable: prefixLength}))
		assert.Error(t, err, prefixLength)
	}
}
