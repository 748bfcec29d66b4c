package fakes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunilrch/AWS-API-Services/network/model"
)

func TestPutReplacesRecordWithSameNetworkId(t *testing.T) {
	dao := NewInMemoryNetworkRecordDao()
	ctx := context.Background()

	require.NoError(t, dao.Put(ctx, model.NetworkRecord{NetworkId: "vpc-1", AddressBlock: "10.0.0.0/16", SubnetIds: []string{"subnet-1"}}))
	require.NoError(t, dao.Put(ctx, model.NetworkRecord{NetworkId: "vpc-2", AddressBlock: "10.1.0.0/16", SubnetIds: []string{}}))
	require.NoError(t, dao.Put(ctx, model.NetworkRecord{NetworkId: "vpc-1", AddressBlock: "10.2.0.0/16", SubnetIds: []string{"subnet-9"}}))

	records, err := dao.ScanAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dao.Len())
	assert.Equal(t, []model.NetworkRecord{
		{NetworkId: "vpc-1", AddressBlock: "10.2.0.0/16", SubnetIds: []string{"subnet-9"}},
		{NetworkId: "vpc-2", AddressBlock: "10.1.0.0/16", SubnetIds: []string{}},
	}, records)
}
