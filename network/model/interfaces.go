package model

import "context"

type NetworkProvisioner interface {
	CreateNetwork(ctx context.Context, addressBlock string) (string, error)
	CreateSubnet(ctx context.Context, networkId string, addressBlock string) (string, error)
	Region() string
}

type NetworkRecordDao interface {
	Put(ctx context.Context, record NetworkRecord) error
	ScanAll(ctx context.Context) ([]NetworkRecord, error)
}
