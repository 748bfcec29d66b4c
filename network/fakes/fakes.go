// Package fakes provides in-memory collaborators for exercising the network
// service without AWS.
package fakes

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sunilrch/AWS-API-Services/network/model"
)

var ErrInjected = errors.New("injected failure")

type SubnetAllocation struct {
	SubnetId     string
	NetworkId    string
	AddressBlock string
}

type FakeProvisioner struct {
	mu     sync.Mutex
	region string

	Networks map[string]string
	Subnets  []SubnetAllocation

	// FailNetworkCreation makes every CreateNetwork call fail.
	FailNetworkCreation bool
	// FailSubnetAfter makes CreateSubnet fail once this many subnets exist.
	// Negative disables it.
	FailSubnetAfter int
}

func NewFakeProvisioner(region string) *FakeProvisioner {
	return &FakeProvisioner{
		region:          region,
		Networks:        make(map[string]string),
		FailSubnetAfter: -1,
	}
}

func (p *FakeProvisioner) CreateNetwork(_ context.Context, addressBlock string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailNetworkCreation {
		return "", ErrInjected
	}
	networkId := "vpc-" + uuid.NewString()
	p.Networks[networkId] = addressBlock
	return networkId, nil
}

func (p *FakeProvisioner) CreateSubnet(_ context.Context, networkId string, addressBlock string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailSubnetAfter >= 0 && len(p.Subnets) >= p.FailSubnetAfter {
		return "", ErrInjected
	}
	if _, ok := p.Networks[networkId]; !ok {
		return "", errors.New("unknown network " + networkId)
	}
	subnetId := "subnet-" + uuid.NewString()
	p.Subnets = append(p.Subnets, SubnetAllocation{SubnetId: subnetId, NetworkId: networkId, AddressBlock: addressBlock})
	return subnetId, nil
}

func (p *FakeProvisioner) Region() string {
	return p.region
}

func (p *FakeProvisioner) SubnetBlocks(networkId string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var blocks []string
	for _, subnet := range p.Subnets {
		if subnet.NetworkId == networkId {
			blocks = append(blocks, subnet.AddressBlock)
		}
	}
	return blocks
}

type InMemoryNetworkRecordDao struct {
	mu      sync.Mutex
	records []model.NetworkRecord

	FailPut  bool
	FailScan bool
}

func NewInMemoryNetworkRecordDao(records ...model.NetworkRecord) *InMemoryNetworkRecordDao {
	return &InMemoryNetworkRecordDao{records: records}
}

// Put replaces any record sharing the network id.
func (dao *InMemoryNetworkRecordDao) Put(_ context.Context, record model.NetworkRecord) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	if dao.FailPut {
		return ErrInjected
	}
	record.SubnetIds = slices.Clone(record.SubnetIds)
	existing := slices.IndexFunc(dao.records, func(stored model.NetworkRecord) bool {
		return stored.NetworkId == record.NetworkId
	})
	if existing >= 0 {
		dao.records[existing] = record
		return nil
	}
	dao.records = append(dao.records, record)
	return nil
}

func (dao *InMemoryNetworkRecordDao) ScanAll(_ context.Context) ([]model.NetworkRecord, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	if dao.FailScan {
		return nil, ErrInjected
	}
	return slices.Clone(dao.records), nil
}

func (dao *InMemoryNetworkRecordDao) Len() int {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	return len(dao.records)
}
