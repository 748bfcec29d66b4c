package services

import (
	"context"
	"errors"

	"github.com/sunilrch/AWS-API-Services/network/addressing"
	"github.com/sunilrch/AWS-API-Services/network/model"
	"go.uber.org/zap"
)

type NetworkService struct {
	provisioner        model.NetworkProvisioner
	recordDao          model.NetworkRecordDao
	subnetPrefixLength int
	logger             *zap.SugaredLogger
}

func NewNetworkService(provisioner model.NetworkProvisioner, recordDao model.NetworkRecordDao, subnetPrefixLength int, logger *zap.SugaredLogger) *NetworkService {
	return &NetworkService{
		provisioner:        provisioner,
		recordDao:          recordDao,
		subnetPrefixLength: subnetPrefixLength,
		logger:             logger,
	}
}

func (ns *NetworkService) Validate(request model.CreateNetworkRequest) error {
	if request.AddressBlock == "" {
		return model.NewBadRequestError(model.AddressBlockRequiredMessage)
	}
	if request.SubnetCount < 1 {
		return model.NewBadRequestError(model.InvalidSubnetCountMessage)
	}
	block, err := addressing.ParseAddressBlock(request.AddressBlock)
	if err != nil || !block.Addr().Is4() {
		return model.NewBadRequestError(model.InvalidAddressBlockMessage)
	}
	return nil
}

// CreateNetwork provisions a network and its subnets, then stores the record.
// Nothing is rolled back on failure: a network created before a later step
// fails is left in place.
func (ns *NetworkService) CreateNetwork(ctx context.Context, request model.CreateNetworkRequest) (model.CreateNetworkResponse, error) {
	if err := ns.Validate(request); err != nil {
		return model.CreateNetworkResponse{}, err
	}

	ns.logger.Infof("Creating network with address block: %v", request.AddressBlock)
	networkId, err := ns.provisioner.CreateNetwork(ctx, request.AddressBlock)
	if err != nil {
		ns.logger.Errorf("Could not create network with address block %v: %v", request.AddressBlock, err)
		return model.CreateNetworkResponse{}, model.NewProvisioningError(err)
	}
	ns.logger.Infof("Network created successfully with id: %v", networkId)

	subnetBlocks, err := addressing.Partition(request.AddressBlock, request.SubnetCount, ns.subnetPrefixLength)
	if err != nil {
		ns.logger.Warnf("Network %v is orphaned, partitioning failed: %v", networkId, err)
		if errors.Is(err, addressing.ErrCapacityExceeded) {
			err = model.NewCapacityExceededError(err)
		}
		return model.CreateNetworkResponse{}, model.NewProvisioningError(err)
	}

	subnetIds := make([]string, 0, len(subnetBlocks))
	for _, subnetBlock := range subnetBlocks {
		ns.logger.Infof("Creating subnet with address block: %v in network: %v", subnetBlock, networkId)
		subnetId, err := ns.provisioner.CreateSubnet(ctx, networkId, subnetBlock)
		if err != nil {
			ns.logger.Errorf("Could not create subnet %v in network %v: %v", subnetBlock, networkId, err)
			return model.CreateNetworkResponse{}, model.NewProvisioningError(err)
		}
		ns.logger.Infof("Subnet created successfully with id: %v", subnetId)
		subnetIds = append(subnetIds, subnetId)
	}

	record := model.NetworkRecord{
		NetworkId:    networkId,
		AddressBlock: request.AddressBlock,
		SubnetIds:    subnetIds,
		Region:       ns.provisioner.Region(),
	}
	if err := ns.recordDao.Put(ctx, record); err != nil {
		ns.logger.Errorf("Could not store record for network %v: %v", networkId, err)
		return model.CreateNetworkResponse{}, model.NewStorageError(err)
	}
	ns.logger.Infof("Record for network %v stored successfully", networkId)

	return model.CreateNetworkResponse{
		NetworkId:    networkId,
		SubnetIds:    subnetIds,
		AddressBlock: request.AddressBlock,
	}, nil
}

func (ns *NetworkService) ListNetworks(ctx context.Context) ([]model.NetworkRecord, error) {
	records, err := ns.recordDao.ScanAll(ctx)
	if err != nil {
		ns.logger.Errorf("Could not scan network records: %v", err)
		return nil, model.NewStorageError(err)
	}
	if records == nil {
		records = []model.NetworkRecord{}
	}
	return records, nil
}
