package provisioner

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

type Ec2NetworkClient interface {
	CreateVpc(ctx context.Context, params *ec2.CreateVpcInput, optFns ...func(*ec2.Options)) (*ec2.CreateVpcOutput, error)
	CreateSubnet(ctx context.Context, params *ec2.CreateSubnetInput, optFns ...func(*ec2.Options)) (*ec2.CreateSubnetOutput, error)
}

// Ec2NetworkProvisioner creates VPCs and subnets. Calls are never retried here
// beyond what the SDK retryer does.
type Ec2NetworkProvisioner struct {
	client Ec2NetworkClient
	region string
	logger *zap.SugaredLogger
}

func NewEc2NetworkProvisioner(client Ec2NetworkClient, region string, logger *zap.SugaredLogger) *Ec2NetworkProvisioner {
	return &Ec2NetworkProvisioner{client: client, region: region, logger: logger}
}

func (p *Ec2NetworkProvisioner) CreateNetwork(ctx context.Context, addressBlock string) (string, error) {
	output, err := p.client.CreateVpc(ctx, &ec2.CreateVpcInput{
		CidrBlock: aws.String(addressBlock),
	})
	if err != nil {
		p.logApiError("CreateVpc", err)
		return "", err
	}
	if output.Vpc == nil || aws.ToString(output.Vpc.VpcId) == "" {
		return "", errors.New("CreateVpc returned no vpc id")
	}

	return aws.ToString(output.Vpc.VpcId), nil
}

func (p *Ec2NetworkProvisioner) CreateSubnet(ctx context.Context, networkId string, addressBlock string) (string, error) {
	output, err := p.client.CreateSubnet(ctx, &ec2.CreateSubnetInput{
		VpcId:     aws.String(networkId),
		CidrBlock: aws.String(addressBlock),
	})
	if err != nil {
		p.logApiError("CreateSubnet", err)
		return "", err
	}
	if output.Subnet == nil || aws.ToString(output.Subnet.SubnetId) == "" {
		return "", fmt.Errorf("CreateSubnet returned no subnet id for %v in %v", addressBlock, networkId)
	}

	return aws.ToString(output.Subnet.SubnetId), nil
}

func (p *Ec2NetworkProvisioner) Region() string {
	return p.region
}

func (p *Ec2NetworkProvisioner) logApiError(operation string, err error) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		p.logger.Errorf("%v failed with code %v: %v", operation, apiErr.ErrorCode(), apiErr.ErrorMessage())
	} else {
		p.logger.Errorf("%v failed with an error that was not an API error: %v", operation, err)
	}
}
