package model

const DefaultSubnetCount = 2

type NetworkRecord struct {
	NetworkId    string   `json:"network_id"`
	AddressBlock string   `json:"address_block"`
	SubnetIds    []string `json:"subnet_ids"`
	Region       string   `json:"region,omitempty"`
}

type CreateNetworkRequest struct {
	AddressBlock string
	SubnetCount  int
}

func NewCreateNetworkRequest(addressBlock string) CreateNetworkRequest {
	return CreateNetworkRequest{AddressBlock: addressBlock, SubnetCount: DefaultSubnetCount}
}

type CreateNetworkResponse struct {
	NetworkId    string   `json:"network_id"`
	SubnetIds    []string `json:"subnet_ids"`
	AddressBlock string   `json:"address_block"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
