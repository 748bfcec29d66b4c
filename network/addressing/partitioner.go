// Package addressing splits an address block into equally sized sub-blocks.
package addressing

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"net/netip"
)

const DefaultSubnetPrefixLength = 24

var (
	ErrInvalidAddressBlock       = errors.New("invalid address block")
	ErrInvalidSubnetCount        = errors.New("subnet count must be >= 1")
	ErrInvalidSubnetPrefixLength = errors.New("invalid subnet prefix length")
	ErrCapacityExceeded          = errors.New("address block capacity exceeded")
)

// ParseAddressBlock parses a CIDR string. The address must be the network
// address of the block: "10.0.0.1/16" is rejected.
func ParseAddressBlock(addressBlock string) (netip.Prefix, error) {
	prefix, err := netip.ParsePrefix(addressBlock)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w %q: %v", ErrInvalidAddressBlock, addressBlock, err)
	}
	if prefix.Masked() != prefix {
		return netip.Prefix{}, fmt.Errorf("%w %q: host bits set", ErrInvalidAddressBlock, addressBlock)
	}
	return prefix, nil
}

// Capacity is the number of sub-blocks of subnetPrefixLength bits that fit in
// block, saturated at math.MaxUint64. It is zero when a sub-block would be
// larger than block itself.
func Capacity(block netip.Prefix, subnetPrefixLength int) uint64 {
	extraBits := subnetPrefixLength - block.Bits()
	if extraBits < 0 {
		return 0
	}
	if extraBits >= 64 {
		return math.MaxUint64
	}
	return uint64(1) << extraBits
}

// Partition returns the first count sub-blocks of subnetPrefixLength bits inside
// addressBlock, in ascending address order.
func Partition(addressBlock string, count int, subnetPrefixLength int) ([]string, error) {
	block, err := ParseAddressBlock(addressBlock)
	if err != nil {
		return nil, err
	}

	subBlocks, err := PartitionPrefix(block, count, subnetPrefixLength)
	if err != nil {
		return nil, err
	}

	cidrs := make([]string, 0, len(subBlocks))
	for _, subBlock := range subBlocks {
		cidrs = append(cidrs, subBlock.String())
	}
	return cidrs, nil
}

func PartitionPrefix(block netip.Prefix, count int, subnetPrefixLength int) ([]netip.Prefix, error) {
	if !block.IsValid() {
		return nil, ErrInvalidAddressBlock
	}
	if count < 1 {
		return nil, ErrInvalidSubnetCount
	}
	addressBits := block.Addr().BitLen()
	if subnetPrefixLength < 0 || subnetPrefixLength > addressBits {
		return nil, fmt.Errorf("%w: /%v", ErrInvalidSubnetPrefixLength, subnetPrefixLength)
	}
	// A block smaller than a single sub-block has no capacity at all.
	if uint64(count) > Capacity(block, subnetPrefixLength) {
		return nil, fmt.Errorf("%w: %v cannot accommodate %v /%v subnets", ErrCapacityExceeded, block, count, subnetPrefixLength)
	}

	base := new(big.Int).SetBytes(block.Masked().Addr().AsSlice())
	step := new(big.Int).Lsh(big.NewInt(1), uint(addressBits-subnetPrefixLength))
	buf := make([]byte, addressBits/8)

	subBlocks := make([]netip.Prefix, 0, count)
	current := new(big.Int).Set(base)
	for i := 0; i < count; i++ {
		addr, _ := netip.AddrFromSlice(current.FillBytes(buf))
		subBlocks = append(subBlocks, netip.PrefixFrom(addr, subnetPrefixLength))
		current.Add(current, step)
	}

	return subBlocks, nil
}
