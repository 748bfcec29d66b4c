package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	InvalidBodyMessage          = "invalid request body"
	AddressBlockRequiredMessage = "address_block is required"
	InvalidAddressBlockMessage  = "address_block must be a valid IPv4 CIDR block"
	InvalidSubnetCountMessage   = "subnet_count must be >= 1"
)

// ParseCreateNetworkRequest decodes a create request body. subnet_count falls
// back to DefaultSubnetCount when absent or null, and is otherwise coerced to an
// integer: numbers are truncated toward zero, strings must hold a decimal integer.
func ParseCreateNetworkRequest(body []byte) (CreateNetworkRequest, error) {
	var fields map[string]any
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&fields); err != nil || fields == nil {
		return CreateNetworkRequest{}, NewBadRequestError(InvalidBodyMessage)
	}
	if decoder.More() {
		return CreateNetworkRequest{}, NewBadRequestError(InvalidBodyMessage)
	}

	var request CreateNetworkRequest
	addressBlock := fields["address_block"]
	if isEmptyValue(addressBlock) {
		return CreateNetworkRequest{}, NewBadRequestError(AddressBlockRequiredMessage)
	}
	if s, ok := addressBlock.(string); ok {
		request.AddressBlock = s
	} else {
		return CreateNetworkRequest{}, NewBadRequestError(InvalidAddressBlockMessage)
	}

	subnetCount, ok := coerceSubnetCount(fields["subnet_count"])
	if !ok || subnetCount < 1 {
		return CreateNetworkRequest{}, NewBadRequestError(InvalidSubnetCountMessage)
	}
	request.SubnetCount = subnetCount

	return request, nil
}

// isEmptyValue reports whether a decoded JSON value is null, false, zero or empty.
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func coerceSubnetCount(value any) (int, bool) {
	switch v := value.(type) {
	case nil:
		return DefaultSubnetCount, true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return clampToInt(float64(i))
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return clampToInt(math.Trunc(f))
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return clampToInt(float64(i))
	default:
		return 0, false
	}
}

// Counts this large can never fit an address block, so saturating keeps them
// failing on capacity rather than on validation.
func clampToInt(f float64) (int, bool) {
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	if f < math.MinInt32 {
		return math.MinInt32, true
	}
	return int(f), true
}
