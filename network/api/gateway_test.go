package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunilrch/AWS-API-Services/network/addressing"
	"github.com/sunilrch/AWS-API-Services/network/fakes"
	"github.com/sunilrch/AWS-API-Services/network/model"
	"github.com/sunilrch/AWS-API-Services/network/services"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

type testEnvironment struct {
	api         *NetworkApi
	provisioner *fakes.FakeProvisioner
	recordDao   *fakes.InMemoryNetworkRecordDao
}

func newTestEnvironment() testEnvironment {
	logger := zap.NewNop().Sugar()
	provisioner := fakes.NewFakeProvisioner("eu-west-3")
	recordDao := fakes.NewInMemoryNetworkRecordDao()
	service := services.NewNetworkService(provisioner, recordDao, addressing.DefaultSubnetPrefixLength, logger)
	return testEnvironment{api: NewNetworkApi(service, logger), provisioner: provisioner, recordDao: recordDao}
}

func (env testEnvironment) create(t *testing.T, body string) events.APIGatewayProxyResponse {
	response, err := env.api.HandleCreateNetwork(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: body})
	require.NoError(t, err)
	assert.Equal(t, "application/json", response.Headers["Content-Type"])
	return response
}

func (env testEnvironment) list(t *testing.T) []model.NetworkRecord {
	response, err := env.api.HandleListNetworks(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var records []model.NetworkRecord
	require.NoError(t, json.Unmarshal([]byte(response.Body), &records))
	return records
}

func decodeError(t *testing.T, response events.APIGatewayProxyResponse) model.ErrorResponse {
	var errorResponse model.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(response.Body), &errorResponse))
	return errorResponse
}

func TestCreateWithDefaultSubnetCount(t *testing.T) {
	env := newTestEnvironment()

	response := env.create(t, `{"address_block":"10.0.0.0/16"}`)
	require.Equal(t, http.StatusCreated, response.StatusCode)

	var created model.CreateNetworkResponse
	require.NoError(t, json.Unmarshal([]byte(response.Body), &created))
	assert.Len(t, created.SubnetIds, 2)
	assert.Equal(t, "10.0.0.0/16", created.AddressBlock)
	assert.NotEmpty(t, created.NetworkId)

	records := env.list(t)
	require.Len(t, records, 1)
	assert.Equal(t, "10.0.0.0/16", records[0].AddressBlock)
	assert.Equal(t, created.SubnetIds, records[0].SubnetIds)
	assert.Equal(t, "eu-west-3", records[0].Region)
}

func TestCreateResponseBodyShape(t *testing.T) {
	env := newTestEnvironment()

	response := env.create(t, `{"address_block":"10.0.0.0/16","subnet_count":1}`)
	require.Equal(t, http.StatusCreated, response.StatusCode)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(response.Body), &fields))
	assert.ElementsMatch(t, []string{"network_id", "subnet_ids", "address_block"}, maps.Keys(fields))
}

func TestErrorMessagesAreNotHtmlEscaped(t *testing.T) {
	env := newTestEnvironment()

	response := env.create(t, `{"address_block":"10.0.0.0/16","subnet_count":true}`)
	require.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, `{"error":"subnet_count must be >= 1"}`, response.Body)
}

func TestCreateBadRequests(t *testing.T) {
	cases := []struct {
		body    string
		message string
	}{
		{`{"address_block":"10.0.0.0/16","subnet_count":0}`, "subnet_count must be >= 1"},
		{`{"address_block":"10.0.0.0/16","subnet_count":-1}`, "subnet_count must be >= 1"},
		{`{"address_block":"10.0.0.0/16","subnet_count":"many"}`, "subnet_count must be >= 1"},
		{`{"address_block":"10.0.0.0/16","subnet_count":[2]}`, "subnet_count must be >= 1"},
		{`{"address_block":"10.0.0.0/16","subnet_count":0.5}`, "subnet_count must be >= 1"},
		{`{"subnet_count":2}`, "address_block is required"},
		{`{"address_block":""}`, "address_block is required"},
		{`{"address_block":null}`, "address_block is required"},
		{`{"address_block":false}`, "address_block is required"},
		{`{"address_block":0}`, "address_block is required"},
		{`{"address_block":[]}`, "address_block is required"},
		{`{"address_block":{}}`, "address_block is required"},
		{`{"address_block":"10.0.0/16"}`, "address_block must be a valid IPv4 CIDR block"},
		{`{"address_block":42}`, "address_block must be a valid IPv4 CIDR block"},
		{`{"address_block":true}`, "address_block must be a valid IPv4 CIDR block"},
		{`{"address_block":["10.0.0.0/16"]}`, "address_block must be a valid IPv4 CIDR block"},
		{`not json`, "invalid request body"},
		{``, "invalid request body"},
		{`["10.0.0.0/16"]`, "invalid request body"},
		{`null`, "invalid request body"},
	}

	for _, c := range cases {
		env := newTestEnvironment()
		response := env.create(t, c.body)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode, c.body)
		assert.Equal(t, model.ErrorResponse{Error: c.message}, decodeError(t, response), c.body)
		assert.Empty(t, env.provisioner.Networks, c.body)
	}
}

func TestCreateCoercesSubnetCount(t *testing.T) {
	cases := map[string]int{
		`{"address_block":"10.0.0.0/16","subnet_count":3}`:     3,
		`{"address_block":"10.0.0.0/16","subnet_count":"4"}`:   4,
		`{"address_block":"10.0.0.0/16","subnet_count":2.9}`:   2,
		`{"address_block":"10.0.0.0/16","subnet_count":1e1}`:   10,
		`{"address_block":"10.0.0.0/16","subnet_count":null}`:  2,
		`{"address_block":"10.0.0.0/16","subnet_count":" 5 "}`: 5,
	}

	for body, expected := range cases {
		env := newTestEnvironment()
		response := env.create(t, body)
		require.Equal(t, http.StatusCreated, response.StatusCode, body)

		var created model.CreateNetworkResponse
		require.NoError(t, json.Unmarshal([]byte(response.Body), &created))
		assert.Len(t, created.SubnetIds, expected, body)
	}
}

func TestCreateTooSmallAddressBlock(t *testing.T) {
	env := newTestEnvironment()

	response := env.create(t, `{"address_block":"10.0.0.0/30","subnet_count":5}`)

	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	errorResponse := decodeError(t, response)
	assert.Equal(t, InternalServerErrorMessage, errorResponse.Error)
	assert.Contains(t, errorResponse.Details, "cannot accommodate 5 /24 subnets")
	assert.Empty(t, env.list(t))
}

func TestCreateProvisioningAndStorageFailures(t *testing.T) {
	env := newTestEnvironment()
	env.provisioner.FailNetworkCreation = true

	response := env.create(t, `{"address_block":"10.0.0.0/16"}`)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.Equal(t, model.ErrorResponse{Error: InternalServerErrorMessage, Details: fakes.ErrInjected.Error()}, decodeError(t, response))

	env = newTestEnvironment()
	env.recordDao.FailPut = true

	response = env.create(t, `{"address_block":"10.0.0.0/16"}`)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.Equal(t, InternalServerErrorMessage, decodeError(t, response).Error)
}

func TestCreateBase64EncodedBody(t *testing.T) {
	env := newTestEnvironment()

	response, err := env.api.HandleCreateNetwork(context.Background(), events.APIGatewayProxyRequest{
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"address_block":"10.0.0.0/16","subnet_count":1}`)),
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, response.StatusCode)

	response, err = env.api.HandleCreateNetwork(context.Background(), events.APIGatewayProxyRequest{
		Body:            "%%%",
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func TestListNetworks(t *testing.T) {
	env := newTestEnvironment()

	response, err := env.api.HandleListNetworks(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "[]", response.Body)

	var networkIds []string
	for _, body := range []string{
		`{"address_block":"10.0.0.0/16"}`,
		`{"address_block":"10.1.0.0/16","subnet_count":3}`,
		`{"address_block":"10.2.0.0/16","subnet_count":0}`,
		`{"address_block":"10.3.0.0/30","subnet_count":5}`,
	} {
		response := env.create(t, body)
		if response.StatusCode == http.StatusCreated {
			var created model.CreateNetworkResponse
			require.NoError(t, json.Unmarshal([]byte(response.Body), &created))
			networkIds = append(networkIds, created.NetworkId)
		}
	}

	records := env.list(t)
	var listedIds []string
	for _, record := range records {
		listedIds = append(listedIds, record.NetworkId)
	}
	assert.Len(t, networkIds, 2)
	assert.ElementsMatch(t, networkIds, listedIds)
}

func TestListNetworksStorageFailure(t *testing.T) {
	env := newTestEnvironment()
	env.recordDao.FailScan = true

	response, err := env.api.HandleListNetworks(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.Equal(t, InternalServerErrorMessage, decodeError(t, response).Error)
}
