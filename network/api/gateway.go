// Package api adapts API Gateway proxy events to the network service.
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sunilrch/AWS-API-Services/network/model"
	"go.uber.org/zap"
)

const InternalServerErrorMessage = "Internal Server Error"

type NetworkOperations interface {
	CreateNetwork(ctx context.Context, request model.CreateNetworkRequest) (model.CreateNetworkResponse, error)
	ListNetworks(ctx context.Context) ([]model.NetworkRecord, error)
}

type NetworkApi struct {
	operations NetworkOperations
	logger     *zap.SugaredLogger
}

func NewNetworkApi(operations NetworkOperations, logger *zap.SugaredLogger) *NetworkApi {
	return &NetworkApi{operations: operations, logger: logger}
}

func (a *NetworkApi) HandleCreateNetwork(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(request)
	if err != nil {
		return a.errorResponse(model.NewBadRequestError(model.InvalidBodyMessage)), nil
	}

	createRequest, err := model.ParseCreateNetworkRequest(body)
	if err != nil {
		return a.errorResponse(err), nil
	}

	response, err := a.operations.CreateNetwork(ctx, createRequest)
	if err != nil {
		return a.errorResponse(err), nil
	}

	return a.jsonResponse(http.StatusCreated, response), nil
}

func (a *NetworkApi) HandleListNetworks(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	records, err := a.operations.ListNetworks(ctx)
	if err != nil {
		return a.errorResponse(err), nil
	}
	if records == nil {
		records = []model.NetworkRecord{}
	}

	return a.jsonResponse(http.StatusOK, records), nil
}

func requestBody(request events.APIGatewayProxyRequest) ([]byte, error) {
	if request.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(request.Body)
	}
	return []byte(request.Body), nil
}

func StatusCodeOf(err error) int {
	if model.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (a *NetworkApi) errorResponse(err error) events.APIGatewayProxyResponse {
	statusCode := StatusCodeOf(err)
	if statusCode == http.StatusBadRequest {
		a.logger.Infof("Rejected request: %v", err)
		return a.jsonResponse(statusCode, model.ErrorResponse{Error: err.Error()})
	}

	a.logger.Errorf("Request failed (%v): %v", model.KindOf(err), err)
	return a.jsonResponse(statusCode, model.ErrorResponse{Error: InternalServerErrorMessage, Details: err.Error()})
}

func (a *NetworkApi) jsonResponse(statusCode int, payload any) events.APIGatewayProxyResponse {
	body, err := encodeJson(payload)
	if err != nil {
		a.logger.Errorf("Could not marshal response: %v", err)
		statusCode = http.StatusInternalServerError
		body, _ = encodeJson(model.ErrorResponse{Error: InternalServerErrorMessage, Details: err.Error()})
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

// encodeJson leaves <, > and & unescaped so messages read as written.
func encodeJson(payload any) (string, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buffer.String(), "\n"), nil
}
