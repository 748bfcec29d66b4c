package lambdautils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/google/uuid"
	"github.com/sunilrch/AWS-API-Services/network/model"
	"go.uber.org/zap"
)

type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

func CreateNewClient(region string) *lambda.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithClientLogMode(aws.LogRetries),
	)
	if err != nil {
		zap.S().Fatalf("unable to load SDK config, %v", err)
	}

	client := lambda.NewFromConfig(cfg)
	return client
}

// BuildProxyRequest wraps body the way API Gateway would, with a fresh request id.
func BuildProxyRequest(httpMethod string, path string, body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: httpMethod,
		Path:       path,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  uuid.NewString(),
			HTTPMethod: httpMethod,
			Path:       path,
		},
	}
}

func InvokeCreateNetworkSync(ctx context.Context, client Invoker, functionName string, addressBlock string, subnetCount int) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(map[string]any{
		"address_block": addressBlock,
		"subnet_count":  subnetCount,
	})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return invokeProxySync(ctx, client, functionName, BuildProxyRequest(http.MethodPost, "/networks", string(body)))
}

func InvokeListNetworksSync(ctx context.Context, client Invoker, functionName string) ([]model.NetworkRecord, error) {
	response, err := invokeProxySync(ctx, client, functionName, BuildProxyRequest(http.MethodGet, "/networks", ""))
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%v answered %v: %v", functionName, response.StatusCode, response.Body)
	}

	var records []model.NetworkRecord
	if err = json.Unmarshal([]byte(response.Body), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func invokeProxySync(ctx context.Context, client Invoker, functionName string, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	output, err := client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(functionName),
		Payload:      payload,
	})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if output.FunctionError != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("%v failed (%v): %s", functionName, aws.ToString(output.FunctionError), output.Payload)
	}

	var response events.APIGatewayProxyResponse
	if err = json.Unmarshal(output.Payload, &response); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response, nil
}
