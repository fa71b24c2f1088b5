package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"product-catalog-api/internal/config"
	"product-catalog-api/internal/handlers"
	"product-catalog-api/pkg/lambda"
	"product-catalog-api/pkg/server"
)

var container *server.Container

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	manager := lambda.GetConnectionManager()
	if err := manager.Initialize(context.Background(), cfg); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	container, err = manager.GetContainer(context.Background())
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req := &lambda.Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,
	}

	resp, err := route(req.Method, req.PathParams)(ctx, req)
	if err != nil {
		// The error-mapping middleware handles every handler error;
		// reaching this point means response encoding itself failed.
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"code":"internal_server_error","message":"unknown error"}`,
		}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}, nil
}

// route picks the operation handler and wraps it with the middleware
// pipeline: logging outermost, then a post-invocation metric flush,
// then error mapping, then panic recovery.
func route(method string, pathParams map[string]string) lambda.HandlerFunc {
	h := handlers.NewProductHandler(container.ProductService)

	var op lambda.HandlerFunc
	switch {
	case method == http.MethodGet && pathParams["id"] != "":
		op = h.HandleGet
	case method == http.MethodGet:
		op = h.HandleList
	case method == http.MethodPost:
		op = h.HandleCreate
	case method == http.MethodPut:
		op = h.HandleUpdate
	case method == http.MethodDelete:
		op = h.HandleDelete
	default:
		op = notFound
	}

	return lambda.Chain(op,
		lambda.WithRequestLogging(container.Logger),
		lambda.WithMetricsFlush(container.ForceFlush, container.Logger),
		lambda.WithErrorMapping(),
		lambda.WithRecovery(container.Logger),
	)
}

func notFound(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return lambda.JSON(http.StatusNotFound, map[string]string{
		"code":    "not_found",
		"message": "route not found",
	})
}

func main() {
	awslambda.Start(handler)
}
