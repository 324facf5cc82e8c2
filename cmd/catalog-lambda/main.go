package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/catalog-lab/catalog-api/internal/catalog"
	"github.com/catalog-lab/catalog-api/internal/router"
	"github.com/catalog-lab/catalog-api/internal/store"
	"github.com/catalog-lab/catalog-api/pkg/config"
	"github.com/catalog-lab/catalog-api/pkg/logger"
)

// The store client is built once per execution environment and reused
// across invocations; each invocation itself is stateless.
var rt *router.Router

func main() {
	cfg := config.Load()
	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)

	st, err := store.NewDynamo(context.Background(), cfg.AWSRegion, cfg.TableName, cfg.DynamoEndpoint, logger.L())
	if err != nil {
		logger.S().Fatalw("failed to init store", "table", cfg.TableName, "error", err)
	}

	svc := catalog.NewService(st, logger.L())
	rt = router.New(svc, cfg.StagePrefix, cfg.CORSOrigin, logger.L())

	lambda.Start(handle)
}

func handle(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := rt.Handle(ctx, router.Request{
		Method:          ev.HTTPMethod,
		Path:            ev.Path,
		PathParameters:  ev.PathParameters,
		QueryParameters: ev.QueryStringParameters,
		Body:            ev.Body,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}, nil
}
