// Command curricularace-lambda adapts the HTTP API in internal/server to
// run behind API Gateway as an AWS Lambda function.
package main

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"curricularace/internal/auth"
	"curricularace/internal/batchlog"
	"curricularace/internal/config"
	"curricularace/internal/jobstore"
	"curricularace/internal/server"
)

var adapter *httpadapter.HandlerAdapter

func init() {
	cfg := config.Load()
	log := batchlog.New(false)

	ctx := context.Background()
	jobs, err := jobstore.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open job store")
	}

	idem, err := server.NewIdempotencyStore(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open idempotency store")
	}

	apiKeyHash, err := auth.HashAPIKey(cfg.APIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("hash api key")
	}

	srv := &server.Server{
		Jobs:      jobs,
		Idem:      idem,
		JWTSecret: []byte(cfg.JWTSecret),
		APIKeys:   map[string]string{cfg.ClientID: apiKeyHash},
		Log:       log,
		Runner: func(jobID string, csvBytes []byte) (string, string, error) {
			// Lambda has no durable local disk between invocations and
			// this build wires no queue or object store for a separate
			// worker to pull csvBytes from, so a submission here cannot
			// actually be analyzed. Fail loudly instead of reporting a
			// job as succeeded with nothing behind it.
			return "", "", errors.New("analyze is not supported over the lambda transport in this deployment")
		},
	}

	adapter = httpadapter.New(srv.NewRouter())
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
