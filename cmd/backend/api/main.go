// Package main implements the AWS Lambda entrypoint for the bookarc API.
// It serves every HTTP route behind the API Gateway JWT authorizer.
package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/bookarc/bookarc/internal/app"
	"github.com/bookarc/bookarc/internal/auth/authorization"
	"github.com/bookarc/bookarc/internal/config"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/lambdaapi"
	"github.com/bookarc/bookarc/internal/logger"
)

const initTimeout = 30 * time.Second

func main() {
	cfg := config.MustLoadEnv()
	log := logger.Initialize(cfg.Environment, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	svc, err := app.Initialize(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("failed to initialize service", "error", err)
		os.Exit(1)
	}

	enforcer, err := authorization.NewEnforcer(log)
	if err != nil {
		log.Error("failed to initialize authorization enforcer", "error", err)
		os.Exit(1)
	}

	log.With("version", *constants.GetVersion()).Debug("starting API Lambda handler")
	handler := lambdaapi.NewHandler(svc, enforcer, cfg.RequestTimeout)
	lambda.Start(handler)
}
