// Package main implements the Cognito post-confirmation trigger for bookarc.
// It provisions the database row and default reading lists for a freshly
// confirmed account. The trigger must never fail the sign-up flow, so
// provisioning errors are logged and the event is returned unchanged; the
// next authenticated request retries provisioning.
package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/bookarc/bookarc/internal/app"
	"github.com/bookarc/bookarc/internal/config"
	"github.com/bookarc/bookarc/internal/logger"
)

const initTimeout = 30 * time.Second

type handler struct {
	svc *app.Service
}

func (h *handler) handle(
	ctx context.Context,
	event events.CognitoEventUserPoolsPostConfirmation,
) (events.CognitoEventUserPoolsPostConfirmation, error) {
	sub := event.Request.UserAttributes["sub"]
	email := event.Request.UserAttributes["email"]
	username := event.UserName

	if sub == "" {
		h.svc.Logger.Error("post-confirmation event without sub", "username", username)
		return event, nil
	}

	if _, err := h.svc.ProvisionUser(ctx, sub, email, username); err != nil {
		h.svc.Logger.Error("failed to provision user",
			"username", username,
			"error", err,
		)
		return event, nil
	}

	h.svc.Logger.Info("provisioned user account", "username", username)
	return event, nil
}

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

	h := &handler{svc: svc}
	lambda.Start(h.handle)
}
