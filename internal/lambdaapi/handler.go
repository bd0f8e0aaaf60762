// Package lambdaapi adapts the HTTP router to AWS Lambda invocations,
// so the same chi routes serve API Gateway events through algnhsa.
package lambdaapi

import (
	"time"

	"github.com/bookarc/bookarc/internal/app"
	"github.com/bookarc/bookarc/internal/auth/authorization"
	"github.com/bookarc/bookarc/internal/server"

	"github.com/akrylysov/algnhsa"
	"github.com/aws/aws-lambda-go/lambda"
)

// NewHandler builds the Lambda handler for the API function.
// The request timeout is passed through to the router's timeout middleware.
func NewHandler(svc *app.Service, enforcer *authorization.Enforcer, requestTimeout time.Duration) lambda.Handler {
	router := server.NewRouter(svc, enforcer, requestTimeout)
	return algnhsa.New(router.Handler(), nil)
}
