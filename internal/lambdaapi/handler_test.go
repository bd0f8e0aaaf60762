package lambdaapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookarc/bookarc/internal/app"
	"github.com/bookarc/bookarc/internal/testutil"
)

func TestNewHandlerServesGatewayEvents(t *testing.T) {
	svc := app.NewService(app.Repositories{}, nil, nil, testutil.SilentLogger())
	handler := NewHandler(svc, nil, 5*time.Second)

	event := events.APIGatewayV2HTTPRequest{
		Version: "2.0",
		RawPath: "/api/v1/health",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: "GET",
				Path:   "/api/v1/health",
			},
		},
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	raw, err := handler.Invoke(testutil.TestContext(), payload)
	require.NoError(t, err)

	var resp events.APIGatewayV2HTTPResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Body, `"status":"ok"`)
}
