package identity

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookarc/bookarc/internal/testutil"
)

type fakeCognito struct {
	err error
}

func (f *fakeCognito) ChangePassword(_ context.Context, _ *cognitoidentityprovider.ChangePasswordInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ChangePasswordOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &cognitoidentityprovider.ChangePasswordOutput{}, nil
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name: "success",
		},
		{
			name:       "wrong current password",
			err:        &types.NotAuthorizedException{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "weak new password",
			err:        &types.InvalidPasswordException{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rate limited",
			err:        &types.LimitExceededException{},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "other failures are unavailable",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewProvider(&fakeCognito{err: tt.err})

			err := provider.ChangePassword(testutil.TestContext(), "token", "old-password", "new-password")
			if tt.wantStatus != 0 {
				require.Error(t, err)
				testutil.AssertAppErrorStatus(t, err, tt.wantStatus)
				return
			}
			assert.NoError(t, err)
		})
	}
}
