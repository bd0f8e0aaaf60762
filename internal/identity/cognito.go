// Package identity wraps the Cognito operations bookarc performs on behalf
// of a signed-in user. Sign-up, sign-in, and token refresh happen directly
// between the client and the user pool; only password changes route through
// the backend so the action can be confirmed with a notification.
package identity

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// CognitoAPI mirrors the cognito-idp client methods used here so tests can
// substitute a fake.
type CognitoAPI interface {
	ChangePassword(ctx context.Context, params *cognitoidentityprovider.ChangePasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ChangePasswordOutput, error)
}

// Provider performs identity operations against a Cognito user pool.
type Provider struct {
	client CognitoAPI
}

// NewProvider creates a Provider around a cognito-idp client.
func NewProvider(client CognitoAPI) *Provider {
	return &Provider{client: client}
}

// ChangePassword changes the password for the user owning accessToken.
// Cognito validates the previous password itself.
func (p *Provider) ChangePassword(ctx context.Context, accessToken, previous, proposed string) error {
	_, err := p.client.ChangePassword(ctx, &cognitoidentityprovider.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(previous),
		ProposedPassword: aws.String(proposed),
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return apperrors.ErrUnauthorized("current password is incorrect", err)
		}
		var invalidPassword *types.InvalidPasswordException
		if errors.As(err, &invalidPassword) {
			return apperrors.ErrBadRequest("new password does not meet the password policy", err)
		}
		var limitExceeded *types.LimitExceededException
		if errors.As(err, &limitExceeded) {
			return apperrors.ErrServiceUnavailable("too many attempts, try again later", err)
		}
		return apperrors.ErrServiceUnavailable("password change failed", err)
	}
	return nil
}
