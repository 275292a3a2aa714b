package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"locali/models"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
)

// FirebaseIdentity backs accounts with Firebase Authentication. The Admin SDK creates users and
// verifies ID tokens; password sign-in goes through the Identity Toolkit REST API.
type FirebaseIdentity struct {
	Auth    *auth.Client
	Toolkit *identitytoolkit.Service
}

func (f *FirebaseIdentity) CreateIdentity(ctx context.Context, email, password, name string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name)
	rec, err := f.Auth.CreateUser(ctx, params)
	if auth.IsEmailAlreadyExists(err) {
		return "", ErrEmailInUse
	}
	if err != nil {
		return "", fmt.Errorf("create firebase user: %w", err)
	}
	return rec.UID, nil
}

func (f *FirebaseIdentity) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	resp, err := f.Toolkit.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest {
			// EMAIL_NOT_FOUND, INVALID_PASSWORD, USER_DISABLED and friends.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("firebase sign-in: %w", err)
	}
	return &models.AuthSession{
		UserID:    resp.LocalId,
		Token:     resp.IdToken,
		ExpiresIn: resp.ExpiresIn,
	}, nil
}

func (f *FirebaseIdentity) VerifyToken(ctx context.Context, token string) (string, time.Time, error) {
	tok, err := f.Auth.VerifyIDToken(ctx, token)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return tok.UID, time.Unix(tok.Expires, 0), nil
}
