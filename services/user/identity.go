package user

import (
	"context"
	"time"

	"locali/models"
)

// IdentityProvider owns email/password identities. Profiles live in the user repository.
type IdentityProvider interface {
	// CreateIdentity returns the new uid. A taken email yields ErrEmailInUse.
	CreateIdentity(ctx context.Context, email, password, name string) (string, error)
	// SignIn returns a bearer token for the identity. Bad credentials yield ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (*models.AuthSession, error)
}

// TokenVerifier resolves a bearer token to a uid and its expiry.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, time.Time, error)
}
