package userRepo

import (
	"context"

	"locali/models"
)

// UserRepository stores member profiles keyed by the auth provider's uid.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns nil, nil when no profile uses the address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

// CredentialRepository stores password hashes for the local auth mode.
type CredentialRepository interface {
	Create(ctx context.Context, cred *models.Credential) error
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
}
