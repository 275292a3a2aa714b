package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"locali/database/repository"
	userRepo "locali/database/repository/user"
	"locali/models"
	"locali/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalIdentity keeps bcrypt hashes in the credentials collection and issues HS256 tokens.
type LocalIdentity struct {
	Credentials userRepo.CredentialRepository
	Tokens      *utils.TokenIssuer
	Lifetime    time.Duration
}

func (l *LocalIdentity) CreateIdentity(ctx context.Context, email, password, _ string) (string, error) {
	existing, err := l.Credentials.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailInUse
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	cred := &models.Credential{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := l.Credentials.Create(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrEmailInUse
		}
		return "", err
	}
	return cred.UserID, nil
}

func (l *LocalIdentity) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	cred, err := l.Credentials.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := l.Tokens.GenerateToken(cred.UserID, cred.Email, l.Lifetime)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &models.AuthSession{
		UserID:    cred.UserID,
		Token:     token,
		ExpiresIn: int64(l.Lifetime / time.Second),
	}, nil
}

func (l *LocalIdentity) VerifyToken(_ context.Context, token string) (string, time.Time, error) {
	sub, exp, err := l.Tokens.ExtractClaims(strings.TrimSpace(token))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return sub, exp, nil
}
