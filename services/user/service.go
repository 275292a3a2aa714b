package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"locali/database/repository"
	userRepo "locali/database/repository/user"
	"locali/models"
	"locali/services/recommend"
	"locali/services/storage"
	"locali/utils"

	"go.uber.org/zap"
)

const (
	minPasswordLength = 6
	defaultRole       = "User"
	defaultPhotoURL   = "/placeholder.svg?height=40&width=40"
)

// UserService manages member accounts and profiles.
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.AuthSession, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error)
	UpdatePhoto(ctx context.Context, userID string, r io.Reader) (string, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
}

type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Identity  IdentityProvider
	Blobs     storage.BlobStore
	Recommend recommend.RecommendService
	Logger    *zap.Logger
	Now       func() time.Time
}

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates the identity and the profile document with community defaults.
func (s *DefaultUserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		s.Logger.Error("Failed to check for existing user", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	uid, err := s.Identity.CreateIdentity(ctx, email, password, name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &models.User{
		ID:             uid,
		Name:           name,
		Email:          email,
		PhotoURL:       defaultPhotoURL,
		Organization:   utils.DefaultOrganization,
		Interests:      []string{},
		Role:           defaultRole,
		AttendedEvents: []string{},
		RsvpedEvents:   []string{},
		LastLogin:      now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		s.Logger.Error("Failed to create user profile", zap.String("userID", uid), zap.Error(err))
		return nil, err
	}
	s.Logger.Info("user registered", zap.String("userID", uid))
	return u, nil
}

// Login signs in through the identity provider and stamps lastLogin.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.AuthSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	session, err := s.Identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	err = s.Repo.Update(ctx, session.UserID, map[string]interface{}{"lastLogin": s.now()})
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.Logger.Warn("Failed to update last login", zap.String("userID", session.UserID), zap.Error(err))
	}
	return session, nil
}

func (s *DefaultUserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		fields["name"] = name
	}
	if upd.Bio != nil {
		fields["bio"] = strings.TrimSpace(*upd.Bio)
	}
	if upd.FieldOfStudy != nil {
		fields["fieldOfStudy"] = strings.TrimSpace(*upd.FieldOfStudy)
	}
	if upd.Organization != nil {
		fields["organization"] = strings.TrimSpace(*upd.Organization)
	}
	if upd.Interests != nil {
		fields["interests"] = normalizeInterests(upd.Interests)
	}
	if len(fields) > 0 {
		if err := s.Repo.Update(ctx, userID, fields); err != nil {
			return nil, err
		}
		s.invalidate(ctx, userID)
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpdatePhoto stores a new profile photo and returns its URL.
func (s *DefaultUserService) UpdatePhoto(ctx context.Context, userID string, r io.Reader) (string, error) {
	if s.Blobs == nil {
		return "", errors.New("photo storage is not configured")
	}
	if _, err := s.Repo.GetByID(ctx, userID); err != nil {
		return "", err
	}
	img, err := storage.ReadImage(r, utils.MaxImageUploadBytes)
	if err != nil {
		return "", err
	}
	url, err := s.Blobs.Upload(ctx, storage.ProfilePhotoPath(userID), img.Reader(), img.ContentType)
	if err != nil {
		return "", err
	}
	if err := s.Repo.Update(ctx, userID, map[string]interface{}{"photoURL": url}); err != nil {
		return "", err
	}
	return url, nil
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	return s.Repo.Update(ctx, userID, map[string]interface{}{"fcmToken": strings.TrimSpace(token)})
}

func (s *DefaultUserService) invalidate(ctx context.Context, userID string) {
	if s.Recommend == nil {
		return
	}
	if err := s.Recommend.Invalidate(ctx, userID); err != nil {
		s.Logger.Warn("Failed to invalidate recommendations", zap.String("userID", userID), zap.Error(err))
	}
}

// normalizeInterests trims entries and drops blanks and case-insensitive duplicates.
func normalizeInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
