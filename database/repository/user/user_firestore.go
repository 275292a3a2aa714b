package userRepo

import (
	"context"
	"fmt"
	"time"

	"locali/database/repository"
	"locali/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreUserRepo keeps profiles in users/{uid}.
type FirestoreUserRepo struct {
	client *firestore.Client
}

func NewFirestoreUserRepo(client *firestore.Client) UserRepository {
	return &FirestoreUserRepo{client: client}
}

func (r *FirestoreUserRepo) users() *firestore.CollectionRef {
	return r.client.Collection(repository.UsersCollection)
}

func (r *FirestoreUserRepo) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := r.users().Doc(user.ID).Create(ctx, user); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *FirestoreUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	snap, err := r.users().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return decodeUser(snap)
}

func (r *FirestoreUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	snaps, err := r.users().Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return decodeUser(snaps[0])
}

func (r *FirestoreUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.users().Doc(id))
	}
	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		u, err := decodeUser(snap)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, nil
}

func (r *FirestoreUserRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})

	if _, err := r.users().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	return nil
}

func decodeUser(snap *firestore.DocumentSnapshot) (*models.User, error) {
	var u models.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", snap.Ref.ID, err)
	}
	u.ID = snap.Ref.ID
	return &u, nil
}
