package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"locali/database/repository"
	"locali/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoCredentialRepo stores bcrypt password hashes for local sign-in.
type MongoCredentialRepo struct {
	coll *mongo.Collection
}

func NewMongoCredentialRepo(db *mongo.Database, logger *zap.Logger) CredentialRepository {
	repo := &MongoCredentialRepo{coll: db.Collection(repository.CredentialsCollection)}

	ctx, cancel := withTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Warn("failed to create credential indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoCredentialRepo) Create(ctx context.Context, cred *models.Credential) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	cred.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, cred); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// GetByEmail returns nil, nil when no credential exists.
func (r *MongoCredentialRepo) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var cred models.Credential
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&cred); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch credential: %w", err)
	}
	return &cred, nil
}
