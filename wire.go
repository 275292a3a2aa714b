package main

import (
	"context"
	"fmt"
	"time"

	"locali/config"
	"locali/database"
	eventRepo "locali/database/repository/event"
	"locali/database/repository/memory"
	userRepo "locali/database/repository/user"
	"locali/services/storage"
	"locali/services/user"
	"locali/utils"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

type repositories struct {
	Events      eventRepo.EventRepository
	Users       userRepo.UserRepository
	Credentials userRepo.CredentialRepository
	close       func()
}

// lazyFirebase initializes the Firebase app on first use.
type lazyFirebase struct {
	ctx context.Context
	app *firebase.App
}

func (l *lazyFirebase) App() (*firebase.App, error) {
	if l.app != nil {
		return l.app, nil
	}
	app, err := utils.NewFirebaseApp(l.ctx)
	if err != nil {
		return nil, err
	}
	l.app = app
	return app, nil
}

func (l *lazyFirebase) Ready() bool { return l.app != nil }

func buildRepositories(ctx context.Context, fb *lazyFirebase, logger *zap.Logger) (*repositories, error) {
	switch config.AppConfig.DataBackend {
	case "firestore":
		app, err := fb.App()
		if err != nil {
			return nil, err
		}
		client, err := database.NewFirestore(ctx, app)
		if err != nil {
			return nil, err
		}
		repos := &repositories{
			Events: eventRepo.NewFirestoreEventRepo(client),
			Users:  userRepo.NewFirestoreUserRepo(client),
			close:  func() { _ = client.Close() },
		}
		// Local credentials still need a home when AUTH_MODE=local; Mongo keeps them.
		if config.AppConfig.AuthMode == "local" {
			repos.Credentials = userRepo.NewMongoCredentialRepo(database.MongoDatabase(), logger)
		}
		return repos, nil
	case "mongo":
		db := database.MongoDatabase()
		return &repositories{
			Events:      eventRepo.NewMongoEventRepo(db, logger),
			Users:       userRepo.NewMongoUserRepo(db, logger),
			Credentials: userRepo.NewMongoCredentialRepo(db, logger),
			close: func() {
				cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = database.MongoClient.Disconnect(cctx)
			},
		}, nil
	case "memory":
		store := memory.NewStore()
		return &repositories{
			Events:      store.Events(),
			Users:       store.Users(),
			Credentials: store.Credentials(),
			close:       func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown DATA_BACKEND %q", config.AppConfig.DataBackend)
}

// buildIdentity returns the provider used for sign-up/sign-in and the verifier used by the auth middleware.
func buildIdentity(ctx context.Context, fb *lazyFirebase, repos *repositories) (user.IdentityProvider, user.TokenVerifier, error) {
	switch config.AppConfig.AuthMode {
	case "firebase":
		app, err := fb.App()
		if err != nil {
			return nil, nil, err
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("firebase auth: %w", err)
		}
		toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(config.AppConfig.FirebaseAPIKey))
		if err != nil {
			return nil, nil, fmt.Errorf("identity toolkit: %w", err)
		}
		id := &user.FirebaseIdentity{Auth: authClient, Toolkit: toolkit}
		return id, id, nil
	case "local":
		issuer, err := utils.NewTokenIssuer(config.AppConfig.JWTSecret)
		if err != nil {
			return nil, nil, err
		}
		id := &user.LocalIdentity{
			Credentials: repos.Credentials,
			Tokens:      issuer,
			Lifetime:    config.AppConfig.JWTLifetime,
		}
		return id, id, nil
	}
	return nil, nil, fmt.Errorf("unknown AUTH_MODE %q", config.AppConfig.AuthMode)
}

func buildBlobStore(ctx context.Context, fb *lazyFirebase) (storage.BlobStore, error) {
	switch config.AppConfig.StorageBackend {
	case "firebase":
		app, err := fb.App()
		if err != nil {
			return nil, err
		}
		client, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("firebase storage: %w", err)
		}
		bucket, err := client.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("firebase storage: %w", err)
		}
		return storage.NewFirebaseStorageService(bucket, config.AppConfig.FirebaseBucket), nil
	case "cloudinary":
		cld, err := utils.Cloudinary()
		if err != nil {
			return nil, err
		}
		return storage.NewCloudinaryStorageService(cld, config.AppConfig.CloudinaryFolder), nil
	case "none", "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", config.AppConfig.StorageBackend)
}
