// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"locali/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewFirebaseApp initializes the Firebase App from the configured service account.
func NewFirebaseApp(ctx context.Context) (*firebase.App, error) {
	cfg := &firebase.Config{
		ProjectID:     config.AppConfig.FirebaseProjectID,
		StorageBucket: config.AppConfig.FirebaseBucket,
	}
	opts := []option.ClientOption{}
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	return app, nil
}
