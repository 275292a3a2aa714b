package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// FirebaseStorageService implements BlobStore on the project's Firebase Storage bucket.
type FirebaseStorageService struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewFirebaseStorageService wraps a bucket handle, usually from firebase App.Storage().DefaultBucket().
func NewFirebaseStorageService(bucket *gcs.BucketHandle, bucketName string) *FirebaseStorageService {
	return &FirebaseStorageService{bucket: bucket, bucketName: bucketName}
}

// Upload stores the object with a Firebase download token so the returned URL is fetchable.
func (s *FirebaseStorageService) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error) {
	token := uuid.NewString()
	w := s.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=300"
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return s.downloadURL(objectPath, token), nil
}

// Delete removes an object. Missing objects are not an error.
func (s *FirebaseStorageService) Delete(ctx context.Context, objectPath string) error {
	err := s.bucket.Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *FirebaseStorageService) downloadURL(objectPath, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		s.bucketName, url.QueryEscape(objectPath), token)
}
