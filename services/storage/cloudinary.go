package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements BlobStore on Cloudinary.
type CloudinaryStorageService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorageService(cld *cloudinary.Cloudinary, folder string) *CloudinaryStorageService {
	return &CloudinaryStorageService{cld: cld, folder: folder}
}

func (s *CloudinaryStorageService) publicID(objectPath string) string {
	return path.Join(s.folder, objectPath)
}

// Upload overwrites any previous asset at the same path and returns its secure URL.
func (s *CloudinaryStorageService) Upload(ctx context.Context, objectPath string, r io.Reader, _ string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:       s.publicID(objectPath),
		Overwrite:      api.Bool(true),
		Invalidate:     api.Bool(true),
		UniqueFilename: api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryStorageService: upload rejected: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

// Delete removes the asset at objectPath.
func (s *CloudinaryStorageService) Delete(ctx context.Context, objectPath string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   s.publicID(objectPath),
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("CloudinaryStorageService: failed to delete file: %w", err)
	}
	return nil
}
