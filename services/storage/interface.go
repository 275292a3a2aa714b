package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotImage      = errors.New("storage: file is not an image")
	ErrImageTooLarge = errors.New("storage: image exceeds size limit")
	ErrEmptyFile     = errors.New("storage: empty file")
)

// BlobStore defines the interface for object storage operations.
type BlobStore interface {
	// Upload writes the object and returns a URL clients can fetch it from.
	Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// Image is a validated upload held in memory.
type Image struct {
	Data        []byte
	ContentType string
}

// ReadImage reads at most limit bytes and checks the content is an image by sniffing it.
func ReadImage(r io.Reader, limit int64) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > limit {
		return nil, ErrImageTooLarge
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, ErrNotImage
	}
	return &Image{Data: data, ContentType: mt.String()}, nil
}

// Reader returns a fresh reader over the image bytes.
func (i *Image) Reader() io.Reader { return bytes.NewReader(i.Data) }

// EventImagePath is the object path of an event's cover image.
func EventImagePath(eventID string) string { return "events/" + eventID + "/image" }

// ProfilePhotoPath is the object path of a member's profile photo.
func ProfilePhotoPath(userID string) string { return "users/" + userID + "/profile" }
