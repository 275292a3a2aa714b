package event

import (
	"context"
	"errors"
	"io"

	"locali/services/storage"
	"locali/utils"

	"go.uber.org/zap"
)

var ErrStorageUnavailable = errors.New("image storage is not configured")

// UploadImage validates the upload, stores it and records the URL on the event.
func (s *DefaultEventService) UploadImage(ctx context.Context, hostID, eventID string, r io.Reader) (string, error) {
	if s.Blobs == nil {
		return "", ErrStorageUnavailable
	}
	if _, err := s.owned(ctx, hostID, eventID); err != nil {
		return "", err
	}
	img, err := storage.ReadImage(r, utils.MaxImageUploadBytes)
	if err != nil {
		return "", err
	}
	url, err := s.Blobs.Upload(ctx, storage.EventImagePath(eventID), img.Reader(), img.ContentType)
	if err != nil {
		return "", err
	}
	if err := s.Repo.Update(ctx, eventID, map[string]interface{}{"imageURL": url}); err != nil {
		return "", err
	}
	s.Logger.Info("event image uploaded", zap.String("eventID", eventID), zap.String("contentType", img.ContentType))
	return url, nil
}

func (s *DefaultEventService) DeleteImage(ctx context.Context, hostID, eventID string) error {
	if s.Blobs == nil {
		return ErrStorageUnavailable
	}
	ev, err := s.owned(ctx, hostID, eventID)
	if err != nil {
		return err
	}
	if ev.ImageURL == "" {
		return nil
	}
	if err := s.Blobs.Delete(ctx, storage.EventImagePath(eventID)); err != nil {
		return err
	}
	return s.Repo.Update(ctx, eventID, map[string]interface{}{"imageURL": ""})
}
