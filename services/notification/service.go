package notification

import (
	"context"
	"fmt"

	userRepo "locali/database/repository/user"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService looks up the member's FCM token and pushes through Firebase.
type DefaultNotificationService struct {
	Users     userRepo.UserRepository
	Messenger Messenger
	Logger    *zap.Logger
}

func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	if s.Messenger == nil {
		s.Logger.Debug("push disabled, dropping notification", zap.String("userID", userID), zap.String("title", title))
		return nil
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("notification: load user %s: %w", userID, err)
	}
	if user.FCMToken == "" {
		s.Logger.Debug("user has no FCM token", zap.String("userID", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	id, err := s.Messenger.Send(ctx, msg)
	if err != nil {
		if messaging.IsUnregistered(err) {
			s.Logger.Info("clearing stale FCM token", zap.String("userID", userID))
			_ = s.Users.Update(ctx, userID, map[string]interface{}{"fcmToken": ""})
			return nil
		}
		return fmt.Errorf("notification: send to %s: %w", userID, err)
	}
	s.Logger.Debug("push sent", zap.String("userID", userID), zap.String("messageID", id))
	return nil
}
