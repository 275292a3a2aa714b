package notification

import (
	"context"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService sends push notifications to members.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// Messenger is the FCM send surface; *messaging.Client satisfies it.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}
