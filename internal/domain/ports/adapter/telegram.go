package adapter

import "context"

// NotificationSender delivers one rendered message to one user. It must not
// block indefinitely; implementations carry their own timeout.
type NotificationSender interface {
	SendMessage(ctx context.Context, userID int64, text string) error
}
