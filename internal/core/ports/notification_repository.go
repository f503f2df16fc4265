package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
)

// NotificationRepository stores outbound notifications.
type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error

	// Get returns errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// MarkSent sets the sent flag. It is idempotent.
	MarkSent(ctx context.Context, id kernel.UUID) error

	// ListByOrder returns the order's notifications, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*notification.Notification, error)
}

// RecipientDirectory resolves a recipient to the push token of their device.
type RecipientDirectory interface {
	// PushToken returns "" when the account does not exist or has no token.
	PushToken(ctx context.Context, recipientType notification.RecipientType, id kernel.UUID) (string, error)
}
