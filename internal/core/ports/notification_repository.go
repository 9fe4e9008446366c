package ports

import (
	"context"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for rider notifications.
type NotificationRepository interface {
	Add(ctx context.Context, aggregate *notification.Notification) error
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get returns errs.ErrObjectNotFound when the notification does not exist.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetForUpdate retrieves a notification and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// ListOpenForOrder retrieves the unread, undecided notifications for an order
	// and locks them until the transaction ends.
	ListOpenForOrder(ctx context.Context, orderID kernel.UUID) ([]*notification.Notification, error)

	// ListRecipients returns the riders that already hold a notification for an order,
	// whatever its state.
	ListRecipients(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error)
}
