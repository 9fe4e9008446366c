package ports

import (
	"context"

	"riderdispatch/internal/core/domain/model/order"
)

// OrderEventPublisher announces order status changes to other services.
// Implementations are called after the transaction commits, so a failure here
// never rolls back state.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
