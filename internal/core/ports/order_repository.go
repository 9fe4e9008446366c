// Package ports defines the contracts between the core and its adapters:
// repositories, the unit of work and outbound event publishing.
package ports

import (
	"context"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns errs.ErrObjectNotFound when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	// Used by the accept flow so that two riders cannot take the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPending retrieves up to limit Pending orders, oldest first.
	GetAllPending(ctx context.Context, limit int) ([]*order.Order, error)
}
