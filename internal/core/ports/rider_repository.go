package ports

import (
	"context"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	Add(ctx context.Context, aggregate *rider.Rider) error
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get returns errs.ErrObjectNotFound when the rider does not exist.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetForUpdate retrieves a rider and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllAvailable retrieves approved, online riders without a current order.
	GetAllAvailable(ctx context.Context) ([]*rider.Rider, error)
}
