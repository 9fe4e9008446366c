// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its wire string so raw SQL reads stay readable.
type OrderDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID      `gorm:"type:uuid;not null"`
	RestaurantID    uuid.UUID      `gorm:"type:uuid;not null"`
	RestaurantName  string         `gorm:"not null"`
	RiderID         *uuid.UUID     `gorm:"type:uuid;index"`
	Items           pq.StringArray `gorm:"type:text[];not null"`
	Total           int64          `gorm:"not null"`
	DeliveryAddress string         `gorm:"not null"`
	Status          string         `gorm:"type:varchar(32);not null;index"`
	CreatedAt       time.Time      `gorm:"not null;index"`
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		RestaurantID:    aggregate.RestaurantID().Bytes(),
		RestaurantName:  aggregate.RestaurantName(),
		RiderID:         riderID,
		Items:           pq.StringArray(aggregate.Items()),
		Total:           aggregate.Total(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Status:          aggregate.Status().String(),
		CreatedAt:       aggregate.CreatedAt(),
		AssignedAt:      aggregate.AssignedAt(),
		PickedUpAt:      aggregate.PickedUpAt(),
		DeliveredAt:     aggregate.DeliveredAt(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder so stored rows obey the same invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}

		riderID = &rID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:              id,
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		RestaurantName:  dto.RestaurantName,
		RiderID:         riderID,
		Items:           []string(dto.Items),
		Total:           dto.Total,
		DeliveryAddress: dto.DeliveryAddress,
		Status:          status,
		CreatedAt:       dto.CreatedAt,
		AssignedAt:      dto.AssignedAt,
		PickedUpAt:      dto.PickedUpAt,
		DeliveredAt:     dto.DeliveredAt,
	})
}
