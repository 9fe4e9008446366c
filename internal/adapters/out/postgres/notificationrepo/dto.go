// Package notificationrepo persists rider notifications with GORM.
package notificationrepo

import (
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is the rider_notifications table row.
// The (order_id, rider_id) unique index is the dispatch dedup key.
type NotificationDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rider_notifications_order_rider"`
	RiderID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rider_notifications_order_rider;index"`
	RestaurantName  string    `gorm:"not null"`
	CustomerAddress string    `gorm:"not null"`
	Total           int64     `gorm:"not null"`
	IsRead          bool      `gorm:"not null;default:false"`
	IsAccepted      *bool
	CreatedAt       time.Time `gorm:"not null;index"`
}

func (NotificationDTO) TableName() string {
	return "rider_notifications"
}

func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		RiderID:         aggregate.RiderID().Bytes(),
		RestaurantName:  aggregate.RestaurantName(),
		CustomerAddress: aggregate.CustomerAddress(),
		Total:           aggregate.Total(),
		IsRead:          aggregate.IsRead(),
		IsAccepted:      aggregate.IsAccepted(),
		CreatedAt:       aggregate.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(notification.State{
		ID:              id,
		OrderID:         orderID,
		RiderID:         riderID,
		RestaurantName:  dto.RestaurantName,
		CustomerAddress: dto.CustomerAddress,
		Total:           dto.Total,
		IsRead:          dto.IsRead,
		IsAccepted:      dto.IsAccepted,
		CreatedAt:       dto.CreatedAt,
	})
}
