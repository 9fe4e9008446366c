// Package riderrepo persists rider aggregates with GORM.
package riderrepo

import (
	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO is the riders table row.
// A partial unique index keeps one rider per current order at the database level too.
type RiderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Name            string     `gorm:"not null"`
	Approval        string     `gorm:"type:varchar(16);not null"`
	Online          bool       `gorm:"not null;default:false"`
	CurrentOrderID  *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_riders_current_order,where:current_order_id IS NOT NULL"`
	TotalDeliveries int        `gorm:"not null;default:0"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(aggregate *rider.Rider) RiderDTO {
	var currentOrderID *uuid.UUID
	if id := aggregate.CurrentOrder(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	return RiderDTO{
		ID:              aggregate.ID().Bytes(),
		UserID:          aggregate.UserID().Bytes(),
		Name:            aggregate.Name(),
		Approval:        aggregate.Approval().String(),
		Online:          aggregate.IsOnline(),
		CurrentOrderID:  currentOrderID,
		TotalDeliveries: aggregate.TotalDeliveries(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &oID
	}

	approval, err := rider.ParseApproval(dto.Approval)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(rider.State{
		ID:              id,
		UserID:          userID,
		Name:            dto.Name,
		Approval:        approval,
		Online:          dto.Online,
		CurrentOrderID:  currentOrderID,
		TotalDeliveries: dto.TotalDeliveries,
	})
}
