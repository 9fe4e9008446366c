package queries

import (
	"context"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/rider"
	"riderdispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetRiderQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderQueryHandler(db *gorm.DB) GetRiderQueryHandler {
	return GetRiderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the rider does not exist.
func (h GetRiderQueryHandler) Handle(ctx context.Context, query GetRiderQuery) (RiderResponse, error) {
	if err := query.Validate(); err != nil {
		return RiderResponse{}, err
	}

	var (
		resp           RiderResponse
		id             uuid.UUID
		userID         uuid.UUID
		approval       string
		currentOrderID *uuid.UUID
	)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			name,
			approval,
			online,
			current_order_id,
			total_deliveries
		FROM riders
		WHERE id = ?
	`, query.RiderID().Bytes()).Rows()
	if err != nil {
		return RiderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return RiderResponse{}, err
		}
		return RiderResponse{}, errs.NewObjectNotFoundError("rider", query.RiderID())
	}

	if err = rows.Scan(
		&id,
		&userID,
		&resp.Name,
		&approval,
		&resp.IsOnline,
		&currentOrderID,
		&resp.TotalDeliveries,
	); err != nil {
		return RiderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return RiderResponse{}, err
	}
	if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return RiderResponse{}, err
	}
	if resp.Approval, err = rider.ParseApproval(approval); err != nil {
		return RiderResponse{}, err
	}
	if currentOrderID != nil {
		orderID, idErr := kernel.UUIDFromBytes((*currentOrderID)[:])
		if idErr != nil {
			return RiderResponse{}, idErr
		}
		resp.CurrentOrderID = &orderID
	}

	return resp, nil
}
