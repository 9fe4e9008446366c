package queries

import (
	"context"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var (
		resp                         OrderResponse
		id, customerID, restaurantID uuid.UUID
		riderID                      *uuid.UUID
		items                        pq.StringArray
		status                       string
	)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			restaurant_name,
			rider_id,
			items,
			total,
			delivery_address,
			status,
			created_at,
			assigned_at,
			picked_up_at,
			delivered_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	if err = rows.Scan(
		&id,
		&customerID,
		&restaurantID,
		&resp.RestaurantName,
		&riderID,
		&items,
		&resp.Total,
		&resp.DeliveryAddress,
		&status,
		&resp.CreatedAt,
		&resp.AssignedAt,
		&resp.PickedUpAt,
		&resp.DeliveredAt,
	); err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return OrderResponse{}, err
	}
	if riderID != nil {
		rID, idErr := kernel.UUIDFromBytes((*riderID)[:])
		if idErr != nil {
			return OrderResponse{}, idErr
		}
		resp.RiderID = &rID
	}
	if resp.Status, err = order.ParseStatus(status); err != nil {
		return OrderResponse{}, err
	}
	resp.Items = []string(items)

	return resp, nil
}
