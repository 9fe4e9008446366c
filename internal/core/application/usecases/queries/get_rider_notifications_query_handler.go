package queries

import (
	"context"

	"riderdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRiderNotificationsQueryHandler serves the rider feed.
type GetRiderNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderNotificationsQueryHandler(db *gorm.DB) GetRiderNotificationsQueryHandler {
	return GetRiderNotificationsQueryHandler{db: db}
}

// Handle returns every notification addressed to the rider, ordered by creation
// time descending. Notifications of other riders are never included.
func (h GetRiderNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderNotificationsQuery,
) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	feed := make([]NotificationResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			restaurant_name,
			customer_address,
			total,
			is_read,
			is_accepted,
			created_at
		FROM rider_notifications
		WHERE rider_id = ?
		ORDER BY created_at DESC, id
	`, query.RiderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp    NotificationResponse
			id      uuid.UUID
			orderID uuid.UUID
		)

		err = rows.Scan(
			&id,
			&orderID,
			&resp.RestaurantName,
			&resp.CustomerAddress,
			&resp.Total,
			&resp.IsRead,
			&resp.IsAccepted,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}

		feed = append(feed, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return feed, nil
}
