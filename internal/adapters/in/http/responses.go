package http

import (
	"time"

	"riderdispatch/internal/core/application/usecases/queries"
)

type CreatedResponse struct {
	ID string `json:"id"`
}

type OrderResponse struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customer_id"`
	RestaurantID    string     `json:"restaurant_id"`
	RestaurantName  string     `json:"restaurant_name"`
	RiderID         *string    `json:"rider_id"`
	Items           []string   `json:"items"`
	Total           int64      `json:"total"`
	DeliveryAddress string     `json:"delivery_address"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	AssignedAt      *time.Time `json:"assigned_at"`
	PickedUpAt      *time.Time `json:"picked_up_at"`
	DeliveredAt     *time.Time `json:"delivered_at"`
}

type RiderResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Name            string  `json:"name"`
	Approval        string  `json:"approval"`
	IsOnline        bool    `json:"is_online"`
	CurrentOrderID  *string `json:"current_order_id"`
	TotalDeliveries int     `json:"total_deliveries"`
}

type NotificationResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	RestaurantName  string    `json:"restaurant_name"`
	CustomerAddress string    `json:"customer_address"`
	Total           int64     `json:"total"`
	IsRead          bool      `json:"is_read"`
	IsAccepted      *bool     `json:"is_accepted"`
	CreatedAt       time.Time `json:"created_at"`
}

func toOrderResponse(o queries.OrderResponse) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID.String(),
		CustomerID:      o.CustomerID.String(),
		RestaurantID:    o.RestaurantID.String(),
		RestaurantName:  o.RestaurantName,
		Items:           o.Items,
		Total:           o.Total,
		DeliveryAddress: o.DeliveryAddress,
		Status:          o.Status.String(),
		CreatedAt:       o.CreatedAt,
		AssignedAt:      o.AssignedAt,
		PickedUpAt:      o.PickedUpAt,
		DeliveredAt:     o.DeliveredAt,
	}
	if resp.Items == nil {
		resp.Items = []string{}
	}
	if o.RiderID != nil {
		id := o.RiderID.String()
		resp.RiderID = &id
	}
	return resp
}

func toRiderResponse(r queries.RiderResponse) RiderResponse {
	resp := RiderResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		Name:            r.Name,
		Approval:        r.Approval.String(),
		IsOnline:        r.IsOnline,
		TotalDeliveries: r.TotalDeliveries,
	}
	if r.CurrentOrderID != nil {
		id := r.CurrentOrderID.String()
		resp.CurrentOrderID = &id
	}
	return resp
}

func toNotificationResponses(feed []queries.NotificationResponse) []NotificationResponse {
	resp := make([]NotificationResponse, len(feed))
	for i, n := range feed {
		resp[i] = NotificationResponse{
			ID:              n.ID.String(),
			OrderID:         n.OrderID.String(),
			RestaurantName:  n.RestaurantName,
			CustomerAddress: n.CustomerAddress,
			Total:           n.Total,
			IsRead:          n.IsRead,
			IsAccepted:      n.IsAccepted,
			CreatedAt:       n.CreatedAt,
		}
	}
	return resp
}
