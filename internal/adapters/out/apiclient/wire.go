package apiclient

import (
	"encoding/json"
	"errors"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/rider"
)

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []errorEntry    `json:"errors"`
}

type errorEntry struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type riderBody struct {
	ID              kernel.UUID  `json:"id"`
	Name            string       `json:"name"`
	Approval        string       `json:"approval"`
	IsOnline        bool         `json:"is_online"`
	CurrentOrderID  *kernel.UUID `json:"current_order_id"`
	TotalDeliveries int          `json:"total_deliveries"`
}

type orderBody struct {
	ID              kernel.UUID `json:"id"`
	RestaurantName  string      `json:"restaurant_name"`
	DeliveryAddress string      `json:"delivery_address"`
	Items           []string    `json:"items"`
	Total           int64       `json:"total"`
	Status          string      `json:"status"`
	AssignedAt      *time.Time  `json:"assigned_at"`
	PickedUpAt      *time.Time  `json:"picked_up_at"`
	DeliveredAt     *time.Time  `json:"delivered_at"`
}

type notificationBody struct {
	ID              kernel.UUID `json:"id"`
	OrderID         kernel.UUID `json:"order_id"`
	RestaurantName  string      `json:"restaurant_name"`
	CustomerAddress string      `json:"customer_address"`
	Total           int64       `json:"total"`
	IsRead          bool        `json:"is_read"`
	IsAccepted      *bool       `json:"is_accepted"`
	CreatedAt       time.Time   `json:"created_at"`
}

type setOnlineBody struct {
	Online bool `json:"online"`
}

type advanceBody struct {
	Action string `json:"action"`
}

func (b riderBody) toProfile() rider.Profile {
	return rider.Profile{
		ID:              b.ID,
		Name:            b.Name,
		Approval:        b.Approval,
		IsOnline:        b.IsOnline,
		CurrentOrderID:  b.CurrentOrderID,
		TotalDeliveries: b.TotalDeliveries,
	}
}

func (b orderBody) toOrder() (rider.Order, error) {
	status, err := order.ParseStatus(b.Status)
	if err != nil {
		return rider.Order{}, err
	}
	if b.Items == nil {
		b.Items = []string{}
	}
	return rider.Order{
		ID:              b.ID,
		RestaurantName:  b.RestaurantName,
		DeliveryAddress: b.DeliveryAddress,
		Items:           b.Items,
		Total:           b.Total,
		Status:          status,
		AssignedAt:      b.AssignedAt,
		PickedUpAt:      b.PickedUpAt,
		DeliveredAt:     b.DeliveredAt,
	}, nil
}

func (b notificationBody) toNotification() rider.Notification {
	return rider.Notification{
		ID:              b.ID,
		OrderID:         b.OrderID,
		RestaurantName:  b.RestaurantName,
		CustomerAddress: b.CustomerAddress,
		Total:           b.Total,
		IsRead:          b.IsRead,
		IsAccepted:      b.IsAccepted,
		CreatedAt:       b.CreatedAt,
	}
}

var errEmptyData = errors.New("response has no data")
