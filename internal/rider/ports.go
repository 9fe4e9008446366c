package rider

import (
	"context"
	"errors"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
)

// Notification is one offer as the rider sees it.
type Notification struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	RestaurantName  string
	CustomerAddress string
	Total           int64
	IsRead          bool
	IsAccepted      *bool
	CreatedAt       time.Time
}

// IsPending reports whether the notification is unread and undecided.
func (n Notification) IsPending() bool {
	return !n.IsRead && n.IsAccepted == nil
}

// Profile is the rider record as returned by the service.
type Profile struct {
	ID              kernel.UUID
	Name            string
	Approval        string
	IsOnline        bool
	CurrentOrderID  *kernel.UUID
	TotalDeliveries int
}

// Order is the cached copy of the rider's current order.
type Order struct {
	ID              kernel.UUID
	RestaurantName  string
	DeliveryAddress string
	Items           []string
	Total           int64
	Status          order.Status
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
}

// ErrOfferClosed is matched by accept and decline errors when the service no
// longer holds the offer open: it was decided, withdrawn or removed.
var ErrOfferClosed = errors.New("offer is no longer open")

// API is the part of the dispatch service a rider session talks to.
type API interface {
	GetRider(ctx context.Context, riderID kernel.UUID) (Profile, error)
	SetOnline(ctx context.Context, riderID kernel.UUID, online bool) (Profile, error)
	ListNotifications(ctx context.Context, riderID kernel.UUID) ([]Notification, error)
	AcceptNotification(ctx context.Context, riderID, notificationID kernel.UUID) (Profile, error)
	DeclineNotification(ctx context.Context, riderID, notificationID kernel.UUID) error
	GetOrder(ctx context.Context, orderID kernel.UUID) (Order, error)
	AdvanceOrder(ctx context.Context, orderID kernel.UUID, action order.Action) (Order, error)
}

// Position is one device fix.
type Position struct {
	Point     kernel.GeoPoint
	Accuracy  float64
	Timestamp time.Time
}

// PositionOptions mirror the platform geolocation options.
type PositionOptions struct {
	HighAccuracy bool
	MaxAge       time.Duration
	Timeout      time.Duration
}

// Geolocator is the device location service.
type Geolocator interface {
	// CurrentPosition returns a single fix.
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
	// Watch delivers fixes until stop is called. Callbacks may run on any goroutine
	// and may still arrive after stop returns.
	Watch(opts PositionOptions, onPosition func(Position), onError func(error)) (stop func(), err error)
}

// Alerter plays the audible new-offer alert.
type Alerter interface {
	Alert(ctx context.Context) error
}

// Presenter renders session state for the rider.
type Presenter interface {
	ShowNotification(n Notification)
	ClearNotification()
	ShowOrder(o *Order)
	Notice(message string)
}
