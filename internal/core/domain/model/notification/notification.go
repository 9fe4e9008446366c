package notification

import (
	"errors"
	"fmt"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/pkg/errs"
	"riderdispatch/internal/pkg/guard"
)

var (
	ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

	// ErrNotificationAlreadyDecided is returned on a second accept or decline.
	ErrNotificationAlreadyDecided = errors.New("notification is already decided")

	// ErrNotificationWithdrawn is returned when deciding an offer that was withdrawn.
	ErrNotificationWithdrawn = errors.New("notification was withdrawn")

	// ErrWrongRider is returned when a rider acts on another rider's notification.
	ErrWrongRider = errors.New("notification belongs to another rider")
)

// Notification is a delivery request addressed to one rider.
// The accepted field is the tri-state isAccepted: nil while undecided.
type Notification struct {
	id              kernel.UUID
	orderID         kernel.UUID
	riderID         kernel.UUID
	restaurantName  string
	customerAddress string
	total           int64
	isRead          bool
	accepted        *bool
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// State is the persisted shape of a notification.
type State struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	RiderID         kernel.UUID
	RestaurantName  string
	CustomerAddress string
	Total           int64
	IsRead          bool
	IsAccepted      *bool
	CreatedAt       time.Time
}

// NewNotification offers o to riderID, copying the display fields from the order.
func NewNotification(id kernel.UUID, o *order.Order, riderID kernel.UUID, createdAt time.Time) (*Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	n := &Notification{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setOrderID(o.ID()),
		n.setRiderID(riderID),
		n.setDisplay(o.RestaurantName(), o.DeliveryAddress(), o.Total()),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification rebuilds a notification from persisted state.
func RestoreNotification(s State) (*Notification, error) {
	n := &Notification{
		isRead:    s.IsRead,
		accepted:  s.IsAccepted,
		createdAt: s.CreatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(s.ID),
		n.setOrderID(s.OrderID),
		n.setRiderID(s.RiderID),
		n.setDisplay(s.RestaurantName, s.CustomerAddress, s.Total),
	); err != nil {
		return nil, err
	}

	if n.accepted != nil && !n.isRead {
		return nil, errs.NewValueIsInvalidErrorWithCause("isRead", errors.New("decided notification must be read"))
	}

	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

func (n *Notification) RiderID() kernel.UUID {
	return n.riderID
}

func (n *Notification) RestaurantName() string {
	return n.restaurantName
}

func (n *Notification) CustomerAddress() string {
	return n.customerAddress
}

func (n *Notification) Total() int64 {
	return n.total
}

func (n *Notification) IsRead() bool {
	return n.isRead
}

// IsAccepted returns nil while undecided.
func (n *Notification) IsAccepted() *bool {
	if n.accepted == nil {
		return nil
	}
	v := *n.accepted
	return &v
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// IsPending reports whether the offer is unread and undecided.
func (n *Notification) IsPending() bool {
	return !n.isRead && n.accepted == nil
}

func (n *Notification) IsDecided() bool {
	return n.accepted != nil
}

// Accept records a positive decision by riderID.
func (n *Notification) Accept(riderID kernel.UUID) error {
	return n.decide(riderID, true)
}

// Decline records a negative decision by riderID.
func (n *Notification) Decline(riderID kernel.UUID) error {
	return n.decide(riderID, false)
}

// Withdraw closes an undecided offer because the order went elsewhere.
// Decided notifications are left untouched.
func (n *Notification) Withdraw() {
	if n.accepted == nil {
		n.isRead = true
	}
}

func (n *Notification) decide(riderID kernel.UUID, accepted bool) error {
	if !n.riderID.IsEqual(riderID) {
		return ErrWrongRider
	}
	if n.accepted != nil {
		return ErrNotificationAlreadyDecided
	}
	if n.isRead {
		return ErrNotificationWithdrawn
	}

	n.accepted = &accepted
	n.isRead = true
	return nil
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	n.orderID = id
	return nil
}

func (n *Notification) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("riderId", err)
	}
	n.riderID = id
	return nil
}

func (n *Notification) setDisplay(restaurantName, customerAddress string, total int64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d is negative", total))
	}
	n.restaurantName = restaurantName
	n.customerAddress = customerAddress
	n.total = total
	return nil
}
