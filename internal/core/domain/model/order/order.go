package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/pkg/errs"
	"riderdispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrRiderMismatch is returned when a rider acts on an order assigned to someone else.
	ErrRiderMismatch = errors.New("order is assigned to another rider")
)

// Order is a customer purchase tracked through delivery. It is the aggregate root
// for status transitions and rider assignment.
//
// Invariants:
//   - id, customer and restaurant references are valid UUIDs
//   - at least one item, non-negative total, non-empty delivery address
//   - the rider reference is present exactly when Status.HasRider() is true
//     (terminal cancellations keep whatever rider they had)
//   - status only moves forward along the lifecycle
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	restaurantID    kernel.UUID
	restaurantName  string
	riderID         *kernel.UUID
	items           []string
	total           int64
	deliveryAddress string
	status          Status
	createdAt       time.Time
	assignedAt      *time.Time
	pickedUpAt      *time.Time
	deliveredAt     *time.Time

	guard guard.ConstructorGuard
}

// State is the full persisted shape of an order, used to restore it from storage.
type State struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	RestaurantID    kernel.UUID
	RestaurantName  string
	RiderID         *kernel.UUID
	Items           []string
	Total           int64
	DeliveryAddress string
	Status          Status
	CreatedAt       time.Time
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
}

// NewOrder creates a Pending order with no rider.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID,
//	    "Pad Thai Corner", []string{"pad thai x2"}, 350, "12 Sukhumvit Rd", time.Now())
func NewOrder(
	id, customerID, restaurantID kernel.UUID,
	restaurantName string,
	items []string,
	total int64,
	deliveryAddress string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurant(restaurantID, restaurantName),
		o.setItems(items),
		o.setTotal(total),
		o.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state, re-checking every invariant.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		createdAt:   s.CreatedAt,
		assignedAt:  s.AssignedAt,
		pickedUpAt:  s.PickedUpAt,
		deliveredAt: s.DeliveredAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setRestaurant(s.RestaurantID, s.RestaurantName),
		o.setItems(s.Items),
		o.setTotal(s.Total),
		o.setDeliveryAddress(s.DeliveryAddress),
		o.setStatus(s.Status, s.RiderID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

func (o *Order) RestaurantName() string {
	return o.restaurantName
}

func (o *Order) Total() int64 {
	return o.total
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

func (o *Order) Items() []string {
	return slices.Clone(o.items)
}

// Rider returns the assigned rider or nil.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

// IsAssignedTo reports whether riderID holds this order.
func (o *Order) IsAssignedTo(riderID kernel.UUID) bool {
	return o.riderID != nil && o.riderID.IsEqual(riderID)
}

// Assign links the order to a rider and stamps the assignment time.
// Only Pending orders can be assigned.
func (o *Order) Assign(riderID kernel.UUID, at time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.riderID = &riderID
	o.assignedAt = &at
	return nil
}

// Advance applies a rider action on behalf of riderID.
// ConfirmPickup stamps pickedUpAt, CompleteDelivery stamps deliveredAt.
// No other field changes.
func (o *Order) Advance(riderID kernel.UUID, action Action, at time.Time) error {
	if !o.IsAssignedTo(riderID) {
		return ErrRiderMismatch
	}

	newStatus, err := o.status.Apply(action)
	if err != nil {
		return err
	}

	o.status = newStatus
	switch action { //nolint:exhaustive // other actions set no timestamps
	case ConfirmPickup:
		o.pickedUpAt = &at
	case CompleteDelivery:
		o.deliveredAt = &at
	}
	return nil
}

// Terminate cancels or rejects the order. The rider reference is kept for history.
func (o *Order) Terminate(to Status) error {
	newStatus, err := o.status.Terminate(to)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurant(id kernel.UUID, name string) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	if name == "" {
		return errs.NewValueIsRequiredError("restaurantName")
	}
	o.restaurantID = id
	o.restaurantName = name
	return nil
}

func (o *Order) setItems(items []string) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if item == "" {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d is empty", i))
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setTotal(total int64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d is negative", total))
	}
	o.total = total
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setStatus(status Status, riderID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return err
		}
	}
	if status != Cancelled && status != Rejected {
		if err := status.ValidateCanHaveRider(riderID != nil); err != nil {
			return err
		}
	}
	o.status = status
	o.riderID = riderID
	return nil
}
