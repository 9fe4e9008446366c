package rider

import (
	"errors"
	"fmt"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/pkg/errs"
	"riderdispatch/internal/pkg/guard"
)

var (
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

	// ErrRiderNotApproved is returned when a rider that is not approved tries to go online.
	ErrRiderNotApproved = errors.New("rider is not approved")

	// ErrRiderIsBusy is returned when a rider that already holds an order takes another.
	ErrRiderIsBusy = errors.New("rider already has a current order")

	// ErrRiderIsOffline is returned when an offline rider takes an order.
	ErrRiderIsOffline = errors.New("rider is offline")

	// ErrNotCurrentOrder is returned when completing or releasing an order the rider does not hold.
	ErrNotCurrentOrder = errors.New("order is not the rider's current order")
)

// Rider is a delivery courier.
//
// Business rules:
//   - Rider must have a valid id, user reference and non-empty name
//   - New riders start pending approval and offline
//   - currentOrderID is nil or references exactly one order
type Rider struct {
	id              kernel.UUID
	userID          kernel.UUID
	name            string
	approval        Approval
	online          bool
	currentOrderID  *kernel.UUID
	totalDeliveries int

	guard guard.ConstructorGuard
}

// State is the persisted shape of a rider.
type State struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	Name            string
	Approval        Approval
	Online          bool
	CurrentOrderID  *kernel.UUID
	TotalDeliveries int
}

// NewRider registers a rider awaiting approval.
func NewRider(id, userID kernel.UUID, name string) (*Rider, error) {
	r := &Rider{
		approval: ApprovalPending,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setUserID(userID),
		r.setName(name),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider rebuilds a rider from persisted state.
func RestoreRider(s State) (*Rider, error) {
	r := &Rider{
		online: s.Online,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(s.ID),
		r.setUserID(s.UserID),
		r.setName(s.Name),
		r.setApproval(s.Approval),
		r.setCurrentOrder(s.CurrentOrderID),
		r.setTotalDeliveries(s.TotalDeliveries),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Rider) ID() kernel.UUID {
	return r.id
}

func (r *Rider) UserID() kernel.UUID {
	return r.userID
}

func (r *Rider) Name() string {
	return r.name
}

func (r *Rider) Approval() Approval {
	return r.approval
}

func (r *Rider) IsOnline() bool {
	return r.online
}

func (r *Rider) CurrentOrder() *kernel.UUID {
	return r.currentOrderID
}

func (r *Rider) TotalDeliveries() int {
	return r.totalDeliveries
}

// IsAvailable reports whether the rider can be offered new delivery requests.
func (r *Rider) IsAvailable() bool {
	return r.approval == ApprovalApproved && r.online && r.currentOrderID == nil
}

// Approve completes onboarding. Approving twice is a no-op.
func (r *Rider) Approve() error {
	if r.approval == ApprovalRejected {
		return errs.NewStateTransitionIsInvalidError("rider", r.approval.String(), ApprovalApproved.String())
	}
	r.approval = ApprovalApproved
	return nil
}

// SetOnline toggles availability. Going offline never fails and keeps any current order.
func (r *Rider) SetOnline(online bool) error {
	if online && r.approval != ApprovalApproved {
		return ErrRiderNotApproved
	}
	r.online = online
	return nil
}

// TakeOrder makes orderID the rider's current order.
func (r *Rider) TakeOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if r.approval != ApprovalApproved {
		return ErrRiderNotApproved
	}
	if !r.online {
		return ErrRiderIsOffline
	}
	if r.currentOrderID != nil {
		return ErrRiderIsBusy
	}

	r.currentOrderID = &orderID
	return nil
}

// CompleteOrder clears the current order after a successful delivery.
func (r *Rider) CompleteOrder(orderID kernel.UUID) error {
	if err := r.clearCurrentOrder(orderID); err != nil {
		return err
	}
	r.totalDeliveries++
	return nil
}

// ReleaseOrder clears the current order without counting a delivery.
func (r *Rider) ReleaseOrder(orderID kernel.UUID) error {
	return r.clearCurrentOrder(orderID)
}

func (r *Rider) clearCurrentOrder(orderID kernel.UUID) error {
	if r.currentOrderID == nil || !r.currentOrderID.IsEqual(orderID) {
		return ErrNotCurrentOrder
	}
	r.currentOrderID = nil
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	r.userID = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Rider) setApproval(a Approval) error {
	if err := a.Validate(); err != nil {
		return err
	}
	r.approval = a
	return nil
}

func (r *Rider) setCurrentOrder(orderID *kernel.UUID) error {
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return err
		}
	}
	r.currentOrderID = orderID
	return nil
}

func (r *Rider) setTotalDeliveries(n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalDeliveries", fmt.Errorf("%d is negative", n))
	}
	r.totalDeliveries = n
	return nil
}
