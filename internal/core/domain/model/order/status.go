package order

import (
	"fmt"

	"riderdispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Assigned ──> AtRestaurant ──> PickedUp ──> Delivering ──> Delivered
//	   │           │              │              │             │
//	   └───────────┴──────────────┴──────────────┴─────────────┴──> Cancelled | Rejected
//
// The sequence is monotonic. Delivered, Cancelled and Rejected are terminal.
// Status values cross process boundaries as the lower-case strings returned by
// String and are parsed back with ParseStatus.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending orders wait for a rider to accept a delivery request.
	Pending

	// Assigned orders have a rider heading to the restaurant.
	Assigned

	// AtRestaurant means the rider reported arrival at the restaurant.
	AtRestaurant

	// PickedUp means the rider confirmed pickup of the food.
	PickedUp

	// Delivering means the rider reported arrival at the customer.
	Delivering

	// Delivered is the successful terminal state.
	Delivered

	// Cancelled is a terminal state reachable from any non-terminal state.
	Cancelled

	// Rejected is a terminal state reachable from any non-terminal state.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "unknown",
		Pending:      "pending",
		Assigned:     "assigned",
		AtRestaurant: "at_restaurant",
		PickedUp:     "picked_up",
		Delivering:   "delivering",
		Delivered:    "delivered",
		Cancelled:    "cancelled",
		Rejected:     "rejected",
	}
}

// ParseStatus converts the wire representation into a Status.
// Unknown strings, including "unknown", are rejected.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate reports whether s is one of the defined non-Unknown statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}

// HasRider reports whether an order in this status is expected to carry a rider.
func (s Status) HasRider() bool {
	switch s { //nolint:exhaustive // remaining statuses carry no rider requirement
	case Assigned, AtRestaurant, PickedUp, Delivering, Delivered:
		return true
	default:
		return false
	}
}

// NextAction returns the rider action available from s, if any.
func (s Status) NextAction() (Action, bool) {
	for _, a := range Actions() {
		if a.From() == s {
			return a, true
		}
	}
	return 0, false
}

// ValidateCanHaveRider checks the consistency between status and rider assignment.
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	if hasRider && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a rider", s),
		)
	}

	if !hasRider && s.HasRider() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no rider", s),
		)
	}

	return nil
}

// Assign moves Pending to Assigned.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewStateTransitionIsInvalidError("order", s.String(), Assigned.String())
	}
	return Assigned, nil
}

// Apply moves s along the rider-driven part of the lifecycle.
func (s Status) Apply(a Action) (Status, error) {
	if err := a.Validate(); err != nil {
		return Unknown, err
	}
	if a.From() != s {
		return Unknown, errs.NewStateTransitionIsInvalidError("order", s.String(), a.To().String())
	}
	return a.To(), nil
}

// Terminate moves any non-terminal status to Cancelled or Rejected.
func (s Status) Terminate(to Status) (Status, error) {
	if to != Cancelled && to != Rejected {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a terminal status for cancellation", to),
		)
	}
	if s.IsTerminal() || s == Unknown {
		return Unknown, errs.NewStateTransitionIsInvalidError("order", s.String(), to.String())
	}
	return to, nil
}
