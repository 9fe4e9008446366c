package order

import (
	"fmt"

	"riderdispatch/internal/pkg/errs"
)

// Action is a rider-initiated step of the delivery.
// Each action is valid from exactly one status.
type Action int

const (
	// ArriveAtRestaurant is the "Arrived at restaurant" button.
	ArriveAtRestaurant Action = iota + 1
	// ConfirmPickup is the "Confirm pickup" button. It stamps pickedUpAt.
	ConfirmPickup
	// ArriveAtCustomer is the "Arrived at customer" button.
	ArriveAtCustomer
	// CompleteDelivery hands the food over. It stamps deliveredAt and frees the rider.
	CompleteDelivery
)

type actionDef struct {
	name string
	from Status
	to   Status
}

func getActionDefs() map[Action]actionDef {
	return map[Action]actionDef{
		ArriveAtRestaurant: {name: "arrive_at_restaurant", from: Assigned, to: AtRestaurant},
		ConfirmPickup:      {name: "confirm_pickup", from: AtRestaurant, to: PickedUp},
		ArriveAtCustomer:   {name: "arrive_at_customer", from: PickedUp, to: Delivering},
		CompleteDelivery:   {name: "complete_delivery", from: Delivering, to: Delivered},
	}
}

// Actions lists every rider action in lifecycle order.
func Actions() []Action {
	return []Action{ArriveAtRestaurant, ConfirmPickup, ArriveAtCustomer, CompleteDelivery}
}

// ParseAction converts the wire representation into an Action.
func ParseAction(s string) (Action, error) {
	for a, def := range getActionDefs() {
		if def.name == s {
			return a, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", s))
}

func (a Action) Validate() error {
	if _, ok := getActionDefs()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

func (a Action) String() string {
	if def, ok := getActionDefs()[a]; ok {
		return def.name
	}
	return "unknown"
}

// From is the only status the action may be applied to.
func (a Action) From() Status {
	return getActionDefs()[a].from
}

// To is the status the action leads to.
func (a Action) To() Status {
	return getActionDefs()[a].to
}
