package commands

import (
	"errors"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand moves an assigned order one step along the delivery lifecycle.
type AdvanceDeliveryCommand struct {
	riderID kernel.UUID
	orderID kernel.UUID
	action  order.Action

	guard guard.ConstructorGuard
}

func NewAdvanceDeliveryCommand(riderID, orderID kernel.UUID, action order.Action) (AdvanceDeliveryCommand, error) {
	if err := errors.Join(
		validateRequiredID("riderId", riderID),
		validateRequiredID("orderId", orderID),
		action.Validate(),
	); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	return AdvanceDeliveryCommand{
		riderID: riderID,
		orderID: orderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

func (c AdvanceDeliveryCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c AdvanceDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceDeliveryCommand) Action() order.Action {
	return c.action
}
