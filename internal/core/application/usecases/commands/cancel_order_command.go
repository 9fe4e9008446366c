package commands

import (
	"errors"
	"fmt"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/pkg/errs"
	"riderdispatch/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand ends an order as cancelled or rejected.
type CancelOrderCommand struct {
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, status order.Status) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status is either order.Cancelled or order.Rejected.
func (c CancelOrderCommand) Status() order.Status {
	return c.status
}

func (c *CancelOrderCommand) setOrderID(id kernel.UUID) error {
	if err := validateRequiredID("orderId", id); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *CancelOrderCommand) setStatus(status order.Status) error {
	if status != order.Cancelled && status != order.Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a terminal cancellation", status))
	}

	c.status = status
	return nil
}
