package commands

import (
	"errors"
	"slices"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/pkg/errs"
	"riderdispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new order waiting for a rider.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, restaurantID,
//	    "Pad Thai Corner", []string{"pad thai x2"}, 350, "12 Sukhumvit Rd")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	restaurantID    kernel.UUID
	restaurantName  string
	items           []string
	total           int64
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifiers and required text fields.
// Item and total rules are left to the order aggregate.
func NewCreateOrderCommand(
	orderID, customerID, restaurantID kernel.UUID,
	restaurantName string,
	items []string,
	total int64,
	deliveryAddress string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		items: slices.Clone(items),
		total: total,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, customerID, restaurantID),
		cmd.setRestaurantName(restaurantName),
		cmd.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateOrderCommand) RestaurantName() string {
	return c.restaurantName
}

func (c CreateOrderCommand) Items() []string {
	return slices.Clone(c.items)
}

func (c CreateOrderCommand) Total() int64 {
	return c.total
}

func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c *CreateOrderCommand) setIDs(orderID, customerID, restaurantID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}

	c.orderID = orderID
	c.customerID = customerID
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setRestaurantName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("restaurantName")
	}

	c.restaurantName = name
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	c.deliveryAddress = address
	return nil
}
