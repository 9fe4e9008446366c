package commands

import (
	"errors"

	"riderdispatch/internal/pkg/errs"
	"riderdispatch/internal/pkg/guard"
)

var ErrDispatchOrdersCommandIsNotConstructed = errors.New(
	"DispatchOrdersCommand must be created via NewDispatchOrdersCommand constructor",
)

// DispatchOrdersCommand offers up to batchSize pending orders to available riders.
//
// Example:
//
//	cmd, _ := NewDispatchOrdersCommand(20)
//	handler := NewDispatchOrdersCommandHandler(uowFactory, dispatcher, time.Now)
//	err := handler.Handle(ctx, cmd)
type DispatchOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchOrdersCommand(batchSize int) (DispatchOrdersCommand, error) {
	if batchSize < 1 {
		return DispatchOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return DispatchOrdersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrdersCommandIsNotConstructed)
}

func (c DispatchOrdersCommand) BatchSize() int {
	return c.batchSize
}
