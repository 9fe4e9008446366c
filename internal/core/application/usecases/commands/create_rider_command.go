package commands

import (
	"errors"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/pkg/errs"
	"riderdispatch/internal/pkg/guard"
)

var ErrCreateRiderCommandIsNotConstructed = errors.New(
	"CreateRiderCommand must be created via NewCreateRiderCommand constructor",
)

// CreateRiderCommand registers a rider profile for an existing user account.
type CreateRiderCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	userID  kernel.UUID
	name    string

	guard guard.ConstructorGuard
}

func NewCreateRiderCommand(riderID, userID kernel.UUID, name string) (CreateRiderCommand, error) {
	cmd := CreateRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRiderID(riderID),
		cmd.setUserID(userID),
		cmd.setName(name),
	); err != nil {
		return CreateRiderCommand{}, err
	}

	return cmd, nil
}

func (c CreateRiderCommand) Validate() error {
	return c.guard.Validate(ErrCreateRiderCommandIsNotConstructed)
}

func (c CreateRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c CreateRiderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateRiderCommand) Name() string {
	return c.name
}

func (c *CreateRiderCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.riderID = id
	return nil
}

func (c *CreateRiderCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}

	c.userID = id
	return nil
}

func (c *CreateRiderCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
