package commands

import (
	"errors"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/pkg/guard"
)

var ErrSetRiderOnlineCommandIsNotConstructed = errors.New(
	"SetRiderOnlineCommand must be created via NewSetRiderOnlineCommand constructor",
)

// SetRiderOnlineCommand toggles whether a rider receives new offers.
type SetRiderOnlineCommand struct {
	riderID kernel.UUID
	online  bool

	guard guard.ConstructorGuard
}

func NewSetRiderOnlineCommand(riderID kernel.UUID, online bool) (SetRiderOnlineCommand, error) {
	if err := riderID.Validate(); err != nil {
		return SetRiderOnlineCommand{}, err
	}

	return SetRiderOnlineCommand{
		riderID: riderID,
		online:  online,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetRiderOnlineCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderOnlineCommandIsNotConstructed)
}

func (c SetRiderOnlineCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c SetRiderOnlineCommand) Online() bool {
	return c.online
}
