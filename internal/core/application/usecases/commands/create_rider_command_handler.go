package commands

import (
	"context"

	"riderdispatch/internal/core/domain/model/rider"
)

// CreateRiderCommandHandler persists a new rider awaiting approval.
type CreateRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewCreateRiderCommandHandler(uowFactory RiderUoWFactory) CreateRiderCommandHandler {
	return CreateRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateRiderCommandHandler) Handle(ctx context.Context, cmd CreateRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r, err := rider.NewRider(cmd.RiderID(), cmd.UserID(), cmd.Name())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderRepository().Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
