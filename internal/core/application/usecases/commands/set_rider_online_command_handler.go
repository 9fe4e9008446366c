package commands

import (
	"context"
)

// SetRiderOnlineCommandHandler flips the rider's online flag.
// Only approved riders may go online; going offline keeps any current order.
type SetRiderOnlineCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewSetRiderOnlineCommandHandler(uowFactory RiderUoWFactory) SetRiderOnlineCommandHandler {
	return SetRiderOnlineCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetRiderOnlineCommandHandler) Handle(ctx context.Context, cmd SetRiderOnlineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	r, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if err = r.SetOnline(cmd.Online()); err != nil {
		return err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
