package commands

import (
	"context"
)

// ApproveRiderCommandHandler moves a pending rider to approved.
// Approving an already approved rider is a no-op.
type ApproveRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewApproveRiderCommandHandler(uowFactory RiderUoWFactory) ApproveRiderCommandHandler {
	return ApproveRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ApproveRiderCommandHandler) Handle(ctx context.Context, cmd ApproveRiderCommand) error {
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

	if err = r.Approve(); err != nil {
		return err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
