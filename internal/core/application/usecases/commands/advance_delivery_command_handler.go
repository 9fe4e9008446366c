package commands

import (
	"context"
	"time"

	"riderdispatch/internal/core/domain/model/order"
)

// AdvanceDeliveryCommandHandler applies a rider action to the order.
//
// Only the action matching the current status is accepted. Completing the delivery
// also frees the rider and bumps their delivery counter in the same transaction.
type AdvanceDeliveryCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

func NewAdvanceDeliveryCommandHandler(uowFactory UoWFactory, now func() time.Time) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

func (h *AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Advance(cmd.RiderID(), cmd.Action(), h.now().UTC()); err != nil {
		return err
	}

	if cmd.Action() == order.CompleteDelivery {
		riderRepo := uow.RiderRepository()
		r, getErr := riderRepo.GetForUpdate(ctx, cmd.RiderID())
		if getErr != nil {
			return getErr
		}

		if err = r.CompleteOrder(o.ID()); err != nil {
			return err
		}

		if err = riderRepo.Update(ctx, r); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
