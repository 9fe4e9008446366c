package commands

import (
	"context"
)

// CancelOrderCommandHandler terminates an order.
// A rider holding the order is released and every open offer for it is withdrawn,
// all in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	riderRepo := uow.RiderRepository()
	notificationRepo := uow.NotificationRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Terminate(cmd.Status()); err != nil {
		return err
	}

	if riderID := o.Rider(); riderID != nil {
		r, getErr := riderRepo.GetForUpdate(ctx, *riderID)
		if getErr != nil {
			return getErr
		}

		if current := r.CurrentOrder(); current != nil && current.IsEqual(o.ID()) {
			if err = r.ReleaseOrder(o.ID()); err != nil {
				return err
			}
			if err = riderRepo.Update(ctx, r); err != nil {
				return err
			}
		}
	}

	open, err := notificationRepo.ListOpenForOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	for _, n := range open {
		n.Withdraw()
		if err = notificationRepo.Update(ctx, n); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
