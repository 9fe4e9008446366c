package commands

import (
	"context"
	"errors"
	"time"

	"riderdispatch/internal/core/domain/services"
)

var (
	ErrNoOrderFound      = errors.New("no pending order found")
	ErrNoFreeRidersFound = errors.New("no free riders found")
)

// DispatchOrdersCommandHandler creates rider notifications for pending orders.
// Orders that every available rider has already been offered are skipped until
// a new rider becomes available.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    // nothing to dispatch
//	case errors.Is(err, ErrNoFreeRidersFound):
//	    // every rider is busy or offline
//	case err != nil:
//	    log.Printf("dispatch failed: %v", err)
//	}
type DispatchOrdersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.NotificationDispatcher
	now        func() time.Time
}

func NewDispatchOrdersCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.NotificationDispatcher,
	now func() time.Time,
) DispatchOrdersCommandHandler {
	return DispatchOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		now:        now,
	}
}

// Handle runs one dispatch round in a single transaction.
func (h *DispatchOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchOrdersCommand) error {
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

	pending, err := orderRepo.GetAllPending(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return ErrNoOrderFound
	}

	riders, err := riderRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}
	if len(riders) == 0 {
		return ErrNoFreeRidersFound
	}

	now := h.now().UTC()
	for _, o := range pending {
		offeredTo, listErr := notificationRepo.ListRecipients(ctx, o.ID())
		if listErr != nil {
			return listErr
		}

		offers, dispatchErr := h.dispatcher.Dispatch(o, riders, offeredTo, now)
		if errors.Is(dispatchErr, services.ErrNoAvailableRiders) {
			continue
		}
		if dispatchErr != nil {
			return dispatchErr
		}

		for _, n := range offers {
			if err = notificationRepo.Add(ctx, n); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
