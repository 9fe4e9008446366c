package commands

import (
	"context"
	"errors"
	"time"

	"riderdispatch/internal/core/domain/model/notification"
	"riderdispatch/internal/core/domain/model/order"
)

// ErrOrderNoLongerAvailable is returned when the offered order was taken, cancelled
// or rejected before the rider accepted.
var ErrOrderNoLongerAvailable = errors.New("order is no longer available")

// AcceptNotificationCommandHandler assigns the offered order to the rider.
//
// All writes happen in one transaction:
//   - order: rider set, status assigned, assignedAt stamped
//   - rider: current order set
//   - notification: accepted and read
//   - other open notifications for the order: withdrawn
//
// Either all of them are committed or none is. Rows are locked order, rider,
// then the open notifications, so two riders accepting at once cannot both win
// and a concurrent decline is never overwritten.
type AcceptNotificationCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

func NewAcceptNotificationCommandHandler(uowFactory UoWFactory, now func() time.Time) AcceptNotificationCommandHandler {
	return AcceptNotificationCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

func (h *AcceptNotificationCommandHandler) Handle(ctx context.Context, cmd AcceptNotificationCommand) error {
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

	notificationRepo := uow.NotificationRepository()
	orderRepo := uow.OrderRepository()
	riderRepo := uow.RiderRepository()

	n, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if err = n.Accept(cmd.RiderID()); err != nil {
		if errors.Is(err, notification.ErrNotificationWithdrawn) {
			return ErrOrderNoLongerAvailable
		}
		return err
	}

	o, err := orderRepo.GetForUpdate(ctx, n.OrderID())
	if err != nil {
		return err
	}
	if o.Status() != order.Pending {
		return ErrOrderNoLongerAvailable
	}

	r, err := riderRepo.GetForUpdate(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if err = r.TakeOrder(o.ID()); err != nil {
		return err
	}

	if err = o.Assign(r.ID(), h.now().UTC()); err != nil {
		return err
	}

	open, err := notificationRepo.ListOpenForOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	// the offer read above may have been declined while the order lock was awaited
	stillOpen := false
	for _, other := range open {
		if other.ID().IsEqual(n.ID()) {
			stillOpen = true
			break
		}
	}
	if !stillOpen {
		return notification.ErrNotificationAlreadyDecided
	}

	for _, other := range open {
		if other.ID().IsEqual(n.ID()) {
			continue
		}
		other.Withdraw()
		if err = notificationRepo.Update(ctx, other); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return err
	}

	if err = notificationRepo.Update(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
