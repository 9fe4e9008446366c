package commands

import (
	"context"
)

// DeclineNotificationCommandHandler records a negative decision.
// Only the notification is written; the order stays pending for other riders.
type DeclineNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewDeclineNotificationCommandHandler(uowFactory NotificationUoWFactory) DeclineNotificationCommandHandler {
	return DeclineNotificationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *DeclineNotificationCommandHandler) Handle(ctx context.Context, cmd DeclineNotificationCommand) error {
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
	n, err := notificationRepo.GetForUpdate(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if err = n.Decline(cmd.RiderID()); err != nil {
		return err
	}

	if err = notificationRepo.Update(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
