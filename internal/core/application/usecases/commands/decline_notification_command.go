package commands

import (
	"errors"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/pkg/guard"
)

var ErrDeclineNotificationCommandIsNotConstructed = errors.New(
	"DeclineNotificationCommand must be created via NewDeclineNotificationCommand constructor",
)

// DeclineNotificationCommand is a rider turning down an offer.
type DeclineNotificationCommand struct {
	riderID        kernel.UUID
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeclineNotificationCommand(riderID, notificationID kernel.UUID) (DeclineNotificationCommand, error) {
	if err := errors.Join(
		validateRequiredID("riderId", riderID),
		validateRequiredID("notificationId", notificationID),
	); err != nil {
		return DeclineNotificationCommand{}, err
	}

	return DeclineNotificationCommand{
		riderID:        riderID,
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c DeclineNotificationCommand) Validate() error {
	return c.guard.Validate(ErrDeclineNotificationCommandIsNotConstructed)
}

func (c DeclineNotificationCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c DeclineNotificationCommand) NotificationID() kernel.UUID {
	return c.notificationID
}
