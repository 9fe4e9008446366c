package commands

import (
	"errors"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/pkg/errs"
	"riderdispatch/internal/pkg/guard"
)

var ErrAcceptNotificationCommandIsNotConstructed = errors.New(
	"AcceptNotificationCommand must be created via NewAcceptNotificationCommand constructor",
)

// AcceptNotificationCommand is a rider taking the order offered in a notification.
type AcceptNotificationCommand struct {
	riderID        kernel.UUID
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptNotificationCommand(riderID, notificationID kernel.UUID) (AcceptNotificationCommand, error) {
	if err := errors.Join(
		validateRequiredID("riderId", riderID),
		validateRequiredID("notificationId", notificationID),
	); err != nil {
		return AcceptNotificationCommand{}, err
	}

	return AcceptNotificationCommand{
		riderID:        riderID,
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptNotificationCommand) Validate() error {
	return c.guard.Validate(ErrAcceptNotificationCommandIsNotConstructed)
}

func (c AcceptNotificationCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c AcceptNotificationCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

func validateRequiredID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}
