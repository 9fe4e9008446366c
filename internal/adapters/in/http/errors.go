package http

import (
	"errors"
	"net/http"

	"riderdispatch/internal/core/application/usecases/commands"
	"riderdispatch/internal/core/domain/model/notification"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/core/domain/model/rider"
	"riderdispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	codeBadRequest   = "bad_request"
	codeUnauthorized = "unauthorized"
	codeForbidden    = "forbidden"
	codeNotFound     = "not_found"
	codeInvalid      = "invalid_value"
	codeConflict     = "conflict"
	codeInternal     = "internal_error"
)

var conflictErrors = []error{
	errs.ErrStateTransitionIsInvalid,
	commands.ErrOrderNoLongerAvailable,
	notification.ErrNotificationAlreadyDecided,
	notification.ErrNotificationWithdrawn,
	rider.ErrRiderIsBusy,
	rider.ErrRiderIsOffline,
	rider.ErrRiderNotApproved,
	rider.ErrNotCurrentOrder,
	gorm.ErrDuplicatedKey,
}

var forbiddenErrors = []error{
	notification.ErrWrongRider,
	order.ErrRiderMismatch,
}

// statusFor maps application errors onto HTTP statuses.
// Anything unrecognised is a 500 and its text is not shown to the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusUnprocessableEntity, codeInvalid
	}

	for _, target := range forbiddenErrors {
		if errors.Is(err, target) {
			return http.StatusForbidden, codeForbidden
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict, codeConflict
		}
	}

	return http.StatusInternalServerError, codeInternal
}

func respondError(c echo.Context, err error) error {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return respondFailure(c, status, code, "Internal server error")
	}
	return respondFailure(c, status, code, err.Error())
}
