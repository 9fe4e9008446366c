package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"riderdispatch/internal/pkg/errs"
)

var (
	ErrUnauthorized = errors.New("not authorized")
	ErrConflict     = errors.New("request conflicts with the current state")
	ErrRejected     = errors.New("request rejected")
	ErrServer       = errors.New("server error")
)

// APIError carries the status and the error entries of a failed call.
type APIError struct {
	Status   int
	Code     string
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, strings.Join(e.Messages, "; "))
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return errs.ErrObjectNotFound
	case e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return ErrUnauthorized
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrRejected
	}
}
