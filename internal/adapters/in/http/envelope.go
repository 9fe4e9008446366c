package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope wraps every JSON body the API returns.
type Envelope struct {
	Data   any          `json:"data"`
	Errors []ErrorEntry `json:"errors"`
}

// ErrorEntry is one problem reported to the client.
type ErrorEntry struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Data: data, Errors: []ErrorEntry{}})
}

func respondFailure(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Envelope{
		Errors: []ErrorEntry{{Code: code, Message: message}},
	})
}

func respondBadRequest(c echo.Context, message string) error {
	return respondFailure(c, http.StatusBadRequest, codeBadRequest, message)
}
