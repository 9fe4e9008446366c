package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type NewOrderRequest struct {
	CustomerID      string   `json:"customer_id" validate:"required,uuid"`
	RestaurantID    string   `json:"restaurant_id" validate:"required,uuid"`
	RestaurantName  string   `json:"restaurant_name" validate:"required"`
	Items           []string `json:"items" validate:"required,min=1,dive,required"`
	Total           int64    `json:"total" validate:"gte=0"`
	DeliveryAddress string   `json:"delivery_address" validate:"required"`
}

type AdvanceOrderRequest struct {
	Action string `json:"action" validate:"required"`
}

type CancelOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=cancelled rejected"`
}

type NewRiderRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Name   string `json:"name" validate:"required"`
}

type SetOnlineRequest struct {
	Online *bool `json:"online" validate:"required"`
}

// requestValidator plugs go-playground/validator into echo's Validate hook.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
