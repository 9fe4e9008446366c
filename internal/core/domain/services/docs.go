// Package services provides domain services that coordinate several aggregates.
//
// The package includes:
//   - NotificationDispatcher: offers a pending order to available riders
package services
