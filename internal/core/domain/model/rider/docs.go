// Package rider implements the Rider aggregate: a delivery courier's approval,
// availability and current delivery.
//
// Key business rules:
//   - Only approved riders may go online
//   - A rider holds at most one current order
//   - Completing the current order clears it and increments the delivery counter
//   - Releasing the current order (cancellation) clears it without counting a delivery
package rider
