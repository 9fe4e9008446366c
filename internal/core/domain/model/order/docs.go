// Package order implements the Order aggregate and its delivery lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding identity, display data, rider assignment and timestamps
//   - Status: the closed lifecycle enumeration with its transition rules
//   - Action: the rider-driven steps that advance an assigned order
//
// Key business rules:
//   - Orders start Pending with no rider
//   - Only Pending orders can be assigned, and assignment stamps assignedAt
//   - Each rider action is valid from exactly one status
//   - Cancelled and Rejected are reachable from every non-terminal status
//   - Delivered, Cancelled and Rejected are final
package order
