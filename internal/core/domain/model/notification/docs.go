// Package notification implements the RiderNotification aggregate: an offer of a
// delivery job presented to one rider.
//
// A notification is pending while it is unread and undecided. The rider decides it
// once (accept or decline); the decision is never reverted. An offer can also be
// withdrawn when another rider takes the order, which marks it read and leaves the
// decision empty.
package notification
