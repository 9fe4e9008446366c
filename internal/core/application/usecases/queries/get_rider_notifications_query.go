package queries

import (
	"errors"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/pkg/guard"
)

var ErrGetRiderNotificationsQueryIsNotConstructed = errors.New(
	"GetRiderNotificationsQuery must be created via NewGetRiderNotificationsQuery constructor",
)

// GetRiderNotificationsQuery reads the notification feed of one rider, newest first.
//
// Example:
//
//	query, _ := NewGetRiderNotificationsQuery(riderID)
//	feed, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load feed: %w", err)
//	}
//	for _, n := range feed {
//	    fmt.Printf("%s %s pending=%t\n", n.RestaurantName, n.CustomerAddress, n.IsPending())
//	}
type GetRiderNotificationsQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRiderNotificationsQuery(riderID kernel.UUID) (GetRiderNotificationsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderNotificationsQuery{}, err
	}

	return GetRiderNotificationsQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetRiderNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderNotificationsQueryIsNotConstructed)
}

func (q GetRiderNotificationsQuery) RiderID() kernel.UUID {
	return q.riderID
}

// NotificationResponse is one feed entry. IsAccepted is nil while undecided.
type NotificationResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	RestaurantName  string
	CustomerAddress string
	Total           int64
	IsRead          bool
	IsAccepted      *bool
	CreatedAt       time.Time
}

// IsPending reports whether the entry is unread and undecided.
func (r NotificationResponse) IsPending() bool {
	return !r.IsRead && r.IsAccepted == nil
}
