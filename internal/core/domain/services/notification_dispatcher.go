package services

import (
	"cmp"
	"errors"
	"slices"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/notification"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/core/domain/model/rider"
	"riderdispatch/internal/pkg/errs"
)

// ErrNoAvailableRiders is returned when no rider can receive a new offer for the order.
var ErrNoAvailableRiders = errors.New("no available riders")

// NotificationDispatcher decides which riders get an offer for a pending order.
//
// Business rules:
//   - only Pending orders are offered
//   - a rider receives at most one notification per order
//   - only available riders (approved, online, no current order) are considered
//   - riders with fewer completed deliveries are offered first
//   - at most fanout riders are offered per call
//
// Example usage:
//
//	dispatcher := services.NewNotificationDispatcher(3)
//	offers, err := dispatcher.Dispatch(o, riders, offeredTo, time.Now())
//	if errors.Is(err, services.ErrNoAvailableRiders) {
//	    return nil
//	}
type NotificationDispatcher struct {
	fanout int
}

// NewNotificationDispatcher creates a dispatcher that offers an order to at most fanout riders per round.
func NewNotificationDispatcher(fanout int) (NotificationDispatcher, error) {
	if fanout < 1 {
		return NotificationDispatcher{}, errs.NewValueIsOutOfRangeError("fanout", fanout, 1, "unbounded")
	}
	return NotificationDispatcher{fanout: fanout}, nil
}

// Dispatch creates notifications offering o to riders that have not been offered it yet.
// offeredTo lists the riders already holding a notification for this order.
func (d NotificationDispatcher) Dispatch(
	o *order.Order,
	riders []*rider.Rider,
	offeredTo []kernel.UUID,
	now time.Time,
) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Pending {
		return nil, errs.NewStateTransitionIsInvalidError("order", o.Status().String(), order.Assigned.String())
	}

	candidates, err := d.selectRiders(riders, offeredTo)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoAvailableRiders
	}

	offers := make([]*notification.Notification, 0, len(candidates))
	for _, r := range candidates {
		n, err := notification.NewNotification(kernel.NewUUID(), o, r.ID(), now)
		if err != nil {
			return nil, err
		}
		offers = append(offers, n)
	}

	return offers, nil
}

func (d NotificationDispatcher) selectRiders(riders []*rider.Rider, offeredTo []kernel.UUID) ([]*rider.Rider, error) {
	offered := make(map[kernel.UUID]struct{}, len(offeredTo))
	for _, id := range offeredTo {
		offered[id] = struct{}{}
	}

	candidates := make([]*rider.Rider, 0, len(riders))
	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if !r.IsAvailable() {
			continue
		}
		if _, ok := offered[r.ID()]; ok {
			continue
		}
		offered[r.ID()] = struct{}{}
		candidates = append(candidates, r)
	}

	slices.SortStableFunc(candidates, func(a, b *rider.Rider) int {
		return cmp.Compare(a.TotalDeliveries(), b.TotalDeliveries())
	})

	if len(candidates) > d.fanout {
		candidates = candidates[:d.fanout]
	}
	return candidates, nil
}
