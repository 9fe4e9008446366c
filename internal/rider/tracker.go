package rider

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"riderdispatch/internal/core/domain/model/order"
)

var (
	ErrUpdateInFlight     = errors.New("a status update is already in flight")
	ErrNoActiveOrder      = errors.New("no active order")
	ErrActionNotAvailable = errors.New("action is not available in the current status")
)

// Tracker caches the rider's current order and advances it.
type Tracker struct {
	api       API
	presenter Presenter
	logger    *slog.Logger

	inFlight atomic.Bool

	mu      sync.Mutex
	current *Order
}

func NewTracker(api API, presenter Presenter, logger *slog.Logger) *Tracker {
	return &Tracker{
		api:       api,
		presenter: presenter,
		logger:    logger,
	}
}

// SetOrder replaces the cached order. Terminal orders are dropped.
func (t *Tracker) SetOrder(o *Order) {
	t.mu.Lock()
	if o != nil && o.Status.IsTerminal() {
		o = nil
	}
	if o != nil {
		cp := *o
		o = &cp
	}
	t.current = o
	t.mu.Unlock()

	t.presenter.ShowOrder(o)
}

// Current returns a copy of the cached order.
func (t *Tracker) Current() (Order, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return Order{}, false
	}
	return *t.current, true
}

// Active reports whether a delivery is in progress.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current != nil
}

// Available reports whether the button for action would be enabled.
func (t *Tracker) Available(action order.Action) bool {
	if t.inFlight.Load() {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return false
	}
	next, ok := t.current.Status.NextAction()
	return ok && next == action
}

// Advance issues one status update. On failure the cached order is left untouched.
func (t *Tracker) Advance(ctx context.Context, action order.Action) (Order, error) {
	if !t.inFlight.CompareAndSwap(false, true) {
		return Order{}, ErrUpdateInFlight
	}
	defer t.inFlight.Store(false)

	current, ok := t.Current()
	if !ok {
		return Order{}, ErrNoActiveOrder
	}
	if next, has := current.Status.NextAction(); !has || next != action {
		return Order{}, ErrActionNotAvailable
	}

	updated, err := t.api.AdvanceOrder(ctx, current.ID, action)
	if err != nil {
		t.logger.WarnContext(ctx, "Status update failed",
			"order_id", current.ID.String(),
			"action", action.String(),
			"error", err,
		)
		if ctx.Err() == nil {
			t.presenter.Notice("Could not update the order, please try again")
		}
		return Order{}, err
	}
	if err = ctx.Err(); err != nil {
		return Order{}, err
	}

	t.SetOrder(&updated)
	return updated, nil
}
