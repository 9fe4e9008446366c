package rider

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
)

// Feed keeps the rider's notifications newest first and surfaces new offers.
type Feed struct {
	api       API
	riderID   kernel.UUID
	decisions *DecisionFlow
	alerter   Alerter
	presenter Presenter
	logger    *slog.Logger

	// busy reports whether a delivery is in progress; offers are not surfaced then.
	busy func() bool

	mu           sync.Mutex
	items        []Notification
	pendingCount int
}

func NewFeed(
	api API,
	riderID kernel.UUID,
	decisions *DecisionFlow,
	alerter Alerter,
	presenter Presenter,
	busy func() bool,
	logger *slog.Logger,
) *Feed {
	return &Feed{
		api:       api,
		riderID:   riderID,
		decisions: decisions,
		alerter:   alerter,
		presenter: presenter,
		busy:      busy,
		logger:    logger,
	}
}

// Items returns the last fetched notifications, newest first.
func (f *Feed) Items() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items)
}

// Pending returns the unread, undecided notifications, newest first.
func (f *Feed) Pending() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pendingOf(f.items)
}

// Refresh fetches the feed. A failed fetch keeps the previous items.
// A selected notification that is no longer pending is dropped. When the number
// of pending notifications grows, the newest one is offered for decision and the
// alert is played; after a drop it is offered without the alert.
func (f *Feed) Refresh(ctx context.Context) error {
	items, err := f.api.ListNotifications(ctx, f.riderID)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to load notifications", "error", err)
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	slices.SortStableFunc(items, func(a, b Notification) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	f.mu.Lock()
	pending := pendingOf(items)
	grew := len(pending) > f.pendingCount
	f.items = items
	f.pendingCount = len(pending)
	f.mu.Unlock()

	dropped := f.decisions.Retain(pending)
	if grew || dropped {
		f.surface(ctx, pending, grew)
	}
	return nil
}

// SelectNext offers the newest pending notification if nothing is selected.
// Used after a decision or a delivery completes.
func (f *Feed) SelectNext(ctx context.Context) {
	f.surface(ctx, f.Pending(), false)
}

func (f *Feed) surface(ctx context.Context, pending []Notification, alert bool) {
	if len(pending) == 0 || f.busy() {
		return
	}

	newest := pending[0]
	if !f.decisions.Offer(newest) {
		return
	}

	f.presenter.ShowNotification(newest)
	if !alert {
		return
	}
	if err := f.alerter.Alert(ctx); err != nil {
		f.logger.DebugContext(ctx, "Alert failed", "error", err)
	}
}

// Run polls every interval while online reports true, until ctx is cancelled.
func (f *Feed) Run(ctx context.Context, interval time.Duration, online func() bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if online() {
			_ = f.Refresh(ctx)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func pendingOf(items []Notification) []Notification {
	pending := make([]Notification, 0, len(items))
	for _, n := range items {
		if n.IsPending() {
			pending = append(pending, n)
		}
	}
	return pending
}
