package rider

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"riderdispatch/internal/core/domain/model/kernel"
)

var (
	// ErrDecisionInFlight is returned while a previous accept or decline is pending.
	ErrDecisionInFlight = errors.New("a decision is already in flight")
	// ErrNotSelected is returned for any notification other than the surfaced one.
	ErrNotSelected = errors.New("notification is not the selected one")
)

// DecisionFlow holds the single notification offered for decision.
type DecisionFlow struct {
	api       API
	riderID   kernel.UUID
	presenter Presenter
	logger    *slog.Logger

	inFlight atomic.Bool

	mu       sync.Mutex
	selected *Notification
}

func NewDecisionFlow(api API, riderID kernel.UUID, presenter Presenter, logger *slog.Logger) *DecisionFlow {
	return &DecisionFlow{
		api:       api,
		riderID:   riderID,
		presenter: presenter,
		logger:    logger,
	}
}

// Offer selects n unless another notification is already selected.
func (d *DecisionFlow) Offer(n Notification) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.selected != nil {
		return false
	}
	d.selected = &n
	return true
}

// Selected returns the notification awaiting a decision.
func (d *DecisionFlow) Selected() (Notification, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.selected == nil {
		return Notification{}, false
	}
	return *d.selected, true
}

// InFlight reports whether a decision request is pending.
func (d *DecisionFlow) InFlight() bool {
	return d.inFlight.Load()
}

// Accept records a positive decision. The service assigns the order in the same
// request and returns the updated rider. On failure the notification stays
// selected, unless the error matches ErrOfferClosed.
func (d *DecisionFlow) Accept(ctx context.Context, notificationID kernel.UUID) (Profile, error) {
	if err := d.begin(notificationID); err != nil {
		return Profile{}, err
	}
	defer d.inFlight.Store(false)

	profile, err := d.api.AcceptNotification(ctx, d.riderID, notificationID)
	if err != nil {
		d.fail(ctx, "accept", notificationID, err)
		return Profile{}, err
	}
	if err = ctx.Err(); err != nil {
		return Profile{}, err
	}

	d.resolve(notificationID)
	return profile, nil
}

// Decline records a negative decision. Nothing but the notification changes.
func (d *DecisionFlow) Decline(ctx context.Context, notificationID kernel.UUID) error {
	if err := d.begin(notificationID); err != nil {
		return err
	}
	defer d.inFlight.Store(false)

	if err := d.api.DeclineNotification(ctx, d.riderID, notificationID); err != nil {
		d.fail(ctx, "decline", notificationID, err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.resolve(notificationID)
	return nil
}

func (d *DecisionFlow) begin(notificationID kernel.UUID) error {
	if !d.inFlight.CompareAndSwap(false, true) {
		return ErrDecisionInFlight
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.selected == nil || !d.selected.ID.IsEqual(notificationID) {
		d.inFlight.Store(false)
		return ErrNotSelected
	}
	return nil
}

func (d *DecisionFlow) resolve(notificationID kernel.UUID) {
	d.mu.Lock()
	if d.selected != nil && d.selected.ID.IsEqual(notificationID) {
		d.selected = nil
	}
	d.mu.Unlock()

	d.presenter.ClearNotification()
}

func (d *DecisionFlow) fail(ctx context.Context, verb string, notificationID kernel.UUID, err error) {
	d.logger.WarnContext(ctx, "Decision failed",
		"decision", verb,
		"notification_id", notificationID.String(),
		"error", err,
	)
	if ctx.Err() != nil {
		return
	}
	if errors.Is(err, ErrOfferClosed) {
		d.resolve(notificationID)
		d.presenter.Notice("This request is no longer available")
		return
	}
	d.presenter.Notice("Could not " + verb + " the request, please try again")
}

// Retain drops the selection when it is not among pending, unless a decision
// for it is in flight. It reports whether the selection was dropped.
func (d *DecisionFlow) Retain(pending []Notification) bool {
	if d.inFlight.Load() {
		return false
	}

	d.mu.Lock()
	if d.selected == nil || slices.ContainsFunc(pending, func(n Notification) bool {
		return n.ID.IsEqual(d.selected.ID)
	}) {
		d.mu.Unlock()
		return false
	}
	d.selected = nil
	d.mu.Unlock()

	d.presenter.ClearNotification()
	return true
}
