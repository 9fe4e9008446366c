package rider

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"

	"golang.org/x/sync/errgroup"
)

const DefaultPollInterval = 5 * time.Second

var ErrSessionClosed = errors.New("session is closed")

// Config holds the session settings.
type Config struct {
	RiderID      kernel.UUID
	PollInterval time.Duration
}

// Session is one rider's view of the delivery workflow.
type Session struct {
	riderID      kernel.UUID
	pollInterval time.Duration
	api          API
	presenter    Presenter
	logger       *slog.Logger

	feed      *Feed
	decisions *DecisionFlow
	tracker   *Tracker
	location  *LocationReporter

	online atomic.Bool
	closed atomic.Bool

	mu      sync.Mutex
	profile Profile
}

func NewSession(
	cfg Config,
	api API,
	geo Geolocator,
	alerter Alerter,
	presenter Presenter,
	logger *slog.Logger,
) (*Session, error) {
	if err := cfg.RiderID.Validate(); err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	logger = logger.With("component", "rider_session", "rider_id", cfg.RiderID.String())

	s := &Session{
		riderID:      cfg.RiderID,
		pollInterval: cfg.PollInterval,
		api:          api,
		presenter:    presenter,
		logger:       logger,
	}
	s.decisions = NewDecisionFlow(api, cfg.RiderID, presenter, logger)
	s.tracker = NewTracker(api, presenter, logger)
	s.location = NewLocationReporter(geo, logger)
	s.feed = NewFeed(api, cfg.RiderID, s.decisions, alerter, presenter, s.tracker.Active, logger)

	return s, nil
}

// Run loads the rider state, then polls the feed until ctx is cancelled.
// Extra workers, such as a command reader, are joined into the same group.
// After Run returns, late results are no longer applied.
func (s *Session) Run(ctx context.Context, workers ...func(ctx context.Context) error) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	defer s.close()

	if err := s.Sync(ctx); err != nil {
		s.logger.WarnContext(ctx, "Initial sync failed", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.feed.Run(gctx, s.pollInterval, s.online.Load)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.location.Stop()
		return nil
	})
	for _, w := range workers {
		g.Go(func() error {
			// a finished worker ends the session
			defer cancel()
			return w(gctx)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Sync reloads the rider, its current order and the feed.
func (s *Session) Sync(ctx context.Context) error {
	profile, err := s.api.GetRider(ctx, s.riderID)
	if err != nil {
		return err
	}
	if err = s.applyProfile(ctx, profile); err != nil {
		return err
	}
	if s.online.Load() {
		return s.feed.Refresh(ctx)
	}
	return nil
}

// SetOnline toggles availability. Going offline stops the location watch
// before the request is sent.
func (s *Session) SetOnline(ctx context.Context, online bool) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	wasOnline := s.online.Load()
	if !online {
		s.online.Store(false)
		s.location.Stop()
	}

	profile, err := s.api.SetOnline(ctx, s.riderID, online)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to change availability", "online", online, "error", err)
		s.presenter.Notice("Could not change availability, please try again")
		if !online && wasOnline {
			s.online.Store(true)
			_ = s.location.Start(ctx)
		}
		return err
	}

	if err = s.applyProfile(ctx, profile); err != nil {
		return err
	}
	if s.online.Load() {
		return s.feed.Refresh(ctx)
	}
	return nil
}

// Accept takes the selected offer and resynchronises rider and feed.
func (s *Session) Accept(ctx context.Context, notificationID kernel.UUID) error {
	profile, err := s.decisions.Accept(ctx, notificationID)
	if err != nil {
		s.afterClosedOffer(ctx, err)
		return err
	}
	if err = s.applyProfile(ctx, profile); err != nil {
		return err
	}
	s.refreshFeed(ctx)
	return nil
}

// Decline rejects the selected offer and surfaces the next pending one.
func (s *Session) Decline(ctx context.Context, notificationID kernel.UUID) error {
	if err := s.decisions.Decline(ctx, notificationID); err != nil {
		s.afterClosedOffer(ctx, err)
		return err
	}
	s.refreshFeed(ctx)
	s.feed.SelectNext(ctx)
	return nil
}

// Advance applies the next delivery action to the current order.
func (s *Session) Advance(ctx context.Context, action order.Action) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	updated, err := s.tracker.Advance(ctx, action)
	if err != nil {
		return err
	}

	if updated.Status.IsTerminal() {
		if err = s.Sync(ctx); err != nil {
			s.logger.WarnContext(ctx, "Resync after delivery failed", "error", err)
		}
		s.feed.SelectNext(ctx)
	}
	return nil
}

func (s *Session) Online() bool {
	return s.online.Load()
}

func (s *Session) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Session) Feed() *Feed {
	return s.feed
}

func (s *Session) Decisions() *DecisionFlow {
	return s.decisions
}

func (s *Session) Tracker() *Tracker {
	return s.tracker
}

func (s *Session) Location() *LocationReporter {
	return s.location
}

func (s *Session) refreshFeed(ctx context.Context) {
	if err := s.feed.Refresh(ctx); err != nil {
		s.logger.WarnContext(ctx, "Feed refresh after decision failed", "error", err)
	}
}

// afterClosedOffer resynchronises the feed once the service reports the
// selected offer closed, so the next pending one is surfaced.
func (s *Session) afterClosedOffer(ctx context.Context, err error) {
	if !errors.Is(err, ErrOfferClosed) || s.closed.Load() || ctx.Err() != nil {
		return
	}
	s.refreshFeed(ctx)
	s.feed.SelectNext(ctx)
}

func (s *Session) applyProfile(ctx context.Context, profile Profile) error {
	if s.closed.Load() || ctx.Err() != nil {
		return ErrSessionClosed
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	if profile.CurrentOrderID == nil {
		s.tracker.SetOrder(nil)
	} else if current, ok := s.tracker.Current(); !ok || !current.ID.IsEqual(*profile.CurrentOrderID) {
		o, err := s.api.GetOrder(ctx, *profile.CurrentOrderID)
		if err != nil {
			s.logger.WarnContext(ctx, "Failed to load current order", "error", err)
			return err
		}
		if s.closed.Load() || ctx.Err() != nil {
			return ErrSessionClosed
		}
		s.tracker.SetOrder(&o)
	}

	s.online.Store(profile.IsOnline)
	if profile.IsOnline {
		if err := s.location.Start(ctx); err != nil {
			s.logger.WarnContext(ctx, "Location reporting unavailable", "error", err)
		}
	} else {
		s.location.Stop()
	}
	return nil
}

func (s *Session) close() {
	s.closed.Store(true)
	s.location.Stop()
}
