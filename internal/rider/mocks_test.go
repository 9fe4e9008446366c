package rider_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/rider"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) GetRider(ctx context.Context, riderID kernel.UUID) (rider.Profile, error) {
	args := m.Called(ctx, riderID)
	return args.Get(0).(rider.Profile), args.Error(1)
}

func (m *MockAPI) SetOnline(ctx context.Context, riderID kernel.UUID, online bool) (rider.Profile, error) {
	args := m.Called(ctx, riderID, online)
	return args.Get(0).(rider.Profile), args.Error(1)
}

func (m *MockAPI) ListNotifications(ctx context.Context, riderID kernel.UUID) ([]rider.Notification, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rider.Notification), args.Error(1)
}

func (m *MockAPI) AcceptNotification(ctx context.Context, riderID, notificationID kernel.UUID) (rider.Profile, error) {
	args := m.Called(ctx, riderID, notificationID)
	return args.Get(0).(rider.Profile), args.Error(1)
}

func (m *MockAPI) DeclineNotification(ctx context.Context, riderID, notificationID kernel.UUID) error {
	args := m.Called(ctx, riderID, notificationID)
	return args.Error(0)
}

func (m *MockAPI) GetOrder(ctx context.Context, orderID kernel.UUID) (rider.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(rider.Order), args.Error(1)
}

func (m *MockAPI) AdvanceOrder(ctx context.Context, orderID kernel.UUID, action order.Action) (rider.Order, error) {
	args := m.Called(ctx, orderID, action)
	return args.Get(0).(rider.Order), args.Error(1)
}

type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) Alert(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingPresenter keeps what would be on screen.
type recordingPresenter struct {
	mu      sync.Mutex
	shown   []rider.Notification
	cleared int
	order   *rider.Order
	notices []string
}

func (p *recordingPresenter) ShowNotification(n rider.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = append(p.shown, n)
}

func (p *recordingPresenter) ClearNotification() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleared++
}

func (p *recordingPresenter) ShowOrder(o *rider.Order) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.order = o
}

func (p *recordingPresenter) Notice(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, message)
}

func (p *recordingPresenter) Notices() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.notices...)
}

func (p *recordingPresenter) Shown() []rider.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]rider.Notification(nil), p.shown...)
}

// fakeGeolocator hands out positions on demand and lets tests fire callbacks
// after the watch was stopped.
type fakeGeolocator struct {
	mu         sync.Mutex
	initial    rider.Position
	initialErr error
	watchErr   error
	opts       []rider.PositionOptions
	onPosition func(rider.Position)
	onError    func(error)
	stops      int
}

func (g *fakeGeolocator) CurrentPosition(_ context.Context, opts rider.PositionOptions) (rider.Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.opts = append(g.opts, opts)
	return g.initial, g.initialErr
}

func (g *fakeGeolocator) Watch(
	opts rider.PositionOptions,
	onPosition func(rider.Position),
	onError func(error),
) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.opts = append(g.opts, opts)
	if g.watchErr != nil {
		return nil, g.watchErr
	}
	g.onPosition = onPosition
	g.onError = onError
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.stops++
	}, nil
}

// emit calls the last registered callback, even if the watch was stopped.
func (g *fakeGeolocator) emit(pos rider.Position) {
	g.mu.Lock()
	cb := g.onPosition
	g.mu.Unlock()
	if cb != nil {
		cb(pos)
	}
}

func (g *fakeGeolocator) Stops() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stops
}

func position(lat, lon float64) rider.Position {
	p, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		panic(err)
	}
	return rider.Position{Point: p, Timestamp: testNow}
}

func pendingNotification(orderID kernel.UUID, total int64, createdAt time.Time) rider.Notification {
	return rider.Notification{
		ID:              kernel.NewUUID(),
		OrderID:         orderID,
		RestaurantName:  "Noodle Bar",
		CustomerAddress: "1 Main St",
		Total:           total,
		CreatedAt:       createdAt,
	}
}
