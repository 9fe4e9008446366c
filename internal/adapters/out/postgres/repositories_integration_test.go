package postgres_test

import (
	"context"
	"testing"
	"time"

	"riderdispatch/internal/adapters/out/postgres/notificationrepo"
	"riderdispatch/internal/adapters/out/postgres/orderrepo"
	"riderdispatch/internal/adapters/out/postgres/pgtest"
	"riderdispatch/internal/adapters/out/postgres/riderrepo"
	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/notification"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/core/domain/model/rider"
	"riderdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type recordingTracker struct {
	ids []kernel.UUID
}

func (t *recordingTracker) TrackAggregate(id kernel.UUID, _ any) {
	t.ids = append(t.ids, id)
}

type RepositoriesIntegrationTestSuite struct {
	suite.Suite
	database         *pgtest.Database
	fixtures         pgtest.Fixtures
	tracker          *recordingTracker
	orderRepo        *orderrepo.GormOrderRepository
	riderRepo        *riderrepo.GormRiderRepository
	notificationRepo *notificationrepo.GormNotificationRepository
}

func (suite *RepositoriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.fixtures = pgtest.NewFixtures()
}

func (suite *RepositoriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.tracker = &recordingTracker{}
	suite.orderRepo = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
	suite.riderRepo = riderrepo.NewGormRiderRepository(suite.database.DB, suite.tracker)
	suite.notificationRepo = notificationrepo.NewGormNotificationRepository(suite.database.DB, suite.tracker)
}

func (suite *RepositoriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *RepositoriesIntegrationTestSuite) addOrder(createdAt time.Time) *order.Order {
	o, err := suite.fixtures.PendingOrder(createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *RepositoriesIntegrationTestSuite) addRider() *rider.Rider {
	r, err := suite.fixtures.AvailableRider()
	suite.Require().NoError(err)
	suite.Require().NoError(suite.riderRepo.Add(context.Background(), r))
	return r
}

func (suite *RepositoriesIntegrationTestSuite) TestOrder_RoundTrip() {
	ctx := context.Background()
	o := suite.addOrder(testNow)

	stored, err := suite.orderRepo.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.True(o.IsEqual(stored))
	suite.Equal(o.CustomerID(), stored.CustomerID())
	suite.Equal(o.Items(), stored.Items())
	suite.Equal(o.DeliveryAddress(), stored.DeliveryAddress())
	suite.Equal(order.Pending, stored.Status())
	suite.True(o.CreatedAt().Equal(stored.CreatedAt()))
	suite.Equal([]kernel.UUID{o.ID()}, suite.tracker.ids)
}

func (suite *RepositoriesIntegrationTestSuite) TestOrder_GetMissing_ReturnsNotFound() {
	_, err := suite.orderRepo.GetForUpdate(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RepositoriesIntegrationTestSuite) TestOrder_UpdateMissing_ReturnsNotFound() {
	o, err := suite.fixtures.PendingOrder(testNow)
	suite.Require().NoError(err)

	err = suite.orderRepo.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(suite.tracker.ids)
}

func (suite *RepositoriesIntegrationTestSuite) TestOrder_GetAllPending_OldestFirstWithLimit() {
	ctx := context.Background()
	third := suite.addOrder(testNow)
	first := suite.addOrder(testNow.Add(-2 * time.Minute))
	second := suite.addOrder(testNow.Add(-time.Minute))
	cancelled := suite.addOrder(testNow.Add(-time.Hour))
	suite.Require().NoError(cancelled.Terminate(order.Cancelled))
	suite.Require().NoError(suite.orderRepo.Update(ctx, cancelled))

	pending, err := suite.orderRepo.GetAllPending(ctx, 2)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal(first.ID(), pending[0].ID())
	suite.Equal(second.ID(), pending[1].ID())

	all, err := suite.orderRepo.GetAllPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal(third.ID(), all[2].ID())
}

func (suite *RepositoriesIntegrationTestSuite) TestRider_GetAllAvailable_FiltersAndOrdersByLoad() {
	ctx := context.Background()
	veteran, err := rider.RestoreRider(rider.State{
		ID:              kernel.NewUUID(),
		UserID:          kernel.NewUUID(),
		Name:            "Veteran",
		Approval:        rider.ApprovalApproved,
		Online:          true,
		TotalDeliveries: 40,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.riderRepo.Add(ctx, veteran))

	rookie := suite.addRider()

	offline := suite.addRider()
	suite.Require().NoError(offline.SetOnline(false))
	suite.Require().NoError(suite.riderRepo.Update(ctx, offline))

	busy := suite.addRider()
	suite.Require().NoError(busy.TakeOrder(kernel.NewUUID()))
	suite.Require().NoError(suite.riderRepo.Update(ctx, busy))

	pendingApproval, err := rider.NewRider(kernel.NewUUID(), kernel.NewUUID(), "Newcomer")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.riderRepo.Add(ctx, pendingApproval))

	available, err := suite.riderRepo.GetAllAvailable(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(available, 2)
	suite.Equal(rookie.ID(), available[0].ID())
	suite.Equal(veteran.ID(), available[1].ID())
}

func (suite *RepositoriesIntegrationTestSuite) TestRider_UpdateClearsCurrentOrder() {
	ctx := context.Background()
	r := suite.addRider()
	orderID := kernel.NewUUID()
	suite.Require().NoError(r.TakeOrder(orderID))
	suite.Require().NoError(suite.riderRepo.Update(ctx, r))

	suite.Require().NoError(r.CompleteOrder(orderID))
	suite.Require().NoError(suite.riderRepo.Update(ctx, r))

	stored, err := suite.riderRepo.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Nil(stored.CurrentOrder())
	suite.Equal(1, stored.TotalDeliveries())
}

func (suite *RepositoriesIntegrationTestSuite) TestRider_TwoRidersCannotHoldSameOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	alice := suite.addRider()
	bob := suite.addRider()

	suite.Require().NoError(alice.TakeOrder(orderID))
	suite.Require().NoError(suite.riderRepo.Update(ctx, alice))
	suite.Require().NoError(bob.TakeOrder(orderID))

	suite.Require().Error(suite.riderRepo.Update(ctx, bob))
}

func (suite *RepositoriesIntegrationTestSuite) TestNotification_OpenOffersAndRecipients() {
	ctx := context.Background()
	o := suite.addOrder(testNow)
	alice := suite.addRider()
	bob := suite.addRider()
	carol := suite.addRider()

	offers := make(map[kernel.UUID]*notification.Notification)
	for _, r := range []*rider.Rider{alice, bob, carol} {
		n, err := notification.NewNotification(kernel.NewUUID(), o, r.ID(), testNow)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.notificationRepo.Add(ctx, n))
		offers[r.ID()] = n
	}

	suite.Require().NoError(offers[bob.ID()].Decline(bob.ID()))
	suite.Require().NoError(suite.notificationRepo.Update(ctx, offers[bob.ID()]))
	offers[carol.ID()].Withdraw()
	suite.Require().NoError(suite.notificationRepo.Update(ctx, offers[carol.ID()]))

	open, err := suite.notificationRepo.ListOpenForOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(open, 1)
	suite.Equal(offers[alice.ID()].ID(), open[0].ID())

	recipients, err := suite.notificationRepo.ListRecipients(ctx, o.ID())
	suite.Require().NoError(err)
	suite.ElementsMatch([]kernel.UUID{alice.ID(), bob.ID(), carol.ID()}, recipients)

	declined, err := suite.notificationRepo.Get(ctx, offers[bob.ID()].ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(declined.IsAccepted())
	suite.False(*declined.IsAccepted())
	suite.Equal(o.RestaurantName(), declined.RestaurantName())
}

func (suite *RepositoriesIntegrationTestSuite) TestNotification_SecondOfferForSamePairIsRejected() {
	ctx := context.Background()
	o := suite.addOrder(testNow)
	r := suite.addRider()

	first, err := notification.NewNotification(kernel.NewUUID(), o, r.ID(), testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.notificationRepo.Add(ctx, first))

	second, err := notification.NewNotification(kernel.NewUUID(), o, r.ID(), testNow)
	suite.Require().NoError(err)
	suite.Require().Error(suite.notificationRepo.Add(ctx, second))
}

func (suite *RepositoriesIntegrationTestSuite) TestNotification_StoredDecisionIsNeverOverwritten() {
	ctx := context.Background()
	o := suite.addOrder(testNow)
	r := suite.addRider()

	n, err := notification.NewNotification(kernel.NewUUID(), o, r.ID(), testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.notificationRepo.Add(ctx, n))

	stale, err := suite.notificationRepo.GetForUpdate(ctx, n.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(n.Decline(r.ID()))
	suite.Require().NoError(suite.notificationRepo.Update(ctx, n))

	suite.Require().NoError(stale.Accept(r.ID()))
	suite.Require().ErrorIs(suite.notificationRepo.Update(ctx, stale), notification.ErrNotificationAlreadyDecided)

	stored, err := suite.notificationRepo.Get(ctx, n.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.IsAccepted())
	suite.False(*stored.IsAccepted())
}

func (suite *RepositoriesIntegrationTestSuite) TestNotification_UpdateMissing_ReturnsNotFound() {
	o := suite.addOrder(testNow)
	r := suite.addRider()
	n, err := notification.NewNotification(kernel.NewUUID(), o, r.ID(), testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(n.Decline(r.ID()))

	suite.Require().ErrorIs(suite.notificationRepo.Update(context.Background(), n), errs.ErrObjectNotFound)
}

func (suite *RepositoriesIntegrationTestSuite) TestNotification_GetMissing_ReturnsNotFound() {
	_, err := suite.notificationRepo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestRepositoriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoriesIntegrationTestSuite))
}
