package commands_test

import (
	"context"
	"testing"

	"riderdispatch/internal/core/application/usecases/commands"
	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/notification"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationUoW struct{ mock.Mock }

func (m *MockNotificationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

func TestDeclineNotificationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := newPendingOrder(t)
	r := newAvailableRider(t)
	offer := newOffer(t, o, r)

	repo := new(MockNotificationRepository)
	uow := new(MockNotificationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, offer.ID()).Return(offer, nil).Once(),
		repo.On("Update", ctx, offer).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewDeclineNotificationCommand(r.ID(), offer.ID())
	require.NoError(t, err)

	h := commands.NewDeclineNotificationCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)

	require.NotNil(t, offer.IsAccepted())
	assert.False(t, *offer.IsAccepted())
	assert.True(t, offer.IsRead())
	assert.Equal(t, order.Pending, o.Status(), "declining leaves the order untouched")
	assert.Nil(t, r.CurrentOrder(), "declining leaves the rider untouched")
}

func TestDeclineNotificationCommandHandler_Handle_WrongRider(t *testing.T) {
	ctx := t.Context()
	offer := newOffer(t, newPendingOrder(t), newAvailableRider(t))

	repo := new(MockNotificationRepository)
	uow := new(MockNotificationUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("GetForUpdate", ctx, offer.ID()).Return(offer, nil).Once()

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewDeclineNotificationCommand(kernel.NewUUID(), offer.ID())
	h := commands.NewDeclineNotificationCommandHandler(factory)

	require.ErrorIs(t, h.Handle(ctx, cmd), notification.ErrWrongRider)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.True(t, offer.IsPending())
}
