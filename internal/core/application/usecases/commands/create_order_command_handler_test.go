package commands_test

import (
	"errors"
	"testing"

	"riderdispatch/internal/core/application/usecases/commands"
	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Pad Thai Corner", []string{"pad thai x2", "thai iced tea"}, 420, "12 Sukhumvit Rd")
	require.NoError(t, err)
	return cmd
}

func orderFactory(uow *MockUoW) *MockOrderUoWFactory {
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory
}

func TestCreateOrderCommandHandler_StoresPendingOrder(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	var saved *order.Order
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := orderFactory(uow)

	h := commands.NewCreateOrderCommandHandler(factory, fixedNow)
	require.NoError(t, h.Handle(ctx, cmd))

	mock.AssertExpectationsForObjects(t, repo, uow, factory)
	require.NotNil(t, saved)
	assert.Equal(t, cmd.OrderID(), saved.ID())
	assert.Equal(t, order.Pending, saved.Status())
	assert.Nil(t, saved.Rider())
	assert.Equal(t, cmd.Items(), saved.Items())
	assert.Equal(t, int64(420), saved.Total())
	assert.Equal(t, testNow, saved.CreatedAt())
}

func TestCreateOrderCommandHandler_RejectsBeforeTransaction(t *testing.T) {
	emptyItems, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Pad Thai Corner", nil, 420, "12 Sukhumvit Rd")
	require.NoError(t, err)

	tests := map[string]struct {
		cmd     commands.CreateOrderCommand
		wantErr error
	}{
		"zero value command": {cmd: commands.CreateOrderCommand{}, wantErr: commands.ErrCreateOrderCommandIsNotConstructed},
		"no items":           {cmd: emptyItems},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			factory := new(MockOrderUoWFactory)
			h := commands.NewCreateOrderCommandHandler(factory, fixedNow)

			err := h.Handle(t.Context(), tt.cmd)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			factory.AssertNotCalled(t, "Create")
		})
	}
}

func TestCreateOrderCommandHandler_TransactionFailures(t *testing.T) {
	boom := errors.New("db down")

	tests := map[string]func(ctx any, uow *MockUoW, repo *MockOrderRepository){
		"begin fails": func(ctx any, uow *MockUoW, _ *MockOrderRepository) {
			uow.On("Begin", ctx).Return(boom).Once()
		},
		"add fails": func(ctx any, uow *MockUoW, repo *MockOrderRepository) {
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("Add", ctx, mock.Anything).Return(boom).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
		},
		"commit fails": func(ctx any, uow *MockUoW, repo *MockOrderRepository) {
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("Add", ctx, mock.Anything).Return(nil).Once()
			uow.On("Commit", ctx).Return(boom).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
		},
	}

	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			repo := new(MockOrderRepository)
			uow := new(MockUoW)
			setup(ctx, uow, repo)
			factory := orderFactory(uow)

			h := commands.NewCreateOrderCommandHandler(factory, fixedNow)
			require.ErrorIs(t, h.Handle(ctx, newCreateOrderCommand(t)), boom)

			mock.AssertExpectationsForObjects(t, repo, uow, factory)
		})
	}
}
