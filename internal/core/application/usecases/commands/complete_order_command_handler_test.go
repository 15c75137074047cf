package commands_test

import (
	"testing"

	"github.com/dehanf/Smart-takeout-system/internal/core/application/usecases/commands"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := restoredOrder(t, order.Ready)
	cmd, err := commands.NewCompleteOrderCommand(o.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		repo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, o.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := t.Context()
	o := restoredOrder(t, order.Tracking)
	cmd, err := commands.NewCompleteOrderCommand(o.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}
