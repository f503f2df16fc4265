package http

import (
	"context"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockStatusChanger struct{ mock.Mock }

func (m *MockStatusChanger) Handle(
	ctx context.Context, cmd commands.ChangeOrderStatusCommand,
) (commands.ChangeOrderStatusResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ChangeOrderStatusResult), args.Error(1)
}

type MockExpirer struct{ mock.Mock }

func (m *MockExpirer) Handle(
	ctx context.Context, cmd commands.ExpireStaleOrdersCommand,
) (commands.ExpireStaleOrdersResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ExpireStaleOrdersResult), args.Error(1)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Handle(
	ctx context.Context, cmd commands.DispatchNotificationCommand,
) (commands.DeliveryOutcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DeliveryOutcome), args.Error(1)
}

type MockSender struct{ mock.Mock }

func (m *MockSender) Handle(
	ctx context.Context, cmd commands.SendNotificationCommand,
) (commands.SendNotificationResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SendNotificationResult), args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockQueue struct{ mock.Mock }

func (m *MockQueue) Enqueue(ctx context.Context, ids ...kernel.UUID) int {
	args := m.Called(ctx, ids)
	return args.Int(0)
}
