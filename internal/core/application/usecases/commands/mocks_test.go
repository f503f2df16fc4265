package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/catalog"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) Get(ctx context.Context, id kernel.UUID) (catalog.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(catalog.Item)
	return item, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) ListStale(ctx context.Context, status order.Status, before time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, status, before)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockStatusHistoryRepository struct{ mock.Mock }

func (m *MockStatusHistoryRepository) Append(ctx context.Context, entry order.StatusHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) ListByOrder(ctx context.Context, id kernel.UUID) ([]order.StatusHistoryEntry, error) {
	args := m.Called(ctx, id)
	entries, _ := args.Get(0).([]order.StatusHistoryEntry)
	return entries, args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) MarkSent(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByOrder(ctx context.Context, id kernel.UUID) ([]*notification.Notification, error) {
	args := m.Called(ctx, id)
	notes, _ := args.Get(0).([]*notification.Notification)
	return notes, args.Error(1)
}

type MockRecipientDirectory struct{ mock.Mock }

func (m *MockRecipientDirectory) PushToken(
	ctx context.Context, recipientType notification.RecipientType, id kernel.UUID,
) (string, error) {
	args := m.Called(ctx, recipientType, id)
	return args.String(0), args.Error(1)
}

type MockPushSender struct{ mock.Mock }

func (m *MockPushSender) Send(ctx context.Context, msg ports.PushMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ MockTx }

func (m *MockOrderUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockOrderUoW) StatusHistoryRepository() ports.StatusHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusHistoryRepository)
}
func (m *MockOrderUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNotificationUoW struct{ MockTx }

func (m *MockNotificationUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}
func (m *MockNotificationUoW) RecipientDirectory() ports.RecipientDirectory {
	args := m.Called()
	return args.Get(0).(ports.RecipientDirectory)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFees(t *testing.T) order.FeeSchedule {
	t.Helper()
	fees, err := order.NewFeeSchedule(kernel.MustMoney("30"), kernel.MustMoney("10"))
	require.NoError(t, err)
	return fees
}

// placedOrder builds a delivery order from one chef in status placed.
func placedOrder(t *testing.T, deliveryType order.DeliveryType) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 2, kernel.MustMoney("100"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), deliveryType,
		[]order.LineItem{item}, testFees(t), order.Instructions{}, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	return o
}
