package jobs

import (
	"context"
	"io"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Handle(ctx context.Context, cmd commands.DispatchNotificationCommand) (commands.DeliveryOutcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DeliveryOutcome), args.Error(1)
}

type MockExpirer struct {
	mock.Mock
}

func (m *MockExpirer) Handle(ctx context.Context, cmd commands.ExpireStaleOrdersCommand) (commands.ExpireStaleOrdersResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ExpireStaleOrdersResult), args.Error(1)
}

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Do(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error {
	args := m.Called(ctx, key, ttl, fn)
	if run, _ := args.Get(0).(bool); run {
		return fn(ctx)
	}
	return args.Error(1)
}

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, ids ...kernel.UUID) int {
	args := m.Called(ctx, ids)
	return args.Int(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
