package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

type statusChanger interface {
	Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (ChangeOrderStatusResult, error)
}

// ExpireStaleOrdersResult summarises one sweep. Expired counts successful cancellations.
type ExpireStaleOrdersResult struct {
	Expired         int
	Failed          int
	NotificationIDs []kernel.UUID
}

// ExpireStaleOrdersCommandHandler cancels placed orders nobody accepted in time.
//
// Every stale order goes through the regular status transition as the system actor,
// in its own transaction. An order that moved on in the meantime fails that
// transition; the failure is logged and counted and the sweep continues.
type ExpireStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	transition statusChanger
	logger     *slog.Logger
}

func NewExpireStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	transition statusChanger,
	logger *slog.Logger,
) ExpireStaleOrdersCommandHandler {
	return ExpireStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		transition: transition,
		logger:     logger.With("component", "order-expiry"),
	}
}

func (h *ExpireStaleOrdersCommandHandler) Handle(
	ctx context.Context, cmd ExpireStaleOrdersCommand,
) (ExpireStaleOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return ExpireStaleOrdersResult{}, err
	}

	stale, err := h.uowFactory.Create().OrderRepository().ListStale(ctx, order.Placed, cmd.Cutoff())
	if err != nil {
		return ExpireStaleOrdersResult{}, fmt.Errorf("list stale orders: %w", err)
	}

	var result ExpireStaleOrdersResult
	for _, o := range stale {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		cancel, err := NewChangeOrderStatusCommand(o.ID(), order.Cancelled, order.ActorSystem, nil)
		if err != nil {
			return result, err
		}

		changed, err := h.transition.Handle(ctx, cancel)
		if err != nil {
			result.Failed++
			h.logFailure(ctx, o.ID(), err)
			continue
		}

		result.Expired++
		result.NotificationIDs = append(result.NotificationIDs, changed.NotificationIDs...)
		h.logger.InfoContext(ctx, "order expired",
			"order_id", o.ID().String(),
			"created_at", o.CreatedAt())
	}

	return result, nil
}

func (h *ExpireStaleOrdersCommandHandler) logFailure(ctx context.Context, orderID kernel.UUID, err error) {
	// Losing the race against a chef accepting the order is expected.
	if errors.Is(err, order.ErrInvalidTransition) || errors.Is(err, ports.ErrConcurrentModification) {
		h.logger.InfoContext(ctx, "order moved on before expiry", "order_id", orderID.String(), "reason", err)
		return
	}
	h.logger.ErrorContext(ctx, "failed to expire order", "order_id", orderID.String(), "error", err)
}
