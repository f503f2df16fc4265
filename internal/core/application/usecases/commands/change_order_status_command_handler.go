package commands

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// ChangeOrderStatusResult is the updated order and the ids of the notifications the
// transition produced. Delivery of those notifications is left to the dispatcher.
type ChangeOrderStatusResult struct {
	Order           *order.Order
	PreviousStatus  order.Status
	NotificationIDs []kernel.UUID
}

// ChangeOrderStatusCommandHandler applies one status transition.
//
// Within a single transaction it loads the order with its line items, checks the edge
// against the transition table, writes the new status conditionally on the status it
// just read, appends the history entry and stores the planned notifications.
//
// Failures leave no trace:
//   - order.ErrInvalidTransition when the edge does not exist
//   - ports.ErrConcurrentModification when another transition committed first
//   - errs.ObjectNotFoundError when the order does not exist
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	planner    services.NotificationPlanner
	now        func() time.Time
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewNotificationPlanner(),
		now:        time.Now,
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	previous, err := current.ChangeStatus(cmd.Status(), cmd.CourierID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = orderRepo.UpdateStatus(ctx, current, previous); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	now := h.now()
	entry, err := order.NewStatusHistoryEntry(current.ID(), current.Status(), cmd.Actor(), now)
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if err = uow.StatusHistoryRepository().Append(ctx, entry); err != nil {
		return ChangeOrderStatusResult{}, fmt.Errorf("insert status history: %w", err)
	}

	notes, err := h.planner.PlanForTransition(current, cmd.Actor(), now)
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}
	notificationRepo := uow.NotificationRepository()
	ids := make([]kernel.UUID, 0, len(notes))
	for _, n := range notes {
		if err = notificationRepo.Add(ctx, n); err != nil {
			return ChangeOrderStatusResult{}, fmt.Errorf("insert notification: %w", err)
		}
		ids = append(ids, n.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	return ChangeOrderStatusResult{Order: current, PreviousStatus: previous, NotificationIDs: ids}, nil
}
