package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
)

// ErrNoOrderableItems is returned when every requested line referenced an unknown
// catalog item and was skipped.
var ErrNoOrderableItems = errors.New("none of the requested items is available")

// UnknownItemPolicy decides what happens to a line whose catalog item does not exist.
type UnknownItemPolicy int

const (
	// SkipUnknownItems drops the line and keeps building the order.
	SkipUnknownItems UnknownItemPolicy = iota
	// RejectUnknownItems fails the whole order with errs.ObjectNotFoundError.
	RejectUnknownItems
)

func ParseUnknownItemPolicy(s string) (UnknownItemPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return SkipUnknownItems, nil
	case "reject":
		return RejectUnknownItems, nil
	default:
		return SkipUnknownItems, errs.NewValueIsInvalidErrorWithCause(
			"unknown item policy", fmt.Errorf("%q is neither skip nor reject", s))
	}
}

func (p UnknownItemPolicy) String() string {
	if p == RejectUnknownItems {
		return "reject"
	}
	return "skip"
}

// CreateOrderResult is the placed order with the ids of the chef notifications that
// were stored with it and are waiting for dispatch.
type CreateOrderResult struct {
	Order           *order.Order
	NotificationIDs []kernel.UUID
	SkippedItemIDs  []kernel.UUID
}

// CreateOrderCommandHandler prices the requested lines against the catalog and stores
// the order, its line items, the initial history entry and the chef notifications in
// one transaction. Nothing is visible unless everything is.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	fees       order.FeeSchedule
	policy     UnknownItemPolicy
	planner    services.NotificationPlanner
	now        func() time.Time
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	fees order.FeeSchedule,
	policy UnknownItemPolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
		policy:     policy,
		planner:    services.NewNotificationPlanner(),
		now:        time.Now,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, skipped, err := h.priceLines(ctx, uow, cmd.Lines())
	if err != nil {
		return CreateOrderResult{}, err
	}

	now := h.now()
	placed, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerID(), cmd.CityID(), cmd.DeliveryType(),
		items, h.fees, cmd.Instructions(), now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return CreateOrderResult{}, fmt.Errorf("insert order: %w", err)
	}

	entry, err := order.NewStatusHistoryEntry(placed.ID(), order.Placed, order.ActorCustomer, now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = uow.StatusHistoryRepository().Append(ctx, entry); err != nil {
		return CreateOrderResult{}, fmt.Errorf("insert status history: %w", err)
	}

	notes, err := h.planner.PlanForPlacement(placed, now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	notificationRepo := uow.NotificationRepository()
	ids := make([]kernel.UUID, 0, len(notes))
	for _, n := range notes {
		if err = notificationRepo.Add(ctx, n); err != nil {
			return CreateOrderResult{}, fmt.Errorf("insert notification: %w", err)
		}
		ids = append(ids, n.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{Order: placed, NotificationIDs: ids, SkippedItemIDs: skipped}, nil
}

// priceLines snapshots the current catalog price and chef of every line.
func (h *CreateOrderCommandHandler) priceLines(
	ctx context.Context, uow OrderUoW, lines []OrderLine,
) ([]order.LineItem, []kernel.UUID, error) {
	catalogRepo := uow.CatalogRepository()

	items := make([]order.LineItem, 0, len(lines))
	var skipped []kernel.UUID
	for _, line := range lines {
		entry, err := catalogRepo.Get(ctx, line.ItemID)
		if errors.Is(err, errs.ErrObjectNotFound) && h.policy == SkipUnknownItems {
			skipped = append(skipped, line.ItemID)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("resolve item %s: %w", line.ItemID, err)
		}

		item, err := order.NewLineItem(entry.ID(), entry.ChefID(), line.Quantity, entry.Price())
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, nil, ErrNoOrderableItems
	}
	return items, skipped, nil
}
