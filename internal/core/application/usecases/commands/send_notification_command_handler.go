package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
)

type notificationDispatcher interface {
	Handle(ctx context.Context, cmd DispatchNotificationCommand) (DeliveryOutcome, error)
}

// SendNotificationResult carries the stored notification id and the delivery outcome.
type SendNotificationResult struct {
	NotificationID kernel.UUID
	Outcome        DeliveryOutcome
}

// SendNotificationCommandHandler records the notification first and only then pushes
// it, so the stored row reflects the outcome even when the push fails.
type SendNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
	dispatcher notificationDispatcher
	now        func() time.Time
}

func NewSendNotificationCommandHandler(
	uowFactory NotificationUoWFactory,
	dispatcher notificationDispatcher,
) SendNotificationCommandHandler {
	return SendNotificationCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (h *SendNotificationCommandHandler) Handle(
	ctx context.Context, cmd SendNotificationCommand,
) (SendNotificationResult, error) {
	if err := cmd.Validate(); err != nil {
		return SendNotificationResult{}, err
	}

	n, err := notification.NewNotification(kernel.NewUUID(), cmd.RecipientType(), cmd.RecipientID(),
		cmd.OrderID(), cmd.Title(), cmd.Body(), h.now())
	if err != nil {
		return SendNotificationResult{}, err
	}

	if err = h.store(ctx, n); err != nil {
		return SendNotificationResult{}, err
	}

	dispatch, err := NewDispatchNotificationCommand(n.ID())
	if err != nil {
		return SendNotificationResult{}, err
	}
	outcome, err := h.dispatcher.Handle(ctx, dispatch)
	if err != nil {
		return SendNotificationResult{NotificationID: n.ID()}, err
	}

	return SendNotificationResult{NotificationID: n.ID(), Outcome: outcome}, nil
}

func (h *SendNotificationCommandHandler) store(ctx context.Context, n *notification.Notification) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().Add(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
