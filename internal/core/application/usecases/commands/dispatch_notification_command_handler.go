package commands

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/ports"
)

// DeliveryOutcome describes what happened to one dispatch attempt.
type DeliveryOutcome string

const (
	// OutcomeSent means the push gateway confirmed delivery and the flag was set.
	OutcomeSent DeliveryOutcome = "sent"
	// OutcomeSkipped means the recipient has no push token. The flag stays false.
	OutcomeSkipped DeliveryOutcome = "skipped"
	// OutcomeFailed means the push gateway rejected the message. The flag stays false
	// and the notification can be dispatched again.
	OutcomeFailed DeliveryOutcome = "failed"
	// OutcomeAlreadySent means an earlier dispatch succeeded; nothing was pushed.
	OutcomeAlreadySent DeliveryOutcome = "already_sent"
)

// Push payload keys understood by the mobile clients.
const (
	dataKeyOrderID  = "order_id"
	dataKeyUserType = "user_type"
)

// DispatchNotificationCommandHandler resolves the recipient's push token, hands the
// message to the push gateway and records confirmed delivery.
//
// Push failures are reported through the outcome, never as an error: an error means
// the notification could not be read or the sent flag could not be written.
type DispatchNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
	sender     ports.PushSender
	logger     *slog.Logger
}

func NewDispatchNotificationCommandHandler(
	uowFactory NotificationUoWFactory,
	sender ports.PushSender,
	logger *slog.Logger,
) DispatchNotificationCommandHandler {
	return DispatchNotificationCommandHandler{
		uowFactory: uowFactory,
		sender:     sender,
		logger:     logger.With("component", "notification-dispatcher"),
	}
}

func (h *DispatchNotificationCommandHandler) Handle(
	ctx context.Context, cmd DispatchNotificationCommand,
) (DeliveryOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	// No transaction: the push must not run while holding database locks.
	uow := h.uowFactory.Create()
	notificationRepo := uow.NotificationRepository()

	n, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return "", err
	}
	if n.IsSent() {
		return OutcomeAlreadySent, nil
	}

	token, err := uow.RecipientDirectory().PushToken(ctx, n.RecipientType(), n.RecipientID())
	if err != nil {
		return "", fmt.Errorf("resolve push token: %w", err)
	}
	if token == "" {
		h.logger.DebugContext(ctx, "recipient has no push token",
			"notification_id", n.ID().String(),
			"recipient_type", n.RecipientType().String(),
			"recipient_id", n.RecipientID().String())
		return OutcomeSkipped, nil
	}

	if err = h.sender.Send(ctx, pushMessage(n, token)); err != nil {
		h.logger.WarnContext(ctx, "push delivery failed",
			"notification_id", n.ID().String(),
			"recipient_type", n.RecipientType().String(),
			"error", err)
		return OutcomeFailed, nil
	}

	if err = notificationRepo.MarkSent(ctx, n.ID()); err != nil {
		return "", fmt.Errorf("mark notification %s sent: %w", n.ID(), err)
	}
	n.MarkSent()

	return OutcomeSent, nil
}

func pushMessage(n *notification.Notification, token string) ports.PushMessage {
	data := map[string]string{
		dataKeyUserType: n.RecipientType().String(),
	}
	if orderID := n.OrderID(); orderID != nil {
		data[dataKeyOrderID] = orderID.String()
	}
	return ports.PushMessage{
		Token: token,
		Title: n.Title(),
		Body:  n.Body(),
		Data:  data,
	}
}
