package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrDispatchNotificationCommandIsNotConstructed = errors.New(
	"DispatchNotificationCommand must be created via NewDispatchNotificationCommand constructor",
)

// DispatchNotificationCommand asks for one stored notification to be pushed.
type DispatchNotificationCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDispatchNotificationCommand(notificationID kernel.UUID) (DispatchNotificationCommand, error) {
	if err := notificationID.Validate(); err != nil {
		return DispatchNotificationCommand{}, fmt.Errorf("notification_id: %w", err)
	}
	return DispatchNotificationCommand{
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchNotificationCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationCommandIsNotConstructed)
}

func (c DispatchNotificationCommand) NotificationID() kernel.UUID {
	return c.notificationID
}
