package commands

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrSendNotificationCommandIsNotConstructed = errors.New(
	"SendNotificationCommand must be created via NewSendNotificationCommand constructor",
)

// SendNotificationCommand stores an ad-hoc notification and pushes it right away.
// orderID is optional.
type SendNotificationCommand struct { //nolint:recvcheck //using for validation
	recipientType notification.RecipientType
	recipientID   kernel.UUID
	orderID       *kernel.UUID
	title         string
	body          string

	guard guard.ConstructorGuard
}

func NewSendNotificationCommand(
	recipientType notification.RecipientType,
	recipientID kernel.UUID,
	orderID *kernel.UUID,
	title, body string,
) (SendNotificationCommand, error) {
	var problems []error
	if err := recipientType.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := recipientID.Validate(); err != nil {
		problems = append(problems, fmt.Errorf("recipient_id: %w", err))
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("order_id: %w", err))
		}
	}
	if strings.TrimSpace(title) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("title"))
	}
	if strings.TrimSpace(body) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("body"))
	}
	if err := errors.Join(problems...); err != nil {
		return SendNotificationCommand{}, err
	}

	cmd := SendNotificationCommand{
		recipientType: recipientType,
		recipientID:   recipientID,
		title:         title,
		body:          body,
		guard:         guard.NewConstructorGuard(),
	}
	if orderID != nil {
		id := *orderID
		cmd.orderID = &id
	}
	return cmd, nil
}

func (c SendNotificationCommand) Validate() error {
	return c.guard.Validate(ErrSendNotificationCommandIsNotConstructed)
}

func (c SendNotificationCommand) RecipientType() notification.RecipientType { return c.recipientType }
func (c SendNotificationCommand) RecipientID() kernel.UUID                  { return c.recipientID }
func (c SendNotificationCommand) OrderID() *kernel.UUID                     { return c.orderID }
func (c SendNotificationCommand) Title() string                             { return c.title }
func (c SendNotificationCommand) Body() string                              { return c.body }
