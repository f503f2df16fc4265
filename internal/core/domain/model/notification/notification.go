package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification")

// Notification is a single message for one recipient, optionally tied to an order.
type Notification struct {
	id            kernel.UUID
	recipientType RecipientType
	recipientID   kernel.UUID
	orderID       *kernel.UUID
	title         string
	body          string
	sent          bool
	createdAt     time.Time
	isConstructed bool
}

// NewNotification creates an unsent notification. orderID may be nil for messages
// unrelated to an order.
func NewNotification(
	id kernel.UUID,
	recipientType RecipientType,
	recipientID kernel.UUID,
	orderID *kernel.UUID,
	title, body string,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(
		param("notification_id", id.Validate()),
		recipientType.Validate(),
		param("recipient_id", recipientID.Validate()),
		required("title", title),
		required("body", body),
	); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, param("order_id", err)
		}
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created_at")
	}

	return &Notification{
		id:            id,
		recipientType: recipientType,
		recipientID:   recipientID,
		orderID:       copyID(orderID),
		title:         title,
		body:          body,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreNotification rebuilds a persisted notification including its sent flag.
func RestoreNotification(
	id kernel.UUID,
	recipientType RecipientType,
	recipientID kernel.UUID,
	orderID *kernel.UUID,
	title, body string,
	sent bool,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, recipientType, recipientID, orderID, title, body, createdAt)
	if err != nil {
		return nil, err
	}
	n.sent = sent
	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID              { return n.id }
func (n *Notification) RecipientType() RecipientType { return n.recipientType }
func (n *Notification) RecipientID() kernel.UUID     { return n.recipientID }
func (n *Notification) OrderID() *kernel.UUID        { return copyID(n.orderID) }
func (n *Notification) Title() string                { return n.title }
func (n *Notification) Body() string                 { return n.body }
func (n *Notification) IsSent() bool                 { return n.sent }
func (n *Notification) CreatedAt() time.Time         { return n.createdAt }

// MarkSent records confirmed delivery. Calling it again is a no-op; it reports whether
// the flag changed.
func (n *Notification) MarkSent() bool {
	if n.sent {
		return false
	}
	n.sent = true
	return true
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func param(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
