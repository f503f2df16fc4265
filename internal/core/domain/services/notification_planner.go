package services

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
)

// audience resolves who receives a message for a given order. An empty result means
// nobody, e.g. a courier message on an order without a courier.
type audience func(o *order.Order) []recipient

type recipient struct {
	kind notification.RecipientType
	id   kernel.UUID
}

// template is one row of the notification plan. body is a format string receiving the
// order id.
type template struct {
	to    audience
	title string
	body  string
}

func toCustomer(o *order.Order) []recipient {
	return []recipient{{kind: notification.Customer, id: o.CustomerID()}}
}

func toChefs(o *order.Order) []recipient {
	chefs := o.ChefIDs()
	out := make([]recipient, 0, len(chefs))
	for _, id := range chefs {
		out = append(out, recipient{kind: notification.Chef, id: id})
	}
	return out
}

func toAssignedCourier(o *order.Order) []recipient {
	courier := o.Courier()
	if courier == nil || o.DeliveryType() != order.Delivery {
		return nil
	}
	return []recipient{{kind: notification.Courier, id: *courier}}
}

// plan maps the status an order has just entered to the messages it triggers.
var plan = map[order.Status][]template{
	order.Placed: {
		{to: toChefs, title: "New Order", body: "You have a new order #%s"},
	},
	order.Accepted: {
		{to: toCustomer, title: "Order Accepted", body: "Your order #%s has been accepted and is being prepared"},
	},
	order.Prepared: {
		{to: toCustomer, title: "Order Ready", body: "Your order #%s is ready"},
		{to: toAssignedCourier, title: "Order Ready for Pickup", body: "Order #%s is ready for pickup"},
	},
	order.PickedUp: {
		{to: toCustomer, title: "Order Picked Up", body: "Your order #%s is on the way"},
	},
	order.Delivered: {
		{to: toCustomer, title: "Order Delivered", body: "Your order #%s has been delivered. Enjoy your meal!"},
	},
	order.Cancelled: {
		{to: toCustomer, title: "Order Cancelled", body: "Your order #%s has been cancelled"},
	},
}

// systemPlan overrides plan for transitions made by the expiry sweeper.
var systemPlan = map[order.Status][]template{
	order.Cancelled: {
		{to: toCustomer, title: "Order Expired", body: "Order #%s was automatically cancelled due to no chef response"},
	},
}

// NotificationPlanner turns an order's current status into the set of notifications
// to store alongside the change.
//
// Example:
//
//	planner := services.NewNotificationPlanner()
//	if _, err := o.ChangeStatus(order.Accepted, nil); err != nil {
//	    return err
//	}
//	notes, err := planner.PlanForTransition(o, order.ActorChef, time.Now())
type NotificationPlanner struct{}

func NewNotificationPlanner() NotificationPlanner {
	return NotificationPlanner{}
}

// PlanForPlacement returns one "New Order" notification per distinct chef.
func (p NotificationPlanner) PlanForPlacement(o *order.Order, now time.Time) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Placed {
		return nil, fmt.Errorf("planning placement for order in status %s", o.Status())
	}
	return p.build(o, plan[order.Placed], now)
}

// PlanForTransition returns the notifications for the status the order has just
// entered. actor only changes the wording, never the recipients.
func (p NotificationPlanner) PlanForTransition(o *order.Order, actor order.Actor, now time.Time) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	templates := plan[o.Status()]
	if actor == order.ActorSystem {
		if override, ok := systemPlan[o.Status()]; ok {
			templates = override
		}
	}
	return p.build(o, templates, now)
}

func (p NotificationPlanner) build(o *order.Order, templates []template, now time.Time) ([]*notification.Notification, error) {
	orderID := o.ID()
	var out []*notification.Notification
	for _, tpl := range templates {
		for _, r := range tpl.to(o) {
			n, err := notification.NewNotification(
				kernel.NewUUID(), r.kind, r.id, &orderID,
				tpl.title, fmt.Sprintf(tpl.body, orderID), now,
			)
			if err != nil {
				return nil, fmt.Errorf("build %q notification: %w", tpl.title, err)
			}
			out = append(out, n)
		}
	}
	return out, nil
}
