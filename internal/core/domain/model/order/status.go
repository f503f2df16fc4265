package order

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// ErrInvalidTransition is returned when the requested status is not reachable from the
// current one. The order is left untouched.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
//
//	placed ──> accepted ──> prepared ──┬──> picked_up ──> delivered   (delivery)
//	                                   └──────────────────> delivered   (pickup)
//
// Every non-terminal state may also move to cancelled.
type Status int

const (
	// UnknownStatus catches uninitialized values.
	UnknownStatus Status = iota
	Placed
	Accepted
	Prepared
	PickedUp
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Placed:    "placed",
	Accepted:  "accepted",
	Prepared:  "prepared",
	PickedUp:  "picked_up",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// transition is one edge of the lifecycle graph. When onlyFor is set the edge exists
// for that delivery type alone.
type transition struct {
	to      Status
	onlyFor DeliveryType
}

// transitions lists the outgoing edges of each state. States missing from the table
// are terminal.
var transitions = map[Status][]transition{
	Placed: {
		{to: Accepted},
		{to: Cancelled},
	},
	Accepted: {
		{to: Prepared},
		{to: Cancelled},
	},
	Prepared: {
		{to: PickedUp, onlyFor: Delivery},
		{to: Delivered, onlyFor: Pickup},
		{to: Cancelled},
	},
	PickedUp: {
		{to: Delivered},
		{to: Cancelled},
	},
}

// ParseStatus converts the wire/database name into a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == needle {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate checks that the value is one of the declared states.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves this state.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Next lists the states reachable from s for the given delivery type, in table order.
func (s Status) Next(deliveryType DeliveryType) []Status {
	var next []Status
	for _, t := range transitions[s] {
		if t.onlyFor == UnknownDeliveryType || t.onlyFor == deliveryType {
			next = append(next, t.to)
		}
	}
	return next
}

// CanTransitionTo reports whether s -> to is an edge for the given delivery type.
func (s Status) CanTransitionTo(to Status, deliveryType DeliveryType) bool {
	for _, next := range s.Next(deliveryType) {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the edge exists, ErrInvalidTransition otherwise.
func (s Status) TransitionTo(to Status, deliveryType DeliveryType) (Status, error) {
	if err := to.Validate(); err != nil {
		return UnknownStatus, err
	}
	if !s.CanTransitionTo(to, deliveryType) {
		return UnknownStatus, fmt.Errorf("%w: %s -> %s is not allowed for %s orders",
			ErrInvalidTransition, s, to, deliveryType)
	}
	return to, nil
}
