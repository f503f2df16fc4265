package order

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// DeliveryType selects how the food reaches the customer.
type DeliveryType int

const (
	UnknownDeliveryType DeliveryType = iota
	// Pickup orders are collected by the customer; no courier, no delivery fee.
	Pickup
	// Delivery orders are brought by a courier and carry the delivery fee.
	Delivery
)

func ParseDeliveryType(s string) (DeliveryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pickup":
		return Pickup, nil
	case "delivery":
		return Delivery, nil
	default:
		return UnknownDeliveryType, errs.NewValueIsInvalidErrorWithCause(
			"delivery_type", fmt.Errorf("%q is neither pickup nor delivery", s))
	}
}

func (d DeliveryType) Validate() error {
	if d != Pickup && d != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("delivery_type", fmt.Errorf("%d is not a valid delivery type", d))
	}
	return nil
}

func (d DeliveryType) String() string {
	switch d {
	case Pickup:
		return "pickup"
	case Delivery:
		return "delivery"
	default:
		return "unknown"
	}
}
