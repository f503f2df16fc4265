package notification

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// RecipientType selects which account table a recipient id refers to.
type RecipientType int

const (
	UnknownRecipient RecipientType = iota
	Customer
	Chef
	Courier
)

var recipientNames = map[RecipientType]string{
	Customer: "customer",
	Chef:     "chef",
	Courier:  "delivery",
}

// ParseRecipientType accepts the stored names customer, chef and delivery.
func ParseRecipientType(s string) (RecipientType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for rt, name := range recipientNames {
		if name == needle {
			return rt, nil
		}
	}
	return UnknownRecipient, errs.NewValueIsInvalidErrorWithCause("recipient_type", fmt.Errorf("%q is not a known recipient type", s))
}

func (r RecipientType) Validate() error {
	if _, ok := recipientNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("recipient_type", fmt.Errorf("%d is not a valid recipient type", r))
	}
	return nil
}

func (r RecipientType) String() string {
	if name, ok := recipientNames[r]; ok {
		return name
	}
	return "unknown"
}
