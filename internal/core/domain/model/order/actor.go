package order

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Actor is the party that triggered a status change.
type Actor int

const (
	UnknownActor Actor = iota
	ActorCustomer
	ActorChef
	ActorDelivery
	// ActorSystem is used by the expiry sweeper only.
	ActorSystem
)

var actorNames = map[Actor]string{
	ActorCustomer: "customer",
	ActorChef:     "chef",
	ActorDelivery: "delivery",
	ActorSystem:   "system",
}

func ParseActor(s string) (Actor, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for actor, name := range actorNames {
		if name == needle {
			return actor, nil
		}
	}
	return UnknownActor, errs.NewValueIsInvalidErrorWithCause("changed_by", fmt.Errorf("%q is not a known actor", s))
}

func (a Actor) Validate() error {
	if _, ok := actorNames[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("changed_by", fmt.Errorf("%d is not a valid actor", a))
	}
	return nil
}

func (a Actor) String() string {
	if name, ok := actorNames[a]; ok {
		return name
	}
	return "unknown"
}
