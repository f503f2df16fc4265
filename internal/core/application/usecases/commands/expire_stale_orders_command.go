package commands

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrExpireStaleOrdersCommandIsNotConstructed = errors.New(
	"ExpireStaleOrdersCommand must be created via NewExpireStaleOrdersCommand constructor",
)

// ExpireStaleOrdersCommand cancels every order still placed maxAge after creation,
// measured from now.
type ExpireStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration
	now    time.Time

	guard guard.ConstructorGuard
}

func NewExpireStaleOrdersCommand(maxAge time.Duration, now time.Time) (ExpireStaleOrdersCommand, error) {
	if maxAge <= 0 {
		return ExpireStaleOrdersCommand{}, errs.NewValueIsOutOfRangeError("max age", maxAge, "1ns", "unbounded")
	}
	if now.IsZero() {
		return ExpireStaleOrdersCommand{}, errs.NewValueIsRequiredError("now")
	}
	return ExpireStaleOrdersCommand{maxAge: maxAge, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleOrdersCommandIsNotConstructed)
}

func (c ExpireStaleOrdersCommand) MaxAge() time.Duration {
	return c.maxAge
}

// Cutoff is the creation time before which a placed order counts as stale.
func (c ExpireStaleOrdersCommand) Cutoff() time.Time {
	return c.now.Add(-c.maxAge)
}
