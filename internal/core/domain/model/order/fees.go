package order

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var ErrFeeScheduleIsNotConstructed = errors.New("FeeSchedule must be created via NewFeeSchedule")

// FeeSchedule holds the flat fees added on top of the subtotal.
type FeeSchedule struct {
	deliveryFee   kernel.Money
	platformFee   kernel.Money
	isConstructed bool
}

// NewFeeSchedule requires a non-zero delivery fee; the platform fee may be zero.
func NewFeeSchedule(deliveryFee, platformFee kernel.Money) (FeeSchedule, error) {
	if err := errors.Join(deliveryFee.Validate(), platformFee.Validate()); err != nil {
		return FeeSchedule{}, err
	}
	if deliveryFee.IsZero() {
		return FeeSchedule{}, errs.NewValueIsInvalidErrorWithCause("delivery_fee", errors.New("must be greater than 0"))
	}
	return FeeSchedule{deliveryFee: deliveryFee, platformFee: platformFee, isConstructed: true}, nil
}

// DeliveryFeeFor returns the configured fee for delivery orders and zero otherwise.
func (f FeeSchedule) DeliveryFeeFor(deliveryType DeliveryType) kernel.Money {
	if deliveryType == Delivery {
		return f.deliveryFee
	}
	return kernel.ZeroMoney()
}

func (f FeeSchedule) PlatformFee() kernel.Money { return f.platformFee }

func (f FeeSchedule) Validate() error {
	if !f.isConstructed {
		return ErrFeeScheduleIsNotConstructed
	}
	return nil
}
