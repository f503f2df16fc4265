package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// LineItem is the immutable record of one catalog item within an order. The unit price
// is captured at order time, so later catalog price changes never affect it.
type LineItem struct {
	catalogItemID kernel.UUID
	chefID        kernel.UUID
	quantity      int
	unitPrice     kernel.Money
	amount        kernel.Money
	isConstructed bool
}

// NewLineItem computes the amount owed to the chef as unitPrice × quantity.
func NewLineItem(catalogItemID, chefID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	if err := errors.Join(
		wrapParam("item_id", catalogItemID.Validate()),
		wrapParam("chef_id", chefID.Validate()),
		wrapParam("price", unitPrice.Validate()),
	); err != nil {
		return LineItem{}, err
	}

	amount, err := unitPrice.Mul(quantity)
	if err != nil {
		return LineItem{}, err
	}

	return LineItem{
		catalogItemID: catalogItemID,
		chefID:        chefID,
		quantity:      quantity,
		unitPrice:     unitPrice,
		amount:        amount,
		isConstructed: true,
	}, nil
}

func (li LineItem) CatalogItemID() kernel.UUID { return li.catalogItemID }
func (li LineItem) ChefID() kernel.UUID        { return li.chefID }
func (li LineItem) Quantity() int              { return li.quantity }
func (li LineItem) UnitPrice() kernel.Money    { return li.unitPrice }

// Amount is the share of the subtotal owed to the item's chef.
func (li LineItem) Amount() kernel.Money { return li.amount }

func (li LineItem) Validate() error {
	if !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func wrapParam(param string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", param, err)
}
