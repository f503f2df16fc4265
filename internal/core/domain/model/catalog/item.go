// Package catalog holds the read-only view of menu items the order builder prices against.
// Menu management lives outside this service.
package catalog

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
)

var ErrItemIsNotConstructed = errors.New("catalog Item must be created via NewItem")

// Item is a menu entry offered by exactly one chef at its current price.
type Item struct {
	id            kernel.UUID
	chefID        kernel.UUID
	price         kernel.Money
	isConstructed bool
}

func NewItem(id, chefID kernel.UUID, price kernel.Money) (Item, error) {
	if err := errors.Join(
		param("item_id", id.Validate()),
		param("chef_id", chefID.Validate()),
		param("price", price.Validate()),
	); err != nil {
		return Item{}, err
	}
	return Item{id: id, chefID: chefID, price: price, isConstructed: true}, nil
}

func (i Item) ID() kernel.UUID     { return i.id }
func (i Item) ChefID() kernel.UUID { return i.chefID }
func (i Item) Price() kernel.Money { return i.price }

func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func param(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
