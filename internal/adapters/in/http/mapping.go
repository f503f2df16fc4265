package http

import (
	"encoding/json"

	"orderflow/internal/adapters/in/http/api"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelUUID(param string, id openapi_types.UUID) (kernel.UUID, error) {
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return u, nil
}

// money renders an amount as a JSON number with two decimals.
func money(m kernel.Money) json.Number {
	return json.Number(m.String())
}

func orderFromDomain(o *order.Order) api.Order {
	resp := api.Order{
		OrderId:              o.ID().Bytes(),
		CustomerId:           o.CustomerID().Bytes(),
		CityId:               o.CityID().Bytes(),
		DeliveryType:         o.DeliveryType().String(),
		Status:               o.Status().String(),
		Subtotal:             money(o.Subtotal()),
		DeliveryFee:          money(o.DeliveryFee()),
		PlatformFee:          money(o.PlatformFee()),
		TotalAmount:          money(o.Total()),
		SpecialInstructions:  o.Instructions().Special,
		DeliveryInstructions: o.Instructions().Delivery,
		CreatedAt:            o.CreatedAt(),
	}
	if courier := o.Courier(); courier != nil {
		id := courier.Bytes()
		resp.DeliveryPersonId = &id
	}
	return resp
}

func orderDetails(r queries.GetOrderQueryResponse) api.OrderDetails {
	details := api.OrderDetails{
		Order: api.Order{
			OrderId:              r.ID.Bytes(),
			CustomerId:           r.CustomerID.Bytes(),
			CityId:               r.CityID.Bytes(),
			DeliveryType:         r.DeliveryType,
			Status:               r.Status,
			Subtotal:             money(r.Subtotal),
			DeliveryFee:          money(r.DeliveryFee),
			PlatformFee:          money(r.PlatformFee),
			TotalAmount:          money(r.Total),
			SpecialInstructions:  r.SpecialInstructions,
			DeliveryInstructions: r.DeliveryInstructions,
			CreatedAt:            r.CreatedAt,
		},
		Items:         make([]api.OrderItem, 0, len(r.Items)),
		StatusHistory: make([]api.StatusChange, 0, len(r.History)),
		Notifications: make([]api.Notification, 0, len(r.Notifications)),
	}
	if r.CourierID != nil {
		id := r.CourierID.Bytes()
		details.DeliveryPersonId = &id
	}

	for _, item := range r.Items {
		details.Items = append(details.Items, api.OrderItem{
			ItemId:     item.ItemID.Bytes(),
			ChefId:     item.ChefID.Bytes(),
			Quantity:   item.Quantity,
			UnitPrice:  money(item.UnitPrice),
			ChefAmount: money(item.Amount),
		})
	}
	for _, h := range r.History {
		details.StatusHistory = append(details.StatusHistory, api.StatusChange{
			Status:    h.Status,
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
		})
	}
	for _, n := range r.Notifications {
		details.Notifications = append(details.Notifications, api.Notification{
			NotificationId: n.ID.Bytes(),
			UserType:       n.RecipientType,
			UserId:         n.RecipientID.Bytes(),
			Title:          n.Title,
			Message:        n.Body,
			IsSent:         n.IsSent,
			CreatedAt:      n.CreatedAt,
		})
	}

	return details
}
