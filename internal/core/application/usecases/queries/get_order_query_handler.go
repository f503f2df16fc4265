package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler answers GetOrderQuery with four raw SQL reads.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist. History is in
// commit order, items in submission order and notifications oldest first.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.order(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Items, err = h.items(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.History, err = h.history(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Notifications, err = h.notifications(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) order(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			city_id,
			delivery_type,
			status,
			subtotal,
			delivery_fee,
			platform_fee,
			total_amount,
			COALESCE(special_instructions, ''),
			COALESCE(delivery_instructions, ''),
			courier_id,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		resp                                      GetOrderQueryResponse
		id, customerID, cityID                    uuid.UUID
		subtotal, deliveryFee, platformFee, total decimal.Decimal
		courierID                                 uuid.NullUUID
	)
	err := row.Scan(
		&id,
		&customerID,
		&cityID,
		&resp.DeliveryType,
		&resp.Status,
		&subtotal,
		&deliveryFee,
		&platformFee,
		&total,
		&resp.SpecialInstructions,
		&resp.DeliveryInstructions,
		&courierID,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = toUUID(id); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = toUUID(customerID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CityID, err = toUUID(cityID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if courierID.Valid {
		cID, courierErr := toUUID(courierID.UUID)
		if courierErr != nil {
			return GetOrderQueryResponse{}, courierErr
		}
		resp.CourierID = &cID
	}

	if resp.Subtotal, err = kernel.NewMoney(subtotal); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.DeliveryFee, err = kernel.NewMoney(deliveryFee); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.PlatformFee, err = kernel.NewMoney(platformFee); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Total, err = kernel.NewMoney(total); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.CreatedAt = resp.CreatedAt.UTC()

	return resp, nil
}

func (h GetOrderQueryHandler) items(ctx context.Context, orderID kernel.UUID) ([]OrderItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT item_id, chef_id, quantity, unit_price, chef_amount
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			view              OrderItemView
			itemID, chefID    uuid.UUID
			unitPrice, amount decimal.Decimal
		)
		if err = rows.Scan(&itemID, &chefID, &view.Quantity, &unitPrice, &amount); err != nil {
			return nil, err
		}
		if view.ItemID, err = toUUID(itemID); err != nil {
			return nil, err
		}
		if view.ChefID, err = toUUID(chefID); err != nil {
			return nil, err
		}
		if view.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return nil, err
		}
		if view.Amount, err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
		items = append(items, view)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) history(ctx context.Context, orderID kernel.UUID) ([]StatusChangeView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, changed_by, changed_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusChangeView, 0)
	for rows.Next() {
		var view StatusChangeView
		if err = rows.Scan(&view.Status, &view.ChangedBy, &view.ChangedAt); err != nil {
			return nil, err
		}
		view.ChangedAt = view.ChangedAt.UTC()
		history = append(history, view)
	}

	return history, rows.Err()
}

func (h GetOrderQueryHandler) notifications(ctx context.Context, orderID kernel.UUID) ([]NotificationView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, user_type, user_id, title, message, is_sent, created_at
		FROM notifications
		WHERE order_id = ?
		ORDER BY created_at, user_type
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]NotificationView, 0)
	for rows.Next() {
		var (
			view          NotificationView
			id, recipient uuid.UUID
		)
		err = rows.Scan(&id, &view.RecipientType, &recipient, &view.Title, &view.Body, &view.IsSent, &view.CreatedAt)
		if err != nil {
			return nil, err
		}
		if view.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if view.RecipientID, err = toUUID(recipient); err != nil {
			return nil, err
		}
		view.CreatedAt = view.CreatedAt.UTC()
		notifications = append(notifications, view)
	}

	return notifications, rows.Err()
}

func toUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
