package api

import (
	"encoding/json"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Error string `json:"error"`
}

// OrderLine defines model for OrderLine.
type OrderLine struct {
	ItemId   openapi_types.UUID `json:"item_id"`
	Quantity int                `json:"quantity"`
}

// CreateOrderRequest defines model for CreateOrderRequest.
type CreateOrderRequest struct {
	CustomerId           openapi_types.UUID `json:"customer_id"`
	CityId               openapi_types.UUID `json:"city_id"`
	DeliveryType         string             `json:"delivery_type"`
	Items                []OrderLine        `json:"items"`
	SpecialInstructions  *string            `json:"special_instructions,omitempty"`
	DeliveryInstructions *string            `json:"delivery_instructions,omitempty"`
}

// CreateOrderResponse defines model for CreateOrderResponse.
type CreateOrderResponse struct {
	Success        bool                 `json:"success"`
	OrderId        openapi_types.UUID   `json:"order_id"`
	TotalAmount    json.Number          `json:"total_amount"`
	SkippedItemIds []openapi_types.UUID `json:"skipped_item_ids,omitempty"`
}

// ChangeOrderStatusRequest defines model for ChangeOrderStatusRequest.
type ChangeOrderStatusRequest struct {
	OrderId          openapi_types.UUID  `json:"order_id"`
	NewStatus        string              `json:"new_status"`
	ChangedBy        string              `json:"changed_by"`
	DeliveryPersonId *openapi_types.UUID `json:"delivery_person_id,omitempty"`
}

// ChangeOrderStatusResponse defines model for ChangeOrderStatusResponse.
type ChangeOrderStatusResponse struct {
	Success bool  `json:"success"`
	Order   Order `json:"order"`
}

// Order defines model for Order.
type Order struct {
	OrderId              openapi_types.UUID  `json:"order_id"`
	CustomerId           openapi_types.UUID  `json:"customer_id"`
	CityId               openapi_types.UUID  `json:"city_id"`
	DeliveryType         string              `json:"delivery_type"`
	Status               string              `json:"status"`
	Subtotal             json.Number         `json:"subtotal"`
	DeliveryFee          json.Number         `json:"delivery_fee"`
	PlatformFee          json.Number         `json:"platform_fee"`
	TotalAmount          json.Number         `json:"total_amount"`
	SpecialInstructions  string              `json:"special_instructions,omitempty"`
	DeliveryInstructions string              `json:"delivery_instructions,omitempty"`
	DeliveryPersonId     *openapi_types.UUID `json:"delivery_person_id,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	ItemId     openapi_types.UUID `json:"item_id"`
	ChefId     openapi_types.UUID `json:"chef_id"`
	Quantity   int                `json:"quantity"`
	UnitPrice  json.Number        `json:"unit_price"`
	ChefAmount json.Number        `json:"chef_amount"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// Notification defines model for Notification.
type Notification struct {
	NotificationId openapi_types.UUID `json:"notification_id"`
	UserType       string             `json:"user_type"`
	UserId         openapi_types.UUID `json:"user_id"`
	Title          string             `json:"title"`
	Message        string             `json:"message"`
	IsSent         bool               `json:"is_sent"`
	CreatedAt      time.Time          `json:"created_at"`
}

// OrderDetails defines model for OrderDetails.
type OrderDetails struct {
	Order
	Items         []OrderItem    `json:"items"`
	StatusHistory []StatusChange `json:"status_history"`
	Notifications []Notification `json:"notifications"`
}

// SendNotificationRequest defines model for SendNotificationRequest.
type SendNotificationRequest struct {
	OrderId  *openapi_types.UUID `json:"order_id,omitempty"`
	UserType string              `json:"user_type"`
	UserId   openapi_types.UUID  `json:"user_id"`
	Title    string              `json:"title"`
	Message  string              `json:"message"`
}

// SendNotificationResponse defines model for SendNotificationResponse.
type SendNotificationResponse struct {
	Success        bool               `json:"success"`
	NotificationId openapi_types.UUID `json:"notification_id"`
	Outcome        string             `json:"outcome"`
}

// DispatchNotificationRequest defines model for DispatchNotificationRequest.
type DispatchNotificationRequest struct {
	NotificationId openapi_types.UUID `json:"notification_id"`
}

// DispatchNotificationResponse defines model for DispatchNotificationResponse.
type DispatchNotificationResponse struct {
	Success bool   `json:"success"`
	Outcome string `json:"outcome"`
}

// ExpireStaleOrdersResponse defines model for ExpireStaleOrdersResponse.
type ExpireStaleOrdersResponse struct {
	Success      bool `json:"success"`
	ExpiredCount int  `json:"expired_count"`
	FailedCount  int  `json:"failed_count"`
}
