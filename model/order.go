package model

import (
	"database/sql"
	"time"

	"github.com/farhanmaulid/commerce-inventory/constant"
)

type OrderItemRequest struct {
	ProductID uint64  `json:"product_id" validate:"required"`
	Quantity  int64   `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerEmail string             `json:"customer_email" validate:"required,email"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive,required"`
	ShippingCost  float64            `json:"shipping_cost" validate:"gte=0"`
	Notes         string             `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status constant.OrderStatus `json:"status" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus constant.PaymentStatus `json:"payment_status" validate:"required"`
}

type UpdateTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
}

type Order struct {
	ID             uint64                 `db:"id" json:"id"`
	OrderNumber    string                 `db:"order_number" json:"order_number"`
	CustomerName   string                 `db:"customer_name" json:"customer_name"`
	CustomerEmail  string                 `db:"customer_email" json:"customer_email"`
	Status         constant.OrderStatus   `db:"status" json:"status"`
	PaymentStatus  constant.PaymentStatus `db:"payment_status" json:"payment_status"`
	TrackingNumber sql.NullString         `db:"tracking_number" json:"tracking_number,omitempty"`
	Subtotal       float64                `db:"subtotal" json:"subtotal"`
	ShippingCost   float64                `db:"shipping_cost" json:"shipping_cost"`
	Total          float64                `db:"total" json:"total"`
	Notes          sql.NullString         `db:"notes" json:"notes,omitempty"`
	ShippedAt      sql.NullTime           `db:"shipped_at" json:"shipped_at,omitempty"`
	DeliveredAt    sql.NullTime           `db:"delivered_at" json:"delivered_at,omitempty"`
	ExpiresAt      time.Time              `db:"expires_at" json:"expires_at"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time              `db:"updated_at" json:"updated_at"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

type OrderItem struct {
	ID          uint64  `db:"id" json:"id"`
	OrderID     uint64  `db:"order_id" json:"order_id"`
	ProductID   uint64  `db:"product_id" json:"product_id"`
	ProductName string  `db:"product_name" json:"product_name"`
	SKU         string  `db:"sku" json:"sku"`
	Quantity    int64   `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
	Total       float64 `db:"total" json:"total"`
}

// InsertOrderTxItem carries the computed fields for the order insert.
type InsertOrderTxItem struct {
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	Status        constant.OrderStatus
	PaymentStatus constant.PaymentStatus
	Subtotal      float64
	ShippingCost  float64
	Total         float64
	Notes         string
	ExpiresAt     time.Time
}

type OrderQuery struct {
	Status        constant.OrderStatus   `json:"status,omitempty"`
	PaymentStatus constant.PaymentStatus `json:"payment_status,omitempty"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
}

type OrderListResponse struct {
	Data       []Order `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int64   `json:"total_pages"`
}
