package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

type Order struct {
	ID                string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	PaymentStatus     PaymentStatus   `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	OrderStatus       OrderStatus     `gorm:"type:varchar(20);not null" json:"order_status"`
	RazorpayOrderID   string          `gorm:"type:varchar(255);index" json:"razorpay_order_id"`
	RazorpayPaymentID string          `gorm:"type:varchar(255)" json:"razorpay_payment_id"`
	ShippingAddress   string          `gorm:"type:text;not null" json:"shipping_address"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
