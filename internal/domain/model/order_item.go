package model

import "github.com/shopspring/decimal"

// 注文時点のカート明細のスナップショット
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string          `gorm:"type:uuid;not null;index" json:"-"`
	ProductID string          `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}
