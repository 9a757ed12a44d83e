package model

import "github.com/shopspring/decimal"

// カートの明細
// 追加時点の価格を必ず保存。後から商品の価格が変わっても明細は変わらない。
type CartItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	CartID    string          `gorm:"type:uuid;not null;index" json:"-"`
	ProductID string          `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}
