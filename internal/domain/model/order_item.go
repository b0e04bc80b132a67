package model

import "time"

// 注文時点のスナップショット。Variantの価格が後で変わっても影響しない。
type OrderItem struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64     `gorm:"not null;index" json:"order_id"`
	VariantID         int64     `gorm:"not null;index" json:"variant_id"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot float64   `gorm:"type:numeric(10,2);not null" json:"unit_price_snapshot"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
