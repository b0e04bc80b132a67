package model

import "time"

// 購入単位のSKU。在庫はここが持つ。
// stockは0未満にならない（減算は条件付きUPDATEのみ）。
type Variant struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SubProductID  int64     `gorm:"not null;index" json:"subproduct_id"`
	DistributorID int64     `gorm:"not null;index" json:"distributor_id"`
	Brand         string    `gorm:"type:varchar(255);not null" json:"brand"`
	Unit          string    `gorm:"type:varchar(50);not null" json:"unit"`
	Price         float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock         int64     `gorm:"not null;check:stock >= 0" json:"stock"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
