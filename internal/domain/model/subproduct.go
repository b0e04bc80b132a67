package model

import "time"

type SubProduct struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index;uniqueIndex:uq_subproducts_product_name" json:"product_id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_subproducts_product_name" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
