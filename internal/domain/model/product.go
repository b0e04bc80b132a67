package model

import "time"

type Product struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID int64     `gorm:"not null;index;uniqueIndex:uq_products_category_name" json:"category_id"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_products_category_name" json:"name"`
	ImageURL   string    `gorm:"type:varchar(512)" json:"image_url"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
