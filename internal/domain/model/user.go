package model

import "time"

type Role string

const (
	RoleShopOwner   Role = "shop_owner"
	RoleDistributor Role = "distributor"
	RoleAdmin       Role = "admin"
)

// 有効なロールか
func (r Role) Valid() bool {
	switch r {
	case RoleShopOwner, RoleDistributor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	ContactNo    string    `gorm:"type:varchar(30)" json:"contact_no"`
	Address      string    `gorm:"type:varchar(255)" json:"address"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
