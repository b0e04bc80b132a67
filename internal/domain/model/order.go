package model

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusAccepted       OrderStatus = "ACCEPTED"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusDeclined       OrderStatus = "DECLINED"
)

// 有効なステータス値か
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusShipped,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusDeclined:
		return true
	}
	return false
}

// 終端（DELIVERED / DECLINED）からは遷移できない
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusDeclined
}

// 許可される遷移:
//
//	PENDING  -> ACCEPTED | DECLINED
//	ACCEPTED -> SHIPPED -> OUT_FOR_DELIVERY -> DELIVERED
//	終端以外  -> DECLINED
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderStatusDeclined {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusAccepted
	case OrderStatusAccepted:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusOutForDelivery
	case OrderStatusOutForDelivery:
		return next == OrderStatusDelivered
	}
	return false
}

// 注文側に持つ支払い状態のミラー（Paymentが正）
type OrderPaymentState string

const (
	OrderPaymentUnpaid OrderPaymentState = "UNPAID"
	OrderPaymentPaid   OrderPaymentState = "PAID"
	OrderPaymentFailed OrderPaymentState = "FAILED"
)

// TotalAmountは作成時に確定して以降変更しない。
// DeletedAtはソフト削除（可視性の切替）で、ステータスとは独立。
type Order struct {
	ID            int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64             `gorm:"not null;index" json:"user_id"`
	Status        OrderStatus       `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus OrderPaymentState `gorm:"type:varchar(20);not null" json:"payment_status"`
	TotalAmount   float64           `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	CreatedAt     time.Time         `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     *time.Time        `gorm:"index" json:"deleted_at,omitempty"`
}
