package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

// 注文の支払い状態ミラーへの変換
func (s PaymentStatus) OrderPaymentState() OrderPaymentState {
	switch s {
	case PaymentStatusPaid:
		return OrderPaymentPaid
	case PaymentStatusFailed:
		return OrderPaymentFailed
	}
	return OrderPaymentUnpaid
}

// 注文1件につき支払い1件。Statusだけが可変。
type Payment struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64         `gorm:"not null;uniqueIndex" json:"order_id"`
	Amount    float64       `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status    PaymentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Method    string        `gorm:"type:varchar(30);not null" json:"payment_method"`
	Reference string        `gorm:"type:varchar(64);not null;uniqueIndex" json:"reference"`
	CreatedAt time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
