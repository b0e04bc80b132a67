package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// 支払い一覧の読み取り用DTO（相手の名前付き）
type PaymentDetail struct {
	PaymentID   int64               `json:"payment_id"`
	OrderID     int64               `json:"order_id"`
	Amount      float64             `json:"amount"`
	Status      model.PaymentStatus `json:"status"`
	Method      string              `json:"payment_method"`
	OrderStatus model.OrderStatus   `json:"order_status"`
	PartyName   string              `json:"party_name"`
	CreatedAt   time.Time           `json:"payment_date"`
}

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (int64, error)
	FindByID(ctx context.Context, paymentID int64) (model.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)
	UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) error

	// 店主側：自分の注文の支払い（party=ディストリビューター名）
	ListByUserID(ctx context.Context, userID int64) ([]PaymentDetail, error)

	// ディストリビューター側：自分のVariantを含む注文の支払い（party=店主名）
	ListByDistributorID(ctx context.Context, distributorID int64) ([]PaymentDetail, error)
}
