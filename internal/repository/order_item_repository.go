package repository

import (
	"context"

	"app/internal/domain/model"
)

// 明細＋カタログ名の読み取り用DTO
type OrderItemDetail struct {
	ItemID            int64   `json:"item_id"`
	OrderID           int64   `json:"order_id"`
	VariantID         int64   `json:"variant_id"`
	Quantity          int64   `json:"quantity"`
	UnitPriceSnapshot float64 `json:"unit_price_snapshot"`
	Brand             string  `json:"brand"`
	Unit              string  `json:"unit"`
	SubProductName    string  `json:"subproduct_name"`
	ProductName       string  `json:"product_name"`
	CategoryName      string  `json:"category_name"`
	DistributorName   string  `json:"distributor_name"`
}

type OrderItemRepository interface {
	Create(ctx context.Context, item model.OrderItem) (int64, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	// カタログ名を付けた明細（表示用JOIN）
	ListDetailByOrderID(ctx context.Context, orderID int64) ([]OrderItemDetail, error)
}
