package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// 一覧の絞り込み。IncludeDeletedはソフト削除済みだけを返す切替で、
// activeとdeletedは重ならない2つのビュー。
type OrderListFilter struct {
	UserID         *int64
	DistributorID  *int64
	IncludeDeleted bool
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	// created_at降順
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// Paymentの状態を注文側ミラーへ反映
	UpdatePaymentState(ctx context.Context, orderID int64, state model.OrderPaymentState) error

	// deleted_atを設定/クリア
	SetDeletedAt(ctx context.Context, orderID int64, at *time.Time) error

	// 注文の明細に該当ディストリビューターのVariantが含まれるか
	BelongsToDistributor(ctx context.Context, orderID int64, distributorID int64) (bool, error)
}
