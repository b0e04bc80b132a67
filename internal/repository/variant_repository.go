package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// 対象行なしを統一
var ErrNotFound = errors.New("not found")

// 価格・在庫の部分更新。nilのフィールドは変更しない。
type VariantPatch struct {
	Price *float64
	Stock *int64
}

func (p VariantPatch) Empty() bool {
	return p.Price == nil && p.Stock == nil
}

// 在庫台帳。減算は必ずDecreaseStockIfEnough経由（0未満にしない）。
type VariantRepository interface {
	FindByID(ctx context.Context, variantID int64) (model.Variant, error)

	Create(ctx context.Context, v model.Variant) (int64, error)

	// 在庫が足りるときだけ減算（条件付きUPDATE）。falseは在庫不足か行なし。
	DecreaseStockIfEnough(ctx context.Context, variantID int64, qty int64) (bool, error)

	// 在庫戻し（DECLINEDなど）
	IncreaseStock(ctx context.Context, variantID int64, qty int64) error

	// 部分更新。指定のないフィールドは保持。
	UpdatePartial(ctx context.Context, variantID int64, patch VariantPatch) error
}
