package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

// active/deletedは重ならない2ビュー。created_at降順。
func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})

	if f.UserID != nil {
		q = q.Where("orders.user_id = ?", *f.UserID)
	}

	// ディストリビューターは明細→Variant経由で絞る
	if f.DistributorID != nil {
		q = q.
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Joins("JOIN variants ON variants.id = order_items.variant_id").
			Where("variants.distributor_id = ?", *f.DistributorID).
			Distinct()
	}

	if f.IncludeDeleted {
		q = q.Where("orders.deleted_at IS NOT NULL")
	} else {
		q = q.Where("orders.deleted_at IS NULL")
	}

	var items []model.Order
	if err := q.Order("orders.created_at desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) UpdatePaymentState(ctx context.Context, orderID int64, state model.OrderPaymentState) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", state)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// at=nilでrestore
func (r *OrderGormRepository) SetDeletedAt(ctx context.Context, orderID int64, at *time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("deleted_at", at)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) BelongsToDistributor(ctx context.Context, orderID int64, distributorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Joins("JOIN variants ON variants.id = order_items.variant_id").
		Where("order_items.order_id = ? AND variants.distributor_id = ?", orderID, distributorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
