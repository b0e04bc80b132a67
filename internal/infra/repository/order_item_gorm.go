package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) Create(ctx context.Context, item model.OrderItem) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return 0, err
	}
	return item.ID, nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

// 表示用。カタログの名前を明細に付ける。
func (r *OrderItemGormRepository) ListDetailByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemDetail, error) {
	var rows []repo.OrderItemDetail
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select(`order_items.id AS item_id,
			order_items.order_id,
			order_items.variant_id,
			order_items.quantity,
			order_items.unit_price_snapshot,
			variants.brand,
			variants.unit,
			sub_products.name AS sub_product_name,
			products.name AS product_name,
			categories.name AS category_name,
			users.name AS distributor_name`).
		Joins("JOIN variants ON variants.id = order_items.variant_id").
		Joins("JOIN sub_products ON sub_products.id = variants.sub_product_id").
		Joins("JOIN products ON products.id = sub_products.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN users ON users.id = variants.distributor_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderItemDetail{}, err
	}
	return rows, nil
}
