package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p model.Payment) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *PaymentGormRepository) FindByID(ctx context.Context, paymentID int64) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 店主側：自分の注文の支払い。partyはディストリビューター名。
func (r *PaymentGormRepository) ListByUserID(ctx context.Context, userID int64) ([]repo.PaymentDetail, error) {
	var rows []repo.PaymentDetail
	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Select(`payments.id AS payment_id,
			payments.order_id,
			payments.amount,
			payments.status,
			payments.method,
			payments.created_at,
			orders.status AS order_status,
			MIN(users.name) AS party_name`).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN variants ON variants.id = order_items.variant_id").
		Joins("JOIN users ON users.id = variants.distributor_id").
		Where("orders.user_id = ?", userID).
		Group("payments.id, payments.order_id, payments.amount, payments.status, payments.method, payments.created_at, orders.status").
		Order("payments.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.PaymentDetail{}, err
	}
	return rows, nil
}

// ディストリビューター側：自分のVariantを含む注文の支払い。partyは店主名。
func (r *PaymentGormRepository) ListByDistributorID(ctx context.Context, distributorID int64) ([]repo.PaymentDetail, error) {
	var rows []repo.PaymentDetail
	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Select(`payments.id AS payment_id,
			payments.order_id,
			payments.amount,
			payments.status,
			payments.method,
			payments.created_at,
			orders.status AS order_status,
			MIN(owners.name) AS party_name`).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Joins("JOIN users AS owners ON owners.id = orders.user_id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN variants ON variants.id = order_items.variant_id").
		Where("variants.distributor_id = ?", distributorID).
		Group("payments.id, payments.order_id, payments.amount, payments.status, payments.method, payments.created_at, orders.status").
		Order("payments.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.PaymentDetail{}, err
	}
	return rows, nil
}
