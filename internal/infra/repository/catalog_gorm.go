package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// 名前一致（大文字小文字無視）で探してなければ作る
func (r *CatalogGormRepository) FindOrCreateCategory(ctx context.Context, name string) (int64, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&c).Error
	if err == nil {
		return c.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	c = model.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *CatalogGormRepository) FindOrCreateProduct(ctx context.Context, categoryID int64, name string, imageURL string) (int64, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND name = ?", categoryID, name).
		First(&p).Error
	if err == nil {
		// 画像だけ後から差し替えられる
		if imageURL != "" && imageURL != p.ImageURL {
			if err := r.db.WithContext(ctx).Model(&model.Product{}).
				Where("id = ?", p.ID).
				Update("image_url", imageURL).Error; err != nil {
				return 0, err
			}
		}
		return p.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	p = model.Product{CategoryID: categoryID, Name: name, ImageURL: imageURL}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *CatalogGormRepository) FindOrCreateSubProduct(ctx context.Context, productID int64, name string) (int64, error) {
	var sp model.SubProduct
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND name = ?", productID, name).
		First(&sp).Error
	if err == nil {
		return sp.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	sp = model.SubProduct{ProductID: productID, Name: name}
	if err := r.db.WithContext(ctx).Create(&sp).Error; err != nil {
		return 0, err
	}
	return sp.ID, nil
}

func (r *CatalogGormRepository) ListAll(ctx context.Context) ([]repo.CatalogRow, error) {
	return r.list(ctx, nil)
}

func (r *CatalogGormRepository) ListByDistributorID(ctx context.Context, distributorID int64) ([]repo.CatalogRow, error) {
	return r.list(ctx, &distributorID)
}

func (r *CatalogGormRepository) list(ctx context.Context, distributorID *int64) ([]repo.CatalogRow, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Variant{}).
		Select(`variants.id AS variant_id,
			variants.brand,
			variants.unit,
			variants.price,
			variants.stock,
			sub_products.id AS sub_product_id,
			sub_products.name AS sub_product_name,
			products.name AS product_name,
			categories.name AS category_name,
			variants.distributor_id,
			users.name AS distributor_name`).
		Joins("JOIN sub_products ON sub_products.id = variants.sub_product_id").
		Joins("JOIN products ON products.id = sub_products.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN users ON users.id = variants.distributor_id")

	if distributorID != nil {
		q = q.Where("variants.distributor_id = ?", *distributorID)
	}

	var rows []repo.CatalogRow
	err := q.Order("categories.name, products.name, sub_products.name, variants.brand").
		Scan(&rows).Error
	if err != nil {
		return []repo.CatalogRow{}, err
	}
	return rows, nil
}
