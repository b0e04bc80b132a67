package repository

import (
	"context"
)

// カタログ1行（Variantに名前を付けたフラットな形）。
// カテゴリー別の入れ子への整形は表示側の仕事。
type CatalogRow struct {
	VariantID       int64   `json:"variant_id"`
	Brand           string  `json:"brand"`
	Unit            string  `json:"unit"`
	Price           float64 `json:"price"`
	Stock           int64   `json:"stock"`
	SubProductID    int64   `json:"subproduct_id"`
	SubProductName  string  `json:"subproduct_name"`
	ProductName     string  `json:"product_name"`
	CategoryName    string  `json:"category_name"`
	DistributorID   int64   `json:"distributor_id"`
	DistributorName string  `json:"distributor_name"`
}

// Category > Product > SubProduct の解決。追加時はfind-or-create。
type CatalogRepository interface {
	FindOrCreateCategory(ctx context.Context, name string) (int64, error)
	FindOrCreateProduct(ctx context.Context, categoryID int64, name string, imageURL string) (int64, error)
	FindOrCreateSubProduct(ctx context.Context, productID int64, name string) (int64, error)

	// 全カタログ（category, product, subproduct, brand順）
	ListAll(ctx context.Context) ([]CatalogRow, error)

	// ディストリビューター自身のVariant一覧
	ListByDistributorID(ctx context.Context, distributorID int64) ([]CatalogRow, error)
}
