package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type CatalogUsecase struct {
	tx          repo.TransactionManager
	catalogRepo repo.CatalogRepository
	auditRepo   repo.AuditLogRepository
}

func NewCatalogUsecase(
	tx repo.TransactionManager,
	catalogRepo repo.CatalogRepository,
	auditRepo repo.AuditLogRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		tx:          tx,
		catalogRepo: catalogRepo,
		auditRepo:   auditRepo,
	}
}

// 公開カタログ（フラット）。入れ子への整形はフロント側。
func (u *CatalogUsecase) ListCatalog(ctx context.Context) ([]repo.CatalogRow, error) {
	rows, err := u.catalogRepo.ListAll(ctx)
	if err != nil {
		return []repo.CatalogRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// ディストリビューター自身のVariant一覧
func (u *CatalogUsecase) ListDistributorProducts(ctx context.Context, distributorID int64) ([]repo.CatalogRow, error) {
	if distributorID <= 0 {
		return []repo.CatalogRow{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	rows, err := u.catalogRepo.ListByDistributorID(ctx, distributorID)
	if err != nil {
		return []repo.CatalogRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

type AddProductInput struct {
	CategoryName   string
	ProductName    string
	SubProductName string
	Brand          string
	Unit           string
	Price          float64
	Stock          int64
	ImageURL       string
}

// Category > Product > SubProduct をfind-or-createで解決してVariantを作る。
// チェーン全体を1トランザクションで行う。
func (u *CatalogUsecase) AddProduct(ctx context.Context, actor Actor, in AddProductInput) (int64, error) {
	if actor.ID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	in.CategoryName = strings.TrimSpace(in.CategoryName)
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.SubProductName = strings.TrimSpace(in.SubProductName)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Unit = strings.TrimSpace(in.Unit)

	if in.CategoryName == "" || in.ProductName == "" || in.SubProductName == "" || in.Brand == "" || in.Unit == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "missing product data")
	}
	if in.Price < 0 || in.Stock < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid price/stock")
	}

	var variantID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		categoryID, err := r.Catalog().FindOrCreateCategory(ctx, in.CategoryName)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		productID, err := r.Catalog().FindOrCreateProduct(ctx, categoryID, in.ProductName, in.ImageURL)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		subProductID, err := r.Catalog().FindOrCreateSubProduct(ctx, productID, in.SubProductName)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		variantID, err = r.Variants().Create(ctx, model.Variant{
			SubProductID:  subProductID,
			DistributorID: actor.ID,
			Brand:         in.Brand,
			Unit:          in.Unit,
			Price:         in.Price,
			Stock:         in.Stock,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return variantID, nil
}

type UpdateVariantInput struct {
	Price *float64
	Stock *int64
}

// 価格・在庫の部分更新。nilのフィールドは保持。
// 自分のVariant以外は触れない（adminは除く）。
func (u *CatalogUsecase) UpdateVariant(ctx context.Context, actor Actor, variantID int64, in UpdateVariantInput) error {
	if actor.ID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if variantID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	patch := repo.VariantPatch{Price: in.Price, Stock: in.Stock}
	if patch.Empty() {
		return NewHTTPError(http.StatusBadRequest, "nothing to update")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		v, err := r.Variants().FindByID(ctx, variantID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if actor.Role != model.RoleAdmin && v.DistributorID != actor.ID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		if err := r.Variants().UpdatePartial(ctx, variantID, patch); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（変更前後の価格と在庫）
		beforeJSON := variantJSON(v.Price, v.Stock)
		afterPrice := v.Price
		if patch.Price != nil {
			afterPrice = *patch.Price
		}
		afterStock := v.Stock
		if patch.Stock != nil {
			afterStock = *patch.Stock
		}
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionUpdateVariant,
			ResourceType: model.AuditResourceVariant,
			ResourceID:   variantID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    variantJSON(afterPrice, afterStock),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func variantJSON(price float64, stock int64) string {
	return `{"price":` + strconv.FormatFloat(price, 'f', 2, 64) +
		`,"stock":` + strconv.FormatInt(stock, 10) + `}`
}
