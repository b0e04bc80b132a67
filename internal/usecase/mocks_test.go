package usecase_test

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	payments   repo.PaymentRepository
	variants   repo.VariantRepository
	catalog    repo.CatalogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Payments() repo.PaymentRepository     { return r.payments }
func (r *TxReposMock) Variants() repo.VariantRepository     { return r.variants }
func (r *TxReposMock) Catalog() repo.CatalogRepository      { return r.catalog }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePaymentState(ctx context.Context, orderID int64, state model.OrderPaymentState) error {
	args := m.Called(ctx, orderID, state)
	return args.Error(0)
}

func (m *OrderRepoMock) SetDeletedAt(ctx context.Context, orderID int64, at *time.Time) error {
	args := m.Called(ctx, orderID, at)
	return args.Error(0)
}

func (m *OrderRepoMock) BelongsToDistributor(ctx context.Context, orderID int64, distributorID int64) (bool, error) {
	args := m.Called(ctx, orderID, distributorID)
	return args.Bool(0), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) Create(ctx context.Context, item model.OrderItem) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) ListDetailByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemDetail, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]repo.OrderItemDetail)
	return items, args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PaymentRepoMock) FindByID(ctx context.Context, paymentID int64) (model.Payment, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, paymentID, status)
	return args.Error(0)
}

func (m *PaymentRepoMock) ListByUserID(ctx context.Context, userID int64) ([]repo.PaymentDetail, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]repo.PaymentDetail)
	return items, args.Error(1)
}

func (m *PaymentRepoMock) ListByDistributorID(ctx context.Context, distributorID int64) ([]repo.PaymentDetail, error) {
	args := m.Called(ctx, distributorID)
	items, _ := args.Get(0).([]repo.PaymentDetail)
	return items, args.Error(1)
}

type VariantRepoMock struct{ mock.Mock }

func (m *VariantRepoMock) FindByID(ctx context.Context, variantID int64) (model.Variant, error) {
	args := m.Called(ctx, variantID)
	v, _ := args.Get(0).(model.Variant)
	return v, args.Error(1)
}

func (m *VariantRepoMock) Create(ctx context.Context, v model.Variant) (int64, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(int64), args.Error(1)
}

func (m *VariantRepoMock) DecreaseStockIfEnough(ctx context.Context, variantID int64, qty int64) (bool, error) {
	args := m.Called(ctx, variantID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *VariantRepoMock) IncreaseStock(ctx context.Context, variantID int64, qty int64) error {
	args := m.Called(ctx, variantID, qty)
	return args.Error(0)
}

func (m *VariantRepoMock) UpdatePartial(ctx context.Context, variantID int64, patch repo.VariantPatch) error {
	args := m.Called(ctx, variantID, patch)
	return args.Error(0)
}

type CatalogRepoMock struct{ mock.Mock }

func (m *CatalogRepoMock) FindOrCreateCategory(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CatalogRepoMock) FindOrCreateProduct(ctx context.Context, categoryID int64, name string, imageURL string) (int64, error) {
	args := m.Called(ctx, categoryID, name, imageURL)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CatalogRepoMock) FindOrCreateSubProduct(ctx context.Context, productID int64, name string) (int64, error) {
	args := m.Called(ctx, productID, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CatalogRepoMock) ListAll(ctx context.Context) ([]repo.CatalogRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.CatalogRow)
	return rows, args.Error(1)
}

func (m *CatalogRepoMock) ListByDistributorID(ctx context.Context, distributorID int64) ([]repo.CatalogRow, error) {
	args := m.Called(ctx, distributorID)
	rows, _ := args.Get(0).([]repo.CatalogRow)
	return rows, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Error(1)
}

// 支払いreference用の固定IDジェネレータ
type FixedIDGen struct{ ID string }

func (g *FixedIDGen) NewID() string { return g.ID }
