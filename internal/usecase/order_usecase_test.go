package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderUsecaseForTest() (*usecase.OrderUsecase, *TxManagerMock, *OrderRepoMock, *OrderItemRepoMock, *PaymentRepoMock, *VariantRepoMock) {
	orders := &OrderRepoMock{}
	orderItems := &OrderItemRepoMock{}
	payments := &PaymentRepoMock{}
	variants := &VariantRepoMock{}

	tm := &TxManagerMock{Repos: &TxReposMock{
		orders:     orders,
		orderItems: orderItems,
		payments:   payments,
		variants:   variants,
	}}

	uc := usecase.NewOrderUsecase(tm, &FixedIDGen{ID: "ref-0001"})
	return uc, tm, orders, orderItems, payments, variants
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, want, he.Status)
	}
}

// 在庫10・単価2.50で4個注文 → 合計10.00、4writeが全部走る
func TestPlaceOrder_Success(t *testing.T) {
	uc, tm, orders, orderItems, payments, variants := newOrderUsecaseForTest()
	ctx := context.Background()

	tm.On("WithinTx", ctx).Return(nil)

	variants.On("FindByID", ctx, int64(3)).
		Return(model.Variant{ID: 3, DistributorID: 9, Price: 2.50, Stock: 10}, nil)
	variants.On("DecreaseStockIfEnough", ctx, int64(3), int64(4)).Return(true, nil)

	orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 7 &&
			o.Status == model.OrderStatusPending &&
			o.PaymentStatus == model.OrderPaymentUnpaid &&
			o.TotalAmount == 10.00
	})).Return(int64(42), nil)

	orderItems.On("Create", ctx, mock.MatchedBy(func(it model.OrderItem) bool {
		return it.OrderID == 42 &&
			it.VariantID == 3 &&
			it.Quantity == 4 &&
			it.UnitPriceSnapshot == 2.50
	})).Return(int64(1), nil)

	payments.On("Create", ctx, mock.MatchedBy(func(p model.Payment) bool {
		return p.OrderID == 42 &&
			p.Amount == 10.00 &&
			p.Status == model.PaymentStatusPending &&
			p.Method == "UPI" &&
			p.Reference == "ref-0001"
	})).Return(int64(11), nil)

	out, err := uc.PlaceOrder(ctx, usecase.Actor{ID: 7, Role: model.RoleShopOwner}, usecase.PlaceOrderInput{
		BuyerID:   7,
		VariantID: 3,
		Quantity:  4,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.OrderID)
	assert.Equal(t, 10.00, out.TotalAmount)

	orders.AssertExpectations(t)
	orderItems.AssertExpectations(t)
	payments.AssertExpectations(t)
	variants.AssertExpectations(t)
}

// 在庫2で5個 → 409、注文も明細も支払いも作られない
func TestPlaceOrder_InsufficientStock(t *testing.T) {
	uc, tm, orders, orderItems, payments, variants := newOrderUsecaseForTest()
	ctx := context.Background()

	tm.On("WithinTx", ctx).Return(nil)

	variants.On("FindByID", ctx, int64(3)).
		Return(model.Variant{ID: 3, Price: 2.50, Stock: 2}, nil)
	variants.On("DecreaseStockIfEnough", ctx, int64(3), int64(5)).Return(false, nil)

	_, err := uc.PlaceOrder(ctx, usecase.Actor{ID: 7, Role: model.RoleShopOwner}, usecase.PlaceOrderInput{
		BuyerID:   7,
		VariantID: 3,
		Quantity:  5,
	})

	assertHTTPStatus(t, err, http.StatusConflict)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orderItems.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_VariantNotFound(t *testing.T) {
	uc, tm, orders, _, _, variants := newOrderUsecaseForTest()
	ctx := context.Background()

	tm.On("WithinTx", ctx).Return(nil)
	variants.On("FindByID", ctx, int64(99)).Return(model.Variant{}, repo.ErrNotFound)

	_, err := uc.PlaceOrder(ctx, usecase.Actor{ID: 7, Role: model.RoleShopOwner}, usecase.PlaceOrderInput{
		BuyerID:   7,
		VariantID: 99,
		Quantity:  1,
	})

	assertHTTPStatus(t, err, http.StatusNotFound)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 他人のアカウントでは注文できない。トランザクションにも入らない。
func TestPlaceOrder_NotYourAccount(t *testing.T) {
	uc, tm, _, _, _, _ := newOrderUsecaseForTest()

	_, err := uc.PlaceOrder(context.Background(), usecase.Actor{ID: 7, Role: model.RoleShopOwner}, usecase.PlaceOrderInput{
		BuyerID:   8,
		VariantID: 3,
		Quantity:  1,
	})

	assertHTTPStatus(t, err, http.StatusForbidden)
	tm.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_InvalidQuantity(t *testing.T) {
	uc, tm, _, _, _, _ := newOrderUsecaseForTest()

	_, err := uc.PlaceOrder(context.Background(), usecase.Actor{ID: 7, Role: model.RoleShopOwner}, usecase.PlaceOrderInput{
		BuyerID:   7,
		VariantID: 3,
		Quantity:  0,
	})

	assertHTTPStatus(t, err, http.StatusBadRequest)
	tm.AssertNotCalled(t, "WithinTx", mock.Anything)
}

// active/deletedは別ビューとしてfilterに渡る
func TestListMyOrders_DeletedPartition(t *testing.T) {
	uc, tm, orders, orderItems, _, _ := newOrderUsecaseForTest()
	ctx := context.Background()

	tm.On("WithinTx", ctx).Return(nil)

	userID := int64(7)
	orders.On("List", ctx, mock.MatchedBy(func(f repo.OrderListFilter) bool {
		return f.UserID != nil && *f.UserID == userID && !f.IncludeDeleted
	})).Return([]model.Order{{ID: 1, UserID: 7, Status: model.OrderStatusPending}}, nil).Once()
	orderItems.On("ListByOrderID", ctx, int64(1)).Return([]model.OrderItem{}, nil).Once()

	active, err := uc.ListMyOrders(ctx, userID, false)
	assert.NoError(t, err)
	assert.Len(t, active, 1)

	orders.On("List", ctx, mock.MatchedBy(func(f repo.OrderListFilter) bool {
		return f.UserID != nil && *f.UserID == userID && f.IncludeDeleted
	})).Return([]model.Order{}, nil).Once()

	deleted, err := uc.ListMyOrders(ctx, userID, true)
	assert.NoError(t, err)
	assert.Len(t, deleted, 0)

	orders.AssertExpectations(t)
}

// 店主は他人の注文明細を見られない（存在しない扱い）
func TestGetOrderItems_OtherOwnersOrderHidden(t *testing.T) {
	uc, tm, orders, orderItems, _, _ := newOrderUsecaseForTest()
	ctx := context.Background()

	tm.On("WithinTx", ctx).Return(nil)
	orders.On("FindByID", ctx, int64(42)).
		Return(model.Order{ID: 42, UserID: 8}, nil)

	_, err := uc.GetOrderItems(ctx, usecase.Actor{ID: 7, Role: model.RoleShopOwner}, 42)

	assertHTTPStatus(t, err, http.StatusNotFound)
	orderItems.AssertNotCalled(t, "ListDetailByOrderID", mock.Anything, mock.Anything)
}
