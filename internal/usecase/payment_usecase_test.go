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

func newPaymentUsecaseForTest() (*usecase.PaymentUsecase, *TxManagerMock, *OrderRepoMock, *PaymentRepoMock, *AuditRepoMock) {
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	audit := &AuditRepoMock{}

	tm := &TxManagerMock{Repos: &TxReposMock{
		orders:   orders,
		payments: payments,
	}}

	uc := usecase.NewPaymentUsecase(tm, audit)
	return uc, tm, orders, payments, audit
}

// PAIDへ更新すると注文側のpayment_statusも同じトランザクションで揃う
func TestUpdatePaymentStatus_PaidMirrorsOrder(t *testing.T) {
	uc, tm, orders, payments, audit := newPaymentUsecaseForTest()
	ctx := context.Background()

	tm.On("WithinTx", ctx).Return(nil)
	payments.On("FindByID", ctx, int64(11)).
		Return(model.Payment{ID: 11, OrderID: 42, Status: model.PaymentStatusPending}, nil)
	payments.On("UpdateStatus", ctx, int64(11), model.PaymentStatusPaid).Return(nil)
	orders.On("UpdatePaymentState", ctx, int64(42), model.OrderPaymentPaid).Return(nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdatePaymentStatus && l.ResourceID == 11
	})).Return(nil)

	err := uc.UpdateStatus(ctx, distActor, 11, usecase.UpdatePaymentStatusInput{Status: "paid"})

	assert.NoError(t, err)
	payments.AssertExpectations(t)
	orders.AssertExpectations(t)
	//注文ステータス自体には触らない
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// 同じステータスへの更新は何もしない
func TestUpdatePaymentStatus_SameStatusIsNoop(t *testing.T) {
	uc, tm, orders, payments, audit := newPaymentUsecaseForTest()
	ctx := context.Background()

	tm.On("WithinTx", ctx).Return(nil)
	payments.On("FindByID", ctx, int64(11)).
		Return(model.Payment{ID: 11, OrderID: 42, Status: model.PaymentStatusPaid}, nil)

	err := uc.UpdateStatus(ctx, distActor, 11, usecase.UpdatePaymentStatusInput{Status: "PAID"})

	assert.NoError(t, err)
	payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "UpdatePaymentState", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdatePaymentStatus_InvalidValue(t *testing.T) {
	uc, tm, _, _, _ := newPaymentUsecaseForTest()

	err := uc.UpdateStatus(context.Background(), distActor, 11, usecase.UpdatePaymentStatusInput{Status: "REFUNDED"})

	assertHTTPStatus(t, err, http.StatusBadRequest)
	tm.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestUpdatePaymentStatus_NotFound(t *testing.T) {
	uc, tm, _, payments, _ := newPaymentUsecaseForTest()
	ctx := context.Background()

	tm.On("WithinTx", ctx).Return(nil)
	payments.On("FindByID", ctx, int64(99)).Return(model.Payment{}, repo.ErrNotFound)

	err := uc.UpdateStatus(ctx, distActor, 99, usecase.UpdatePaymentStatusInput{Status: "FAILED"})

	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestListMine_ReturnsDetails(t *testing.T) {
	uc, tm, _, payments, _ := newPaymentUsecaseForTest()
	ctx := context.Background()

	tm.On("WithinTx", ctx).Return(nil)
	payments.On("ListByUserID", ctx, int64(7)).
		Return([]repo.PaymentDetail{{PaymentID: 11, OrderID: 42, Amount: 10.00, Status: model.PaymentStatusPending}}, nil)

	outs, err := uc.ListMine(ctx, 7)

	assert.NoError(t, err)
	if assert.Len(t, outs, 1) {
		assert.Equal(t, int64(11), outs[0].PaymentID)
	}
}
