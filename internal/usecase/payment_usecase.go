package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type PaymentUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

func NewPaymentUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, auditRepo: auditRepo}
}

// 店主側の支払い一覧
func (u *PaymentUsecase) ListMine(ctx context.Context, userID int64) ([]repo.PaymentDetail, error) {
	if userID <= 0 {
		return []repo.PaymentDetail{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []repo.PaymentDetail
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		outs, err = r.Payments().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return []repo.PaymentDetail{}, err
	}
	return outs, nil
}

// ディストリビューター側の支払い一覧
func (u *PaymentUsecase) ListForDistributor(ctx context.Context, distributorID int64) ([]repo.PaymentDetail, error) {
	if distributorID <= 0 {
		return []repo.PaymentDetail{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []repo.PaymentDetail
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		outs, err = r.Payments().ListByDistributorID(ctx, distributorID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return []repo.PaymentDetail{}, err
	}
	return outs, nil
}

type UpdatePaymentStatusInput struct {
	Status string
}

// 支払いステータスの更新。PENDING/PAID/FAILED以外は拒否。
// 注文側のpayment_statusミラーも同じトランザクションで合わせる。
func (u *PaymentUsecase) UpdateStatus(ctx context.Context, actor Actor, paymentID int64, in UpdatePaymentStatusInput) error {
	if actor.ID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.PaymentStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if !newStatus.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if p.Status == newStatus {
			return nil
		}

		if err := r.Payments().UpdateStatus(ctx, paymentID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().UpdatePaymentState(ctx, p.OrderID, newStatus.OrderPaymentState()); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		beforeJSON := `{"status":"` + string(p.Status) + `"}`
		afterJSON := `{"status":"` + string(newStatus) + `"}`
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionUpdatePaymentStatus,
			ResourceType: model.AuditResourcePayment,
			ResourceID:   paymentID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
