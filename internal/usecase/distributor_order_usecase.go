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

type DistributorOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

func NewDistributorOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *DistributorOrderUsecase {
	return &DistributorOrderUsecase{tx: tx, auditRepo: auditRepo}
}

// 自分のVariantを含む注文の一覧（active/deleted切替）
func (u *DistributorOrderUsecase) List(ctx context.Context, distributorID int64, includeDeleted bool) ([]OrderOutput, error) {
	if distributorID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx, repo.OrderListFilter{
			DistributorID:  &distributorID,
			IncludeDeleted: includeDeleted,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

type UpdateOrderStatusInput struct {
	Status string
}

// "out for delivery" のような表記も受ける
func parseOrderStatus(s string) (model.OrderStatus, bool) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	st := model.OrderStatus(normalized)
	return st, st.Valid()
}

// ステータス更新。遷移グラフ外のエッジは拒否する。
// DELIVERED: 支払いをPAIDへ / DECLINED: 支払いをFAILEDにして在庫を戻す。
func (u *DistributorOrderUsecase) UpdateStatus(ctx context.Context, actor Actor, orderID int64, in UpdateOrderStatusInput) error {
	if actor.ID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus, ok := parseOrderStatus(in.Status)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.checkOwnership(ctx, r, actor, orderID); err != nil {
			return err
		}

		//すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}
		if !o.Status.CanTransitionTo(newStatus) {
			return NewHTTPError(http.StatusConflict, "invalid transition")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		switch newStatus {
		case model.OrderStatusDelivered:
			//配達完了で支払いをPAIDに
			if err := u.setPaymentStatus(ctx, r, orderID, model.PaymentStatusPaid); err != nil {
				return err
			}

		case model.OrderStatusDeclined:
			//拒否で支払いをFAILEDにして在庫を戻す
			if err := u.setPaymentStatus(ctx, r, orderID, model.PaymentStatusFailed); err != nil {
				return err
			}
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			for _, it := range items {
				if err := r.Variants().IncreaseStock(ctx, it.VariantID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		//監査ログ
		beforeJSON := `{"status":"` + string(o.Status) + `"}`
		afterJSON := `{"status":"` + string(newStatus) + `"}`
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// ソフト削除。削除済みに対しては何もしない（冪等）。
// ステータス・支払い・在庫には触らない。
func (u *DistributorOrderUsecase) SoftDelete(ctx context.Context, actor Actor, orderID int64) error {
	if actor.ID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.checkOwnership(ctx, r, actor, orderID); err != nil {
			return err
		}

		if o.DeletedAt != nil {
			return nil
		}

		now := time.Now()
		if err := r.Orders().SetDeletedAt(ctx, orderID, &now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			CreatedAt:    now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// ソフト削除の取り消し。ステータス・支払いはそのまま。
func (u *DistributorOrderUsecase) Restore(ctx context.Context, actor Actor, orderID int64) error {
	if actor.ID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.checkOwnership(ctx, r, actor, orderID); err != nil {
			return err
		}

		if o.DeletedAt == nil {
			return nil
		}

		if err := r.Orders().SetDeletedAt(ctx, orderID, nil); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionRestoreOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// adminは全注文、distributorは自分のVariantを含む注文だけ
func (u *DistributorOrderUsecase) checkOwnership(ctx context.Context, r repo.TxRepos, actor Actor, orderID int64) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	ok, err := r.Orders().BelongsToDistributor(ctx, orderID, actor.ID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

// 支払いと注文側ミラーを同時に更新
func (u *DistributorOrderUsecase) setPaymentStatus(ctx context.Context, r repo.TxRepos, orderID int64, status model.PaymentStatus) error {
	p, err := r.Payments().FindByOrderID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "payment not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.Payments().UpdateStatus(ctx, p.ID, status); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.Orders().UpdatePaymentState(ctx, orderID, status.OrderPaymentState()); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
