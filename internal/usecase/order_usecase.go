package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// UUID等のIDを作る約束（支払いのreference用）
type IDGenerator interface {
	NewID() string
}

// 操作主体。middlewareが解決したidとロール。
type Actor struct {
	ID   int64
	Role model.Role
}

type OrderUsecase struct {
	tx     repo.TransactionManager
	payRef IDGenerator
}

func NewOrderUsecase(tx repo.TransactionManager, payRef IDGenerator) *OrderUsecase {
	return &OrderUsecase{tx: tx, payRef: payRef}
}

type PlaceOrderInput struct {
	BuyerID   int64
	VariantID int64
	Quantity  int64
}

type PlaceOrderOutput struct {
	OrderID     int64   `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

type OrderItemOutput struct {
	VariantID int64   `json:"variant_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	TotalAmount   float64           `json:"total_amount"`
	CreatedAt     time.Time         `json:"created_at"`
	DeletedAt     *time.Time        `json:"deleted_at,omitempty"`
	Items         []OrderItemOutput `json:"items"`
}

const defaultPaymentMethod = "UPI"

// 注文確定。注文・明細・支払い・在庫減算の4writeを1トランザクションで行う。
// どれか1つでも失敗したら全部なかったことにする。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, actor Actor, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if actor.ID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.BuyerID <= 0 || in.VariantID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	if in.Quantity <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//他人のアカウントでは注文できない
	if in.BuyerID != actor.ID {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusForbidden, "not your account")
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//単価の解決
		v, err := r.Variants().FindByID(ctx, in.VariantID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "variant not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫減算（足りないならfalse）。チェックと減算は同一UPDATEで、
		//同時注文でも合計が在庫を超えることはない。
		ok, err := r.Variants().DecreaseStockIfEnough(ctx, in.VariantID, in.Quantity)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			return NewHTTPError(http.StatusConflict, "not enough stock available")
		}

		total := v.Price * float64(in.Quantity)
		now := time.Now()

		//注文ヘッダ
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:        in.BuyerID,
			Status:        model.OrderStatusPending,
			PaymentStatus: model.OrderPaymentUnpaid,
			TotalAmount:   total,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細（単価スナップショット）
		if _, err := r.OrderItems().Create(ctx, model.OrderItem{
			OrderID:           orderID,
			VariantID:         in.VariantID,
			Quantity:          in.Quantity,
			UnitPriceSnapshot: v.Price,
			CreatedAt:         now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//支払いプレースホルダ
		if _, err := r.Payments().Create(ctx, model.Payment{
			OrderID:   orderID,
			Amount:    total,
			Status:    model.PaymentStatusPending,
			Method:    defaultPaymentMethod,
			Reference: u.payRef.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = PlaceOrderOutput{OrderID: orderID, TotalAmount: total}
		return nil
	})

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

// 自分の注文一覧。includeDeletedでソフト削除済みビューに切り替える。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, includeDeleted bool) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx, repo.OrderListFilter{
			UserID:         &userID,
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

// 注文明細＋カタログ名。店主は自分の注文だけ、
// ディストリビューターは自分のVariantを含む注文だけ見える。
func (u *OrderUsecase) GetOrderItems(ctx context.Context, actor Actor, orderID int64) ([]repo.OrderItemDetail, error) {
	if actor.ID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var details []repo.OrderItemDetail

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		switch actor.Role {
		case model.RoleAdmin:
			// 制限なし
		case model.RoleDistributor:
			ok, err := r.Orders().BelongsToDistributor(ctx, orderID, actor.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				//他人の注文は「存在しない扱い」にする
				return NewHTTPError(http.StatusNotFound, "not found")
			}
		default:
			if o.UserID != actor.ID {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
		}

		details, err = r.OrderItems().ListDetailByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return details, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPriceSnapshot,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		TotalAmount:   o.TotalAmount,
		CreatedAt:     o.CreatedAt,
		DeletedAt:     o.DeletedAt,
		Items:         outItems,
	}
}
