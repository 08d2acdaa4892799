package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/apperr"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	log    *zap.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, log *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, log: log}
}

type OrderItemOutput struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Status    string            `json:"status"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderItemOutput `json:"order_items"`
}

// PlaceOrderは注文作成の本体。
// 入力検証 → 1トランザクションでヘッダ＋明細をINSERT。
// 途中で何か失敗したら全部ロールバックされる（部分的な注文は残らない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, items []validator.RawItemRequest) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, apperr.New(apperr.KindUnauthorized, "unauthorized")
	}

	// 検証はDBに触る前に済ませる
	validated, err := validator.ValidateOrderItems(items)
	if err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(validated))
		total := decimal.Zero

		for _, it := range validated {
			// 参照先の商品が存在して公開中か
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.New(apperr.KindValidation, "unknown product")
			}
			if err != nil {
				return err
			}
			if !p.IsActive {
				return apperr.New(apperr.KindValidation, "unknown product")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				PriceAtTime: it.PriceAtTime,
			})

			// 金額は10進のまま足す（浮動小数点は使わない）
			total = total.Add(it.PriceAtTime.Mul(decimal.NewFromInt(it.Quantity)))
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:    userID,
			Total:     total,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		//明細一括作成（採番IDはorderItemsに書き戻る）
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return err
		}

		created := model.Order{
			ID:        orderID,
			UserID:    userID,
			Total:     total,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		if _, ok := apperr.As(err); ok {
			return OrderOutput{}, err
		}
		// インフラ起因。原因はログに残し、呼び出し側には要約だけ返す。
		u.log.Error("order creation failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return OrderOutput{}, apperr.Wrap(apperr.KindCreation, "order creation failed", err)
	}

	return out, nil
}

// ListMyOrdersはユーザーの注文を明細込みで新しい順に返す。
// 注文ゼロのユーザーには空リスト（エラーではない）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, apperr.New(apperr.KindUnauthorized, "unauthorized")
	}

	orders, err := u.orders.ListWithItemsByUserID(ctx, userID)
	if err != nil {
		u.log.Error("order listing failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, apperr.Wrap(apperr.KindFetch, "order listing failed", err)
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o, o.Items))
	}
	return outs, nil
}

// GetMyOrderは自分の注文1件の詳細。
// 他人の注文は「存在しない扱い」にする。
func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, apperr.New(apperr.KindUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, apperr.New(apperr.KindValidation, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "not found")
		}
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return apperr.New(apperr.KindNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		if _, ok := apperr.As(err); ok {
			return OrderOutput{}, err
		}
		u.log.Error("order fetch failed",
			zap.Int64("user_id", userID),
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return OrderOutput{}, apperr.Wrap(apperr.KindFetch, "order fetch failed", err)
	}

	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		Items:     outItems,
	}
}
