package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	// ユーザーの注文を明細込みで取得する。
	// orders ⟕ order_itemsの1クエリで取り、注文ごとにまとめて返す。
	// 明細ゼロの注文（本来作られないが、壊れたデータでも落とさない）は
	// 空の明細リストで返る。
	ListWithItemsByUserID(ctx context.Context, userID int64) ([]model.Order, error)
}
