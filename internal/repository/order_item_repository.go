package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	// 明細を1回のINSERTでまとめて作成する。採番されたIDはitemsに書き戻る。
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
