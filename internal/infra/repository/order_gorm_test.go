package repository

import (
	"testing"
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rowPtr[T any](v T) *T { return &v }

func TestGroupOrderRows(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := []orderJoinRow{
		//注文2（明細2件）が先に来る（id降順の想定）
		{
			OrderID: 2, UserID: 7, Total: decimal.RequireFromString("23.00"),
			Status: "pending", CreatedAt: now,
			ItemID: rowPtr(int64(10)), ProductID: rowPtr(int64(3)),
			Quantity: rowPtr(int64(2)), PriceAtTime: rowPtr(decimal.RequireFromString("9.50")),
		},
		{
			OrderID: 2, UserID: 7, Total: decimal.RequireFromString("23.00"),
			Status: "pending", CreatedAt: now,
			ItemID: rowPtr(int64(11)), ProductID: rowPtr(int64(5)),
			Quantity: rowPtr(int64(1)), PriceAtTime: rowPtr(decimal.RequireFromString("4.00")),
		},
		//注文1は明細ゼロ（LEFT JOINでNULL行）
		{
			OrderID: 1, UserID: 7, Total: decimal.Zero,
			Status: "pending", CreatedAt: now,
		},
	}

	orders := groupOrderRows(rows)

	assert.Len(t, orders, 2)

	//行の出現順を保つ
	assert.Equal(t, int64(2), orders[0].ID)
	assert.Equal(t, int64(1), orders[1].ID)

	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, int64(10), orders[0].Items[0].ID)
	assert.Equal(t, int64(11), orders[0].Items[1].ID)
	assert.True(t, orders[0].Items[0].PriceAtTime.Equal(decimal.RequireFromString("9.50")))
	assert.Equal(t, model.OrderStatusPending, orders[0].Status)

	//明細ゼロの注文は空リストで残す（落とさない）
	assert.NotNil(t, orders[1].Items)
	assert.Len(t, orders[1].Items, 0)
}

func TestGroupOrderRows_Empty(t *testing.T) {
	orders := groupOrderRows(nil)

	assert.NotNil(t, orders)
	assert.Len(t, orders, 0)
}
