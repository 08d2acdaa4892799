package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	// 明細は別途CreateBulkで入れるのでここでは触らない
	if err := r.db.WithContext(ctx).Omit("Items").Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

// orders ⟕ order_itemsの1行ぶん。明細側はLEFT JOINなのでNULLがありうる。
type orderJoinRow struct {
	OrderID     int64
	UserID      int64
	Total       decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ItemID      *int64
	ProductID   *int64
	Quantity    *int64
	PriceAtTime *decimal.Decimal
}

func (r *OrderGormRepository) ListWithItemsByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var rows []orderJoinRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(`orders.id AS order_id, orders.user_id, orders.total, orders.status,
			orders.created_at, orders.updated_at,
			order_items.id AS item_id, order_items.product_id,
			order_items.quantity, order_items.price_at_time`).
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ?", userID).
		Order("orders.id DESC, order_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return groupOrderRows(rows), nil
}

// groupOrderRowsはJOIN結果を注文単位にまとめる。
// 注文の並びは最初に現れた行の順を保つ。明細ゼロの注文も空リストで残す。
func groupOrderRows(rows []orderJoinRow) []model.Order {
	orders := make([]model.Order, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		pos, seen := index[row.OrderID]
		if !seen {
			pos = len(orders)
			index[row.OrderID] = pos
			orders = append(orders, model.Order{
				ID:        row.OrderID,
				UserID:    row.UserID,
				Total:     row.Total,
				Status:    model.OrderStatus(row.Status),
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
				Items:     []model.OrderItem{},
			})
		}

		if row.ItemID == nil {
			continue
		}
		orders[pos].Items = append(orders[pos].Items, model.OrderItem{
			ID:          *row.ItemID,
			OrderID:     row.OrderID,
			ProductID:   *row.ProductID,
			Quantity:    *row.Quantity,
			PriceAtTime: *row.PriceAtTime,
		})
	}

	return orders
}
