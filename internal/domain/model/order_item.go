package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文の明細行。
// price_at_timeは注文時点の単価スナップショット。カタログ側の価格が
// 後で変わっても再計算しない。
type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;index" json:"order_id"`
	ProductID   int64           `gorm:"not null;index" json:"product_id"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	PriceAtTime decimal.Decimal `gorm:"type:numeric(12,2);not null;column:price_at_time" json:"price_at_time"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`

	// product_idのFK（商品は参照だけ。参照中の商品削除はRESTRICT）
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
}
