package validator

import (
	"app/internal/apperr"

	"github.com/shopspring/decimal"
)

// 注文リクエストの生の1行。クライアント入力なので信用しない。
// quantityとprice_at_timeは省略可（ポインタで「未指定」を表す）。
type RawItemRequest struct {
	ProductID   int64            `json:"product_id"`
	Quantity    *int64           `json:"quantity"`
	PriceAtTime *decimal.Decimal `json:"price_at_time"`
}

// 検証済みの1行。quantity > 0 かつ price_at_time >= 0 を保証する。
type ValidatedItem struct {
	ProductID   int64
	Quantity    int64
	PriceAtTime decimal.Decimal
}

// ValidateOrderItemsは生のリクエスト行を正規化して検証する。
// 副作用なしの純粋関数。
//
// ルール:
//   - リストが無い/空 → "missing items"
//   - product_idは必須（0は未指定扱い）
//   - quantity未指定は1、price_at_time未指定は0で補完
//   - quantity > 0 かつ price_at_time >= 0 の行だけ残す
//   - 1行でも落ちたら全体を"invalid item data"で拒否（部分受理はしない）
func ValidateOrderItems(items []RawItemRequest) ([]ValidatedItem, error) {
	if len(items) == 0 {
		return nil, apperr.New(apperr.KindValidation, "missing items")
	}

	validated := make([]ValidatedItem, 0, len(items))
	for _, raw := range items {
		if raw.ProductID <= 0 {
			continue
		}

		qty := int64(1)
		if raw.Quantity != nil {
			qty = *raw.Quantity
		}

		price := decimal.Zero
		if raw.PriceAtTime != nil {
			price = *raw.PriceAtTime
		}

		if qty <= 0 || price.IsNegative() {
			continue
		}

		validated = append(validated, ValidatedItem{
			ProductID:   raw.ProductID,
			Quantity:    qty,
			PriceAtTime: price,
		})
	}

	// 全行生き残らなければ全体拒否
	if len(validated) != len(items) {
		return nil, apperr.New(apperr.KindValidation, "invalid item data")
	}

	return validated, nil
}
