package validator

import (
	"testing"

	"app/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64 { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidateOrderItems_MissingItems(t *testing.T) {
	for _, items := range [][]RawItemRequest{nil, {}} {
		_, err := ValidateOrderItems(items)

		ae, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.KindValidation, ae.Kind)
		assert.Equal(t, "missing items", ae.Message)
	}
}

func TestValidateOrderItems_Defaults(t *testing.T) {
	//quantity未指定は1、price未指定は0になる
	out, err := ValidateOrderItems([]RawItemRequest{{ProductID: 3}})

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ProductID)
	assert.Equal(t, int64(1), out[0].Quantity)
	assert.True(t, out[0].PriceAtTime.IsZero())
}

func TestValidateOrderItems_RejectsWholeRequest(t *testing.T) {
	good := RawItemRequest{ProductID: 3, Quantity: i64(2), PriceAtTime: dec("9.50")}

	tests := []struct {
		name  string
		items []RawItemRequest
	}{
		{"zero quantity", []RawItemRequest{{ProductID: 3, Quantity: i64(0), PriceAtTime: dec("9.50")}}},
		{"negative quantity", []RawItemRequest{{ProductID: 3, Quantity: i64(-1)}}},
		{"negative price", []RawItemRequest{{ProductID: 3, PriceAtTime: dec("-0.01")}}},
		{"missing product_id", []RawItemRequest{{Quantity: i64(1)}}},
		//1行でも不正なら正常な行ごと全部拒否
		{"one bad among good", []RawItemRequest{good, {ProductID: 5, Quantity: i64(0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ValidateOrderItems(tt.items)

			assert.Nil(t, out)
			ae, ok := apperr.As(err)
			assert.True(t, ok)
			assert.Equal(t, apperr.KindValidation, ae.Kind)
			assert.Equal(t, "invalid item data", ae.Message)
		})
	}
}

func TestValidateOrderItems_ValidList(t *testing.T) {
	out, err := ValidateOrderItems([]RawItemRequest{
		{ProductID: 3, Quantity: i64(2), PriceAtTime: dec("9.50")},
		{ProductID: 5, Quantity: i64(1), PriceAtTime: dec("4.00")},
	})

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, int64(3), out[0].ProductID)
	assert.Equal(t, int64(2), out[0].Quantity)
	assert.True(t, out[0].PriceAtTime.Equal(decimal.RequireFromString("9.50")))
	assert.Equal(t, int64(5), out[1].ProductID)
	assert.Equal(t, int64(1), out[1].Quantity)
	assert.True(t, out[1].PriceAtTime.Equal(decimal.RequireFromString("4.00")))
}

func TestValidateOrderItems_ZeroPriceIsValid(t *testing.T) {
	//price 0は「無料」なので通す（負だけ拒否）
	out, err := ValidateOrderItems([]RawItemRequest{
		{ProductID: 3, Quantity: i64(1), PriceAtTime: dec("0")},
	})

	assert.NoError(t, err)
	assert.Len(t, out, 1)
}
