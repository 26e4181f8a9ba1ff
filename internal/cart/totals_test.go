package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

func item(price, rent int64, qty int) models.CartItem {
	return models.CartItem{
		Price:    decimal.NewFromInt(price),
		Rent:     decimal.NewFromInt(rent),
		Quantity: qty,
	}
}

func TestAggregateEmptySnapshot(t *testing.T) {
	totals := Aggregate(nil)

	assert.True(t, totals.TotalBuyAmount.IsZero())
	assert.True(t, totals.TotalRentAmount.IsZero())
	assert.True(t, totals.DepositAmount.IsZero())
	assert.True(t, totals.RentPayable().IsZero())
}

func TestAggregateBuyAmount(t *testing.T) {
	items := []models.CartItem{
		item(399, 0, 1),
		item(199, 0, 3),
	}

	totals := Aggregate(items)

	// 399*1 + 199*3 = 996
	assert.Equal(t, "996", totals.TotalBuyAmount.String())
}

func TestAggregateRentFlow(t *testing.T) {
	items := []models.CartItem{
		item(0, 150, 2),
	}

	totals := Aggregate(items)

	assert.Equal(t, "300", totals.DepositAmount.String())
	assert.Equal(t, "200", totals.RentPayable().String())
}

func TestAggregateRentUsesFlatFeeNotBookRent(t *testing.T) {
	// One unit with a rent value far from the flat fee: the payable side must
	// come from the flat fee only.
	totals := Aggregate([]models.CartItem{item(0, 999, 1)})

	assert.Equal(t, FlatRentFee.String(), totals.TotalRentAmount.String())
	assert.Equal(t, "999", totals.DepositAmount.String())
}

func TestAggregateIsAPureFold(t *testing.T) {
	items := []models.CartItem{
		item(250, 50, 2),
		item(100, 25, 1),
	}

	first := Aggregate(items)
	second := Aggregate(items)

	assert.Equal(t, first, second)
	assert.Equal(t, "600", first.TotalBuyAmount.String())
	assert.Equal(t, "300", first.TotalRentAmount.String())
	assert.Equal(t, "125", first.DepositAmount.String())
}

func TestNextQuantityFloorsAtOne(t *testing.T) {
	next, changed := nextQuantity(1, -1)
	assert.Equal(t, 1, next)
	assert.False(t, changed)

	next, changed = nextQuantity(3, -1)
	assert.Equal(t, 2, next)
	assert.True(t, changed)

	next, changed = nextQuantity(1, 1)
	assert.Equal(t, 2, next)
	assert.True(t, changed)

	next, changed = nextQuantity(2, -5)
	assert.Equal(t, 2, next)
	assert.False(t, changed)
}
