package cart

import (
	"github.com/shopspring/decimal"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

// FlatRentFee is the fixed per-unit rental charge (₹100 per book). It is the
// rent-flow payable amount; the book's own rent value only feeds the deposit.
var FlatRentFee = decimal.NewFromInt(100)

// Totals are the aggregates derived from one cart snapshot. They are computed
// fresh from the snapshot every time, never cached across mutations.
type Totals struct {
	TotalBuyAmount  decimal.Decimal `json:"totalBuyAmount"`
	TotalRentAmount decimal.Decimal `json:"totalRentAmount"`
	DepositAmount   decimal.Decimal `json:"depositAmount"`
}

// RentPayable is what the rent flow charges: the flat fee across all units.
func (t Totals) RentPayable() decimal.Decimal {
	return t.TotalRentAmount
}

// Aggregate folds a cart snapshot into its totals. An empty snapshot yields
// all-zero totals.
func Aggregate(items []models.CartItem) Totals {
	totals := Totals{
		TotalBuyAmount:  decimal.Zero,
		TotalRentAmount: decimal.Zero,
		DepositAmount:   decimal.Zero,
	}

	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		totals.TotalBuyAmount = totals.TotalBuyAmount.Add(item.Price.Mul(qty))
		totals.TotalRentAmount = totals.TotalRentAmount.Add(FlatRentFee.Mul(qty))
		totals.DepositAmount = totals.DepositAmount.Add(item.Rent.Mul(qty))
	}

	return totals
}
