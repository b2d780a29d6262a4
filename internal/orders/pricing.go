package orders

import (
	"github.com/shopspring/decimal"

	"property-storefront/internal/models"
)

// CommissionRate and CommissionFlatFee make up the buy-side platform fee.
var CommissionRate = decimal.RequireFromString("0.01599")

const CommissionFlatFee int64 = 1599

// Commission returns round(price × CommissionRate) + CommissionFlatFee,
// rounding half away from zero.
func Commission(price int64) int64 {
	return decimal.NewFromInt(price).Mul(CommissionRate).Round(0).IntPart() + CommissionFlatFee
}

// Quote returns the amount charged and the commission included in it.
// Rentals carry no commission.
func Quote(p models.Property) (amount, commission int64) {
	if p.Type != models.ListingTypeBuy {
		return p.Price, 0
	}
	commission = Commission(p.Price)
	return p.Price + commission, commission
}
