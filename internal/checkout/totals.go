package checkout

import (
	"github.com/mitienda/storefront-backend/pkg/db/models"
	"github.com/mitienda/storefront-backend/pkg/enums"
	"github.com/mitienda/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the IVA rate applied when no override is configured.
var DefaultTaxRate = decimal.RequireFromString("0.16")

// DefaultFreeShippingThreshold waives shipping for totals at or above it.
var DefaultFreeShippingThreshold = decimal.NewFromInt(100)

var shippingRates = map[enums.ShippingZone]decimal.Decimal{
	enums.ShippingZoneCapital:  decimal.NewFromInt(5),
	enums.ShippingZoneInterior: decimal.NewFromInt(10),
	enums.ShippingZoneNational: decimal.NewFromInt(15),
}

// CartTotal sums price times quantity over all entries. Decimal
// accumulation keeps cross-entry rounding exact regardless of order.
func CartTotal(entries []types.CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		line := entry.Product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		total = total.Add(line)
	}
	return total
}

// CartItemCount sums quantities over all entries.
func CartItemCount(entries []types.CartEntry) int {
	count := 0
	for _, entry := range entries {
		count += entry.Quantity
	}
	return count
}

// IsInStock reports whether the product can satisfy the requested
// quantity right now.
func IsInStock(product models.Product, requestedQty int) bool {
	if requestedQty < 1 {
		requestedQty = 1
	}
	return product.Stock >= requestedQty
}

// CalculateTax returns the tax owed on a subtotal at the given rate.
func CalculateTax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate)
}

// CalculateTotalWithTax returns subtotal plus tax at the given rate.
func CalculateTotalWithTax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Add(CalculateTax(subtotal, rate))
}

// CalculateDiscount returns the discount amount for a percentage off.
func CalculateDiscount(originalPrice, discountPercentage decimal.Decimal) decimal.Decimal {
	return originalPrice.Mul(discountPercentage.Div(decimal.NewFromInt(100)))
}

// CalculateDiscountedPrice returns the price after a percentage discount.
func CalculateDiscountedPrice(originalPrice, discountPercentage decimal.Decimal) decimal.Decimal {
	return originalPrice.Sub(CalculateDiscount(originalPrice, discountPercentage))
}

// CalculateShippingCost prices delivery by zone, waiving it entirely
// once the cart total reaches the free-shipping threshold.
func CalculateShippingCost(total decimal.Decimal, zone enums.ShippingZone, freeThreshold decimal.Decimal) decimal.Decimal {
	if freeThreshold.IsZero() {
		freeThreshold = DefaultFreeShippingThreshold
	}
	if total.GreaterThanOrEqual(freeThreshold) {
		return decimal.Zero
	}
	if rate, ok := shippingRates[zone]; ok {
		return rate
	}
	return shippingRates[enums.ShippingZoneNational]
}

// PrescriptionRequiredEntries filters the entries whose product needs a
// prescription before checkout can complete.
func PrescriptionRequiredEntries(entries []types.CartEntry) []types.CartEntry {
	var out []types.CartEntry
	for _, entry := range entries {
		if entry.Product.RequiresPrescription {
			out = append(out, entry)
		}
	}
	return out
}
