package validation

import (
	"fmt"
	"regexp"
	"strings"

	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// MaxStock is the upper bound a catalog entry may report.
	MaxStock = 99999
	// MaxQuantityPerItem caps how many units of one product a cart holds.
	MaxQuantityPerItem = 99
)

var (
	maxPrice = decimal.RequireFromString("999999.99")

	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	productNameRe  = regexp.MustCompile(`[a-zA-ZáéíóúÁÉÍÓÚñÑ]`)
	prescriptionRe = regexp.MustCompile(`^RX-\d{4}-\d{6}$`)
	dosageRe       = regexp.MustCompile(`(?i)^\d+(\.\d+)?\s*(mg|ml|g|UI|mcg|IU)$`)
	nonDigitRe     = regexp.MustCompile(`\D`)
)

// ValidateQuantity checks a requested cart quantity against the product's
// available stock and the per-item cap. A nil return means valid.
func ValidateQuantity(quantity, maxStock, perItemCap int) *pkgerrors.Error {
	if perItemCap <= 0 {
		perItemCap = MaxQuantityPerItem
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	if quantity > maxStock {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("insufficient stock: %d available", maxStock)).
			WithDetails(map[string]int{"available": maxStock, "requested": quantity})
	}
	if quantity > perItemCap {
		return pkgerrors.New(pkgerrors.CodeExceedsPerItemCap,
			fmt.Sprintf("maximum %d units per product", perItemCap)).
			WithDetails(map[string]int{"cap": perItemCap, "requested": quantity})
	}
	return nil
}

// ValidateEmail performs a structural local@domain.tld check. No DNS or
// MX verification.
func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePrice accepts finite positive prices up to 999,999.99.
func ValidatePrice(price decimal.Decimal) bool {
	return price.IsPositive() && price.LessThanOrEqual(maxPrice)
}

// ValidateStock accepts integer stock levels in [0, 99999].
func ValidateStock(stock int) bool {
	return stock >= 0 && stock <= MaxStock
}

// ValidateProductName requires at least 3 characters including a letter.
func ValidateProductName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len([]rune(trimmed)) >= 3 && productNameRe.MatchString(trimmed)
}

// ValidatePrescription checks the RX-YYYY-NNNNNN prescription format.
func ValidatePrescription(number string) bool {
	return prescriptionRe.MatchString(number)
}

// ValidateDosage accepts common dosage strings such as "500mg" or "2.5ml".
func ValidateDosage(dosage string) bool {
	return dosageRe.MatchString(strings.TrimSpace(dosage))
}

// ValidateAddress bounds a free-form delivery address to 10..200 chars.
func ValidateAddress(address string) bool {
	length := len([]rune(strings.TrimSpace(address)))
	return length >= 10 && length <= 200
}

// ValidateCreditCard applies the Luhn check to a card number, ignoring
// separators.
func ValidateCreditCard(cardNumber string) bool {
	cleaned := nonDigitRe.ReplaceAllString(cardNumber, "")
	if len(cleaned) < 13 || len(cleaned) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}
