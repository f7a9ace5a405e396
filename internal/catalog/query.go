package catalog

import (
	"sort"
	"strings"

	"github.com/mitienda/storefront-backend/pkg/db/models"
	"github.com/mitienda/storefront-backend/pkg/enums"
	"golang.org/x/text/collate"
)

// MinSearchLength is the shortest search term that actually filters;
// anything shorter behaves as "no search".
const MinSearchLength = 2

// QueryParams are the browse knobs the storefront exposes.
type QueryParams struct {
	Search      string            `json:"q,omitempty"`
	Category    string            `json:"category,omitempty"`
	PriceBucket enums.PriceBucket `json:"price_bucket,omitempty"`
	SortBy      enums.SortKey     `json:"sort_by,omitempty"`
	SortOrder   enums.SortOrder   `json:"sort_order,omitempty"`
}

// ApplyQuery runs the full pipeline over the product list. The stage
// order is part of the contract: search, then category and price
// filters, then the stable sort.
func ApplyQuery(products []models.Product, params QueryParams, minSearchLength int, collator *collate.Collator) []models.Product {
	out := FilterBySearch(products, params.Search, minSearchLength)
	out = FilterByCategory(out, params.Category)
	out = FilterByPriceBucket(out, params.PriceBucket)
	return SortProducts(out, params.SortBy, params.SortOrder, collator)
}

// FilterBySearch keeps products whose name, description, brand or
// category contains the term, case-insensitively. Terms shorter than
// minLength are treated as no filter.
func FilterBySearch(products []models.Product, term string, minLength int) []models.Product {
	if minLength <= 0 {
		minLength = MinSearchLength
	}
	needle := strings.ToLower(strings.TrimSpace(term))
	if len([]rune(needle)) < minLength {
		return products
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Brand), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByCategory keeps products in the exact category. Empty or "all"
// means no filter.
func FilterByCategory(products []models.Product, category string) []models.Product {
	if category == "" || strings.EqualFold(category, "all") {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// FilterByPriceBucket keeps products whose price falls in the bucket.
func FilterByPriceBucket(products []models.Product, bucket enums.PriceBucket) []models.Product {
	if bucket == "" || bucket == enums.PriceBucketAll {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if bucket.Contains(p.Price) {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts returns a sorted copy. The sort is stable so ties keep
// their input order. Name and category compare through the collator
// when one is supplied, falling back to a case-folded byte compare.
func SortProducts(products []models.Product, key enums.SortKey, order enums.SortOrder, collator *collate.Collator) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	if key == "" {
		key = enums.SortByName
	}
	desc := order == enums.SortDesc

	less := func(a, b models.Product) int {
		switch key {
		case enums.SortByPrice:
			return a.Price.Cmp(b.Price)
		case enums.SortByStock:
			switch {
			case a.Stock < b.Stock:
				return -1
			case a.Stock > b.Stock:
				return 1
			}
			return 0
		case enums.SortByCategory:
			return compareStrings(a.Category, b.Category, collator)
		default:
			return compareStrings(a.Name, b.Name, collator)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := less(out[i], out[j])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

func compareStrings(a, b string, collator *collate.Collator) int {
	if collator != nil {
		return collator.CompareString(a, b)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
