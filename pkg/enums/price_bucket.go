package enums

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceBucket partitions the catalog into the coarse price ranges the
// storefront filter exposes: low < 20, 20 <= medium < 40, high >= 40.
type PriceBucket string

const (
	PriceBucketAll    PriceBucket = "all"
	PriceBucketLow    PriceBucket = "low"
	PriceBucketMedium PriceBucket = "medium"
	PriceBucketHigh   PriceBucket = "high"
)

var (
	priceBucketLowMax  = decimal.NewFromInt(20)
	priceBucketHighMin = decimal.NewFromInt(40)
)

func (p PriceBucket) String() string {
	return string(p)
}

func (p PriceBucket) IsValid() bool {
	switch p {
	case PriceBucketAll, PriceBucketLow, PriceBucketMedium, PriceBucketHigh:
		return true
	}
	return false
}

// Contains reports whether the given price falls inside the bucket.
// The "all" bucket contains every price.
func (p PriceBucket) Contains(price decimal.Decimal) bool {
	switch p {
	case PriceBucketAll, "":
		return true
	case PriceBucketLow:
		return price.LessThan(priceBucketLowMax)
	case PriceBucketMedium:
		return price.GreaterThanOrEqual(priceBucketLowMax) && price.LessThan(priceBucketHighMin)
	case PriceBucketHigh:
		return price.GreaterThanOrEqual(priceBucketHighMin)
	}
	return false
}

// ParsePriceBucket converts raw input into a PriceBucket. Empty input
// means no price filtering.
func ParsePriceBucket(value string) (PriceBucket, error) {
	if value == "" {
		return PriceBucketAll, nil
	}
	bucket := PriceBucket(value)
	if !bucket.IsValid() {
		return "", fmt.Errorf("invalid price bucket %q", value)
	}
	return bucket, nil
}
