package enums

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseBusinessTypeID(t *testing.T) {
	t.Parallel()

	if got, err := ParseBusinessTypeID("pharmacy"); err != nil || got != BusinessTypePharmacy {
		t.Fatalf("expected pharmacy, got %v (%v)", got, err)
	}
	if _, err := ParseBusinessTypeID("bakery"); err == nil {
		t.Fatal("expected error for unknown business type")
	}
}

func TestParseSortDefaults(t *testing.T) {
	t.Parallel()

	if got, err := ParseSortKey(""); err != nil || got != SortByName {
		t.Fatalf("expected name default, got %v (%v)", got, err)
	}
	if got, err := ParseSortOrder(""); err != nil || got != SortAsc {
		t.Fatalf("expected asc default, got %v (%v)", got, err)
	}
	if _, err := ParseSortKey("rating"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}

func TestPriceBucketContains(t *testing.T) {
	t.Parallel()

	cases := []struct {
		bucket PriceBucket
		price  string
		want   bool
	}{
		{PriceBucketAll, "999.99", true},
		{PriceBucketLow, "19.99", true},
		{PriceBucketLow, "20.00", false},
		{PriceBucketMedium, "20.00", true},
		{PriceBucketMedium, "39.99", true},
		{PriceBucketMedium, "40.00", false},
		{PriceBucketHigh, "40.00", true},
		{PriceBucketHigh, "39.99", false},
	}

	for _, tc := range cases {
		price := decimal.RequireFromString(tc.price)
		if got := tc.bucket.Contains(price); got != tc.want {
			t.Fatalf("bucket %s price %s: expected %v, got %v", tc.bucket, tc.price, tc.want, got)
		}
	}
}

func TestOrderStatusParse(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"pending", "paid", "delivered", "cancelled"} {
		if _, err := ParseOrderStatus(raw); err != nil {
			t.Fatalf("expected %q to parse: %v", raw, err)
		}
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
