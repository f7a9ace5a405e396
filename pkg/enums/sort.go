package enums

import "fmt"

// SortKey selects the field the product listing is ordered by.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByPrice    SortKey = "price"
	SortByStock    SortKey = "stock"
	SortByCategory SortKey = "category"
)

var validSortKeys = []SortKey{SortByName, SortByPrice, SortByStock, SortByCategory}

func (s SortKey) String() string {
	return string(s)
}

func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input defaults
// to name ordering.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortByName, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// SortOrder selects ascending or descending ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (s SortOrder) String() string {
	return string(s)
}

func (s SortOrder) IsValid() bool {
	return s == SortAsc || s == SortDesc
}

// ParseSortOrder converts raw input into a SortOrder. Empty input
// defaults to ascending.
func ParseSortOrder(value string) (SortOrder, error) {
	switch value {
	case "", string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
