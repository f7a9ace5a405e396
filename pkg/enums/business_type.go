package enums

import "fmt"

// BusinessTypeID identifies one of the predefined storefront presets.
type BusinessTypeID string

const (
	BusinessTypePharmacy    BusinessTypeID = "pharmacy"
	BusinessTypeSupermarket BusinessTypeID = "supermarket"
	BusinessTypeClothing    BusinessTypeID = "clothing"
	BusinessTypeElectronics BusinessTypeID = "electronics"
	BusinessTypeRestaurant  BusinessTypeID = "restaurant"
)

var validBusinessTypeIDs = []BusinessTypeID{
	BusinessTypePharmacy,
	BusinessTypeSupermarket,
	BusinessTypeClothing,
	BusinessTypeElectronics,
	BusinessTypeRestaurant,
}

// String implements fmt.Stringer.
func (b BusinessTypeID) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BusinessTypeID.
func (b BusinessTypeID) IsValid() bool {
	for _, candidate := range validBusinessTypeIDs {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBusinessTypeID converts raw input into a BusinessTypeID.
func ParseBusinessTypeID(value string) (BusinessTypeID, error) {
	for _, candidate := range validBusinessTypeIDs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business type %q", value)
}
