package enums

import "fmt"

// ShippingZone groups delivery destinations for flat-rate shipping.
type ShippingZone string

const (
	ShippingZoneCapital  ShippingZone = "caracas"
	ShippingZoneInterior ShippingZone = "interior"
	ShippingZoneNational ShippingZone = "nacional"
)

var validShippingZones = []ShippingZone{
	ShippingZoneCapital,
	ShippingZoneInterior,
	ShippingZoneNational,
}

func (s ShippingZone) String() string {
	return string(s)
}

func (s ShippingZone) IsValid() bool {
	for _, candidate := range validShippingZones {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseShippingZone(value string) (ShippingZone, error) {
	for _, candidate := range validShippingZones {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping zone %q", value)
}
