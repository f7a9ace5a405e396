package types

import "github.com/shopspring/decimal"

// ShippingOption is one delivery choice offered at checkout.
type ShippingOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	EstimatedDays int             `json:"estimated_days"`
}
