package businessconfig

import (
	"strings"

	"github.com/mitienda/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Configuration is the full runtime state of a storefront: the active
// vertical plus every tenant customization layered on top of it.
type Configuration struct {
	BusinessInfo      BusinessInfo          `json:"business_info"`
	BusinessType      BusinessType          `json:"business_type"`
	Branding          Branding              `json:"branding"`
	EnabledFeatures   []string              `json:"enabled_features"`
	CustomCategories  []string              `json:"custom_categories,omitempty"`
	PaymentMethods    []string              `json:"payment_methods"`
	ShippingOptions   []types.ShippingOption `json:"shipping_options"`
	Locale            Locale                `json:"locale"`
	CustomTerminology *Terminology          `json:"custom_terminology,omitempty"`
}

// BusinessInfo is the tenant identity block. It survives business type
// changes untouched.
type BusinessInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo,omitempty"`
	Website     string `json:"website,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// Branding holds the color overrides applied on top of the type palette.
type Branding struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color"`
	Logo           string `json:"logo,omitempty"`
	Favicon        string `json:"favicon,omitempty"`
}

// Locale carries the language and money display settings.
type Locale struct {
	Language string `json:"language"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
	Timezone string `json:"timezone"`
}

// Patch is a partial configuration update. Nil fields are untouched;
// set fields replace the whole section, matching a shallow merge.
type Patch struct {
	BusinessInfo      *BusinessInfo           `json:"business_info,omitempty"`
	Branding          *Branding               `json:"branding,omitempty"`
	EnabledFeatures   *[]string               `json:"enabled_features,omitempty"`
	CustomCategories  *[]string               `json:"custom_categories,omitempty"`
	PaymentMethods    *[]string               `json:"payment_methods,omitempty"`
	ShippingOptions   *[]types.ShippingOption `json:"shipping_options,omitempty"`
	Locale            *Locale                 `json:"locale,omitempty"`
	CustomTerminology *Terminology            `json:"custom_terminology,omitempty"`
}

// DefaultConfiguration builds the out-of-the-box storefront for the
// default business type.
func DefaultConfiguration() Configuration {
	return configurationForType(DefaultBusinessType())
}

func configurationForType(bt BusinessType) Configuration {
	language, country := splitLocale(bt.Currency.Locale)
	return Configuration{
		BusinessInfo: BusinessInfo{
			Name:        bt.Name + " Digital",
			Description: "Tu " + strings.ToLower(bt.Name) + " en línea",
			Email:       "contacto@negocio.com",
			Phone:       "+1234567890",
			Address:     "Dirección del negocio",
		},
		BusinessType: bt,
		Branding: Branding{
			PrimaryColor:   bt.Color.Primary,
			SecondaryColor: bt.Color.Secondary,
			AccentColor:    bt.Color.Accent,
		},
		EnabledFeatures: DefaultEnabledFeatures(bt),
		PaymentMethods:  []string{"credit_card", "debit_card", "cash", "bank_transfer"},
		ShippingOptions: []types.ShippingOption{
			{ID: "standard", Name: "Envío Estándar", Price: decimal.NewFromInt(5), EstimatedDays: 3},
			{ID: "express", Name: "Envío Express", Price: decimal.NewFromInt(15), EstimatedDays: 1},
			{ID: "pickup", Name: "Recoger en Tienda", Price: decimal.Zero, EstimatedDays: 0},
		},
		Locale: Locale{
			Language: language,
			Country:  country,
			Currency: bt.Currency.Code,
			Timezone: "America/Caracas",
		},
	}
}

func splitLocale(locale string) (language, country string) {
	parts := strings.SplitN(locale, "-", 2)
	language = parts[0]
	if len(parts) == 2 {
		country = parts[1]
	}
	return language, country
}

// apply merges the patch into a copy of the configuration.
func (c Configuration) apply(p Patch) Configuration {
	out := c.clone()
	if p.BusinessInfo != nil {
		out.BusinessInfo = *p.BusinessInfo
	}
	if p.Branding != nil {
		out.Branding = *p.Branding
	}
	if p.EnabledFeatures != nil {
		out.EnabledFeatures = append([]string(nil), (*p.EnabledFeatures)...)
	}
	if p.CustomCategories != nil {
		out.CustomCategories = append([]string(nil), (*p.CustomCategories)...)
	}
	if p.PaymentMethods != nil {
		out.PaymentMethods = append([]string(nil), (*p.PaymentMethods)...)
	}
	if p.ShippingOptions != nil {
		out.ShippingOptions = append([]types.ShippingOption(nil), (*p.ShippingOptions)...)
	}
	if p.Locale != nil {
		out.Locale = *p.Locale
	}
	if p.CustomTerminology != nil {
		term := *p.CustomTerminology
		out.CustomTerminology = &term
	}
	return out
}

// clone deep-copies the configuration so callers can never alias the
// store's internal state through slices.
func (c Configuration) clone() Configuration {
	out := c
	out.EnabledFeatures = append([]string(nil), c.EnabledFeatures...)
	out.CustomCategories = append([]string(nil), c.CustomCategories...)
	out.PaymentMethods = append([]string(nil), c.PaymentMethods...)
	out.ShippingOptions = append([]types.ShippingOption(nil), c.ShippingOptions...)
	out.BusinessType.Categories = append([]string(nil), c.BusinessType.Categories...)
	out.BusinessType.Features = append([]Feature(nil), c.BusinessType.Features...)
	out.BusinessType.Validations.CustomValidations = append([]string(nil), c.BusinessType.Validations.CustomValidations...)
	out.BusinessType.Requirements.SpecialPermissions = append([]string(nil), c.BusinessType.Requirements.SpecialPermissions...)
	if c.CustomTerminology != nil {
		term := *c.CustomTerminology
		out.CustomTerminology = &term
	}
	return out
}

// Terminology merges the type vocabulary with tenant overrides. Empty
// override fields keep the type's word.
func (c Configuration) Terminology() Terminology {
	term := c.BusinessType.Terminology
	if c.CustomTerminology == nil {
		return term
	}
	override := *c.CustomTerminology
	if override.Product != "" {
		term.Product = override.Product
	}
	if override.Products != "" {
		term.Products = override.Products
	}
	if override.Category != "" {
		term.Category = override.Category
	}
	if override.Categories != "" {
		term.Categories = override.Categories
	}
	if override.Order != "" {
		term.Order = override.Order
	}
	if override.Orders != "" {
		term.Orders = override.Orders
	}
	if override.Cart != "" {
		term.Cart = override.Cart
	}
	if override.Checkout != "" {
		term.Checkout = override.Checkout
	}
	if override.Inventory != "" {
		term.Inventory = override.Inventory
	}
	if override.Stock != "" {
		term.Stock = override.Stock
	}
	return term
}

// Categories returns the tenant category list, falling back to the
// type defaults when no custom list is set.
func (c Configuration) Categories() []string {
	if len(c.CustomCategories) > 0 {
		return append([]string(nil), c.CustomCategories...)
	}
	return append([]string(nil), c.BusinessType.Categories...)
}

// IsFeatureEnabled reports whether the feature ID is switched on.
func (c Configuration) IsFeatureEnabled(featureID string) bool {
	for _, id := range c.EnabledFeatures {
		if id == featureID {
			return true
		}
	}
	return false
}
