package businessconfig

import (
	"sort"
	"strings"

	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
)

// BusinessType describes one vertical the storefront can run as. All
// fields are data, not behavior: downstream code keys off the IDs.
type BusinessType struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Icon         string       `json:"icon"`
	Color        ColorScheme  `json:"color"`
	Categories   []string     `json:"categories"`
	Features     []Feature    `json:"features"`
	Validations  Validations  `json:"validations"`
	Currency     Currency     `json:"currency"`
	Terminology  Terminology  `json:"terminology"`
	Requirements Requirements `json:"requirements"`
}

// ColorScheme holds the branding palette a type ships with.
type ColorScheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Feature is a toggleable capability. Required features cannot be
// switched off when the type is active.
type Feature struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Required bool   `json:"required,omitempty"`
}

// Validations flags vertical-specific checks the storefront enforces.
type Validations struct {
	RequiresPrescription bool     `json:"requires_prescription,omitempty"`
	AgeRestriction       bool     `json:"age_restriction,omitempty"`
	CustomValidations    []string `json:"custom_validations,omitempty"`
}

// Currency pins the money display settings for a type.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Locale string `json:"locale"`
}

// Terminology maps storefront nouns to the vertical's vocabulary.
type Terminology struct {
	Product    string `json:"product"`
	Products   string `json:"products"`
	Category   string `json:"category"`
	Categories string `json:"categories"`
	Order      string `json:"order"`
	Orders     string `json:"orders"`
	Cart       string `json:"cart"`
	Checkout   string `json:"checkout"`
	Inventory  string `json:"inventory"`
	Stock      string `json:"stock"`
}

// Requirements lists the legal preconditions for operating the type.
type Requirements struct {
	LicenseRequired       bool     `json:"license_required,omitempty"`
	CertificationRequired bool     `json:"certification_required,omitempty"`
	SpecialPermissions    []string `json:"special_permissions,omitempty"`
}

// DefaultBusinessTypeID is the vertical a fresh install starts as.
const DefaultBusinessTypeID = "pharmacy"

var businessTypes = map[string]BusinessType{
	"pharmacy": {
		ID:          "pharmacy",
		Name:        "Farmacia",
		Description: "Farmacia y productos médicos",
		Icon:        "pharmacy",
		Color:       ColorScheme{Primary: "#2563eb", Secondary: "#1e40af", Accent: "#10b981"},
		Categories: []string{
			"Analgésicos", "Antiinflamatorios", "Antibióticos", "Vitaminas",
			"Gastroenterología", "Antihistamínicos", "Dermatología", "Cardiovascular",
			"Respiratorio", "Neurología", "Endocrinología", "Oftalmología",
		},
		Features: []Feature{
			{ID: "prescription_required", Name: "Medicamentos con receta", Enabled: true, Required: true},
			{ID: "age_verification", Name: "Verificación de edad", Enabled: true},
			{ID: "medical_consultation", Name: "Consulta médica", Enabled: false},
			{ID: "insurance_claims", Name: "Reclamos de seguro", Enabled: false},
		},
		Validations: Validations{
			RequiresPrescription: true,
			AgeRestriction:       true,
			CustomValidations:    []string{"dosage", "drug_interactions"},
		},
		Currency: Currency{Code: "VES", Symbol: "Bs.", Locale: "es-VE"},
		Terminology: Terminology{
			Product: "Medicamento", Products: "Medicamentos",
			Category: "Categoría Médica", Categories: "Categorías Médicas",
			Order: "Pedido", Orders: "Pedidos",
			Cart: "Carrito", Checkout: "Checkout",
			Inventory: "Inventario", Stock: "Stock",
		},
		Requirements: Requirements{
			LicenseRequired:       true,
			CertificationRequired: true,
			SpecialPermissions:    []string{"controlled_substances"},
		},
	},
	"supermarket": {
		ID:          "supermarket",
		Name:        "Supermercado",
		Description: "Supermercado y alimentos",
		Icon:        "shopping-cart",
		Color:       ColorScheme{Primary: "#dc2626", Secondary: "#b91c1c", Accent: "#f59e0b"},
		Categories: []string{
			"Frutas y Verduras", "Carnes y Pescados", "Lácteos", "Panadería",
			"Bebidas", "Congelados", "Limpieza", "Cuidado Personal", "Mascotas", "Bebé",
		},
		Features: []Feature{
			{ID: "perishable_tracking", Name: "Seguimiento de perecederos", Enabled: true},
			{ID: "bulk_pricing", Name: "Precios por volumen", Enabled: true},
			{ID: "loyalty_program", Name: "Programa de lealtad", Enabled: false},
			{ID: "weekly_offers", Name: "Ofertas semanales", Enabled: true},
		},
		Validations: Validations{
			CustomValidations: []string{"expiration_date", "weight_verification"},
		},
		Currency: Currency{Code: "USD", Symbol: "$", Locale: "en-US"},
		Terminology: Terminology{
			Product: "Producto", Products: "Productos",
			Category: "Categoría", Categories: "Categorías",
			Order: "Pedido", Orders: "Pedidos",
			Cart: "Carrito", Checkout: "Pagar",
			Inventory: "Inventario", Stock: "Disponibilidad",
		},
	},
	"clothing": {
		ID:          "clothing",
		Name:        "Tienda de Ropa",
		Description: "Ropa y accesorios",
		Icon:        "shirt",
		Color:       ColorScheme{Primary: "#7c3aed", Secondary: "#6d28d9", Accent: "#ec4899"},
		Categories: []string{
			"Camisas", "Pantalones", "Vestidos", "Zapatos", "Accesorios",
			"Ropa Interior", "Deportiva", "Formal", "Casual", "Niños",
		},
		Features: []Feature{
			{ID: "size_guide", Name: "Guía de tallas", Enabled: true, Required: true},
			{ID: "color_variants", Name: "Variantes de color", Enabled: true},
			{ID: "wishlist", Name: "Lista de deseos", Enabled: true},
			{ID: "virtual_fitting", Name: "Probador virtual", Enabled: false},
		},
		Validations: Validations{
			CustomValidations: []string{"size_availability", "color_matching"},
		},
		Currency: Currency{Code: "USD", Symbol: "$", Locale: "en-US"},
		Terminology: Terminology{
			Product: "Prenda", Products: "Prendas",
			Category: "Categoría", Categories: "Categorías",
			Order: "Pedido", Orders: "Pedidos",
			Cart: "Bolsa", Checkout: "Finalizar Compra",
			Inventory: "Inventario", Stock: "Disponible",
		},
	},
	"electronics": {
		ID:          "electronics",
		Name:        "Electrónicos",
		Description: "Tecnología y electrónicos",
		Icon:        "smartphone",
		Color:       ColorScheme{Primary: "#1f2937", Secondary: "#111827", Accent: "#3b82f6"},
		Categories: []string{
			"Smartphones", "Laptops", "Audio", "Gaming", "Cámaras",
			"Accesorios", "Hogar Inteligente", "Componentes PC", "Tablets", "Wearables",
		},
		Features: []Feature{
			{ID: "warranty_tracking", Name: "Seguimiento de garantía", Enabled: true, Required: true},
			{ID: "technical_specs", Name: "Especificaciones técnicas", Enabled: true},
			{ID: "compatibility_check", Name: "Verificación de compatibilidad", Enabled: true},
			{ID: "installation_service", Name: "Servicio de instalación", Enabled: false},
		},
		Validations: Validations{
			CustomValidations: []string{"warranty_validation", "compatibility_check"},
		},
		Currency: Currency{Code: "USD", Symbol: "$", Locale: "en-US"},
		Terminology: Terminology{
			Product: "Producto", Products: "Productos",
			Category: "Categoría", Categories: "Categorías",
			Order: "Pedido", Orders: "Pedidos",
			Cart: "Carrito", Checkout: "Comprar",
			Inventory: "Inventario", Stock: "En Stock",
		},
	},
	"restaurant": {
		ID:          "restaurant",
		Name:        "Restaurante",
		Description: "Comida y bebidas",
		Icon:        "utensils",
		Color:       ColorScheme{Primary: "#ea580c", Secondary: "#c2410c", Accent: "#65a30d"},
		Categories: []string{
			"Entradas", "Platos Principales", "Postres", "Bebidas",
			"Bebidas Alcohólicas", "Vegetariano", "Vegano", "Sin Gluten",
			"Infantil", "Especiales del Día",
		},
		Features: []Feature{
			{ID: "dietary_restrictions", Name: "Restricciones dietéticas", Enabled: true, Required: true},
			{ID: "delivery_time", Name: "Tiempo de entrega", Enabled: true},
			{ID: "table_reservation", Name: "Reserva de mesa", Enabled: false},
			{ID: "nutrition_info", Name: "Información nutricional", Enabled: true},
		},
		Validations: Validations{
			AgeRestriction:    true,
			CustomValidations: []string{"allergen_warnings", "preparation_time"},
		},
		Currency: Currency{Code: "USD", Symbol: "$", Locale: "en-US"},
		Terminology: Terminology{
			Product: "Plato", Products: "Menú",
			Category: "Sección", Categories: "Secciones",
			Order: "Pedido", Orders: "Pedidos",
			Cart: "Mi Pedido", Checkout: "Confirmar Pedido",
			Inventory: "Disponibilidad", Stock: "Disponible",
		},
		Requirements: Requirements{
			LicenseRequired:       true,
			CertificationRequired: true,
			SpecialPermissions:    []string{"alcohol_license", "food_handler"},
		},
	},
}

// LookupBusinessType resolves a type by ID, case-insensitively.
func LookupBusinessType(id string) (BusinessType, error) {
	bt, ok := businessTypes[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return BusinessType{}, pkgerrors.New(pkgerrors.CodeUnknownBusinessType, "unknown business type").
			WithDetails(map[string]any{"business_type": id})
	}
	return bt, nil
}

// DefaultBusinessType returns the vertical used when nothing is configured.
func DefaultBusinessType() BusinessType {
	return businessTypes[DefaultBusinessTypeID]
}

// AvailableBusinessTypes lists every registered type, sorted by ID so
// the output is deterministic.
func AvailableBusinessTypes() []BusinessType {
	out := make([]BusinessType, 0, len(businessTypes))
	for _, bt := range businessTypes {
		out = append(out, bt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DefaultEnabledFeatures derives the feature IDs switched on for a
// fresh configuration of the given type.
func DefaultEnabledFeatures(bt BusinessType) []string {
	out := make([]string, 0, len(bt.Features))
	for _, f := range bt.Features {
		if f.Enabled || f.Required {
			out = append(out, f.ID)
		}
	}
	return out
}
