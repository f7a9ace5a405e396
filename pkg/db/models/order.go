package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mitienda/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderRecord is a placed order. Read-mostly from the storefront's point
// of view: creation happens at checkout, which sits outside this core.
type OrderRecord struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Number          string              `gorm:"column:number;not null;uniqueIndex" json:"number"`
	ClientID        uuid.UUID           `gorm:"column:client_id;type:uuid;not null" json:"client_id"`
	ClientName      string              `gorm:"column:client_name;not null;default:''" json:"client_name"`
	Total           decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:'pending'" json:"status"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;not null" json:"payment_method"`
	DeliveryAddress string              `gorm:"column:delivery_address;not null;default:''" json:"delivery_address"`
	LineItems       []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"line_items"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OrderRecord) TableName() string {
	return "orders"
}

// OrderLineItem snapshots one cart entry at the moment the order was
// placed. Prices are copied, not referenced, so later catalog edits do
// not rewrite history.
type OrderLineItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"column:product_name;not null" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderLineItem) TableName() string {
	return "order_line_items"
}
