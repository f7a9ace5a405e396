package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing. The cart only ever reads product fields;
// stock mutation belongs to the (external) inventory flow.
type Product struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                 string          `gorm:"column:name;not null" json:"name"`
	Description          string          `gorm:"column:description;not null;default:''" json:"description"`
	Brand                string          `gorm:"column:brand;not null;default:''" json:"brand"`
	Category             string          `gorm:"column:category;not null" json:"category"`
	Price                decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Stock                int             `gorm:"column:stock;not null;default:0" json:"stock"`
	RequiresPrescription bool            `gorm:"column:requires_prescription;not null;default:false" json:"requires_prescription"`
	Image                string          `gorm:"column:image;not null;default:''" json:"image"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name.
func (Product) TableName() string {
	return "products"
}
