package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mitienda/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence for placed orders.
type Repository interface {
	CreateOrder(ctx context.Context, order *models.OrderRecord) (*models.OrderRecord, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.OrderRecord, error)
	ListOrders(ctx context.Context, clientID *uuid.UUID, page pagination.Params) ([]models.OrderRecord, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateOrder(ctx context.Context, order *models.OrderRecord) (*models.OrderRecord, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.LineItems {
		if order.LineItems[i].ID == uuid.Nil {
			order.LineItems[i].ID = uuid.New()
		}
		order.LineItems[i].OrderID = order.ID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *gormRepository) GetOrder(ctx context.Context, id uuid.UUID) (*models.OrderRecord, error) {
	var order models.OrderRecord
	err := r.db.WithContext(ctx).Preload("LineItems").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found").
			WithDetails(map[string]any{"order_id": id.String()})
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) ListOrders(ctx context.Context, clientID *uuid.UUID, page pagination.Params) ([]models.OrderRecord, int64, error) {
	norm := page.Normalize()

	query := r.db.WithContext(ctx).Model(&models.OrderRecord{})
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.OrderRecord
	err := query.
		Preload("LineItems").
		Order("created_at DESC").
		Offset(norm.Offset()).
		Limit(norm.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderRecord{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found").
			WithDetails(map[string]any{"order_id": id.String()})
	}
	return nil
}
